package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lib/pq"
)

// RuleChangeListener watches the access-rule tables via PostgreSQL
// LISTEN/NOTIFY and invalidates cached decisions when they change. A
// periodic ping keeps the connection alive; if the connection drops,
// pq.Listener reconnects on its own and cached entries still age out by
// TTL in the meantime.
type RuleChangeListener struct {
	mu         sync.Mutex
	connStr    string
	channel    string
	invalidate func(ctx context.Context)
	listener   *pq.Listener
	stopCh     chan struct{}
	stopped    bool
}

// NewRuleChangeListener creates a listener on the given NOTIFY channel.
// invalidate is called once per change notification.
func NewRuleChangeListener(connStr, channel string, invalidate func(ctx context.Context)) *RuleChangeListener {
	return &RuleChangeListener{
		connStr:    connStr,
		channel:    channel,
		invalidate: invalidate,
		stopCh:     make(chan struct{}),
	}
}

// Start opens the listening connection and begins processing
// notifications in the background.
func (l *RuleChangeListener) Start() error {
	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			// Keep going; TTL expiry covers missed notifications
			log.Printf("rule change listener error: %v", err)
		}
	}

	l.listener = pq.NewListener(l.connStr, 10*time.Second, time.Minute, reportProblem)

	if err := l.listener.Listen(l.channel); err != nil {
		return err
	}

	go l.handleNotifications()

	return nil
}

// Stop stops the listener and closes its connection.
func (l *RuleChangeListener) Stop() error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return nil
	}
	l.stopped = true
	close(l.stopCh)
	l.mu.Unlock()

	if l.listener != nil {
		return l.listener.Close()
	}
	return nil
}

func (l *RuleChangeListener) handleNotifications() {
	for {
		select {
		case <-l.stopCh:
			return
		case notification := <-l.listener.Notify:
			if notification == nil {
				// Connection lost; pq.Listener reconnects automatically
				continue
			}
			log.Printf("access rules changed (%s), dropping cached decisions", notification.Extra)
			l.invalidate(context.Background())
		case <-time.After(90 * time.Second):
			go func() {
				if err := l.listener.Ping(); err != nil {
					log.Printf("rule change listener ping error: %v", err)
				}
			}()
		}
	}
}
