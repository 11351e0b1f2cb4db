package authz

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/kanamori/govport/internal/entities"
	"github.com/kanamori/govport/internal/repositories"
)

// Guard resolves page access and records the outcome in the audit and
// telemetry tables. It returns the decision value for the caller to act
// on; it never alters control flow itself.
type Guard struct {
	resolver  *Resolver
	audit     repositories.AuditRepository
	telemetry repositories.TelemetryRepository
}

// NewGuard creates a Guard.
func NewGuard(resolver *Resolver, audit repositories.AuditRepository, telemetry repositories.TelemetryRepository) *Guard {
	return &Guard{resolver: resolver, audit: audit, telemetry: telemetry}
}

// RequirePage resolves access for a page and audits the decision. Logging
// failures are reported but never fail the request.
func (g *Guard) RequirePage(ctx context.Context, id entities.Identity, page string, level entities.AccessLevel) (*entities.AccessDecision, error) {
	if level == "" {
		level = entities.LevelRead
	}

	decision, err := g.resolver.Resolve(ctx, id.Role, page, level)
	if err != nil {
		return nil, err
	}

	attempt := &entities.AccessAttempt{
		UserName:   id.User,
		RoleName:   entities.NormalizeRole(id.Role),
		PageName:   entities.NormalizeScope(page),
		Action:     fmt.Sprintf("PAGE_ACCESS_%s", level),
		Allowed:    decision.Allowed,
		Reason:     decision.Reason,
		OccurredAt: time.Now(),
	}
	if err := g.audit.RecordAccess(ctx, attempt); err != nil {
		log.Printf("Failed to record access attempt: %v", err)
	}

	if !decision.Allowed {
		event := &entities.TelemetryEvent{
			SessionID:    uuid.NewString(),
			UserName:     id.User,
			RoleName:     attempt.RoleName,
			PageName:     attempt.PageName,
			Action:       fmt.Sprintf("ACCESS_DENIED_%s", level),
			ErrorMessage: decision.Reason,
		}
		if err := g.telemetry.RecordEvent(ctx, event); err != nil {
			log.Printf("Failed to record denial telemetry: %v", err)
		}
	}

	return decision, nil
}

// LogPageView records a page-view telemetry event after a successful
// render. Fire-and-forget: failures are logged only.
func (g *Guard) LogPageView(ctx context.Context, id entities.Identity, page string, duration time.Duration, queryCount int, errMessage string) {
	event := &entities.TelemetryEvent{
		SessionID:    uuid.NewString(),
		UserName:     id.User,
		RoleName:     entities.NormalizeRole(id.Role),
		PageName:     entities.NormalizeScope(page),
		Action:       "VIEW",
		DurationMS:   duration.Milliseconds(),
		QueryCount:   queryCount,
		ErrorMessage: errMessage,
	}
	if err := g.telemetry.RecordEvent(ctx, event); err != nil {
		log.Printf("Failed to record page view telemetry: %v", err)
	}
}
