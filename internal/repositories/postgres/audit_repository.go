package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kanamori/govport/internal/entities"
	"github.com/kanamori/govport/internal/repositories"
)

// PostgresAuditRepository appends access decisions to gov_app.access_log.
type PostgresAuditRepository struct {
	db *sql.DB
}

// NewPostgresAuditRepository creates a new PostgreSQL audit repository.
func NewPostgresAuditRepository(db *sql.DB) repositories.AuditRepository {
	return &PostgresAuditRepository{db: db}
}

// RecordAccess appends one audit row. The access_log table is created
// lazily by migrations, so a missing table drops the row instead of
// failing the request.
func (r *PostgresAuditRepository) RecordAccess(ctx context.Context, attempt *entities.AccessAttempt) error {
	occurredAt := attempt.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	query := `
		INSERT INTO gov_app.access_log
			(user_name, role_name, page_name, action, allowed, reason, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		attempt.UserName,
		attempt.RoleName,
		attempt.PageName,
		attempt.Action,
		attempt.Allowed,
		attempt.Reason,
		occurredAt,
	)
	if isUndefinedTable(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to record access attempt: %w", err)
	}
	return nil
}

// PostgresTelemetryRepository appends usage events to gov_app.app_telemetry.
type PostgresTelemetryRepository struct {
	db *sql.DB
}

// NewPostgresTelemetryRepository creates a new PostgreSQL telemetry repository.
func NewPostgresTelemetryRepository(db *sql.DB) repositories.TelemetryRepository {
	return &PostgresTelemetryRepository{db: db}
}

// RecordEvent appends one telemetry row.
func (r *PostgresTelemetryRepository) RecordEvent(ctx context.Context, event *entities.TelemetryEvent) error {
	query := `
		INSERT INTO gov_app.app_telemetry
			(session_id, user_name, role_name, page_name, action, duration_ms, query_count, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
	`
	_, err := r.db.ExecContext(ctx, query,
		event.SessionID,
		event.UserName,
		event.RoleName,
		event.PageName,
		event.Action,
		event.DurationMS,
		event.QueryCount,
		event.ErrorMessage,
	)
	if isUndefinedTable(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to record telemetry event: %w", err)
	}
	return nil
}
