package repositories

import (
	"context"

	"github.com/kanamori/govport/internal/entities"
)

// AuditRepository appends access decisions to the access_log table.
type AuditRepository interface {
	// RecordAccess appends one audit row. A missing access_log table is
	// not an error: the row is silently dropped.
	RecordAccess(ctx context.Context, attempt *entities.AccessAttempt) error
}

// TelemetryRepository appends usage events to the app_telemetry table.
type TelemetryRepository interface {
	RecordEvent(ctx context.Context, event *entities.TelemetryEvent) error
}
