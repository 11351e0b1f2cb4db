package dashboard

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kanamori/govport/internal/entities"
)

// WriteHealthCSV writes health runs as CSV for download. The column set
// mirrors the HOME detail table.
func WriteHealthCSV(w io.Writer, runs []entities.HealthRun) error {
	cw := csv.NewWriter(w)

	header := []string{"run_id", "process_name", "domain_name", "target_table", "outcome", "started_at", "duration_minutes", "owners"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, run := range runs {
		record := []string{
			run.RunID,
			run.ProcessName,
			run.DomainName,
			run.TargetTable,
			run.Outcome,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(run.DurationMinutes, 'f', 1, 64),
			run.Owners,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
