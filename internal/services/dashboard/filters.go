package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kanamori/govport/internal/entities"
)

// RowFilter narrows the HOME detail table in memory, after the warehouse
// query ran. Empty fields match every row.
type RowFilter struct {
	Outcome     string
	MinDuration float64
}

// ApplyRowFilter filters health runs by outcome and minimum duration.
func ApplyRowFilter(runs []entities.HealthRun, f RowFilter) []entities.HealthRun {
	filtered := []entities.HealthRun{}
	for _, run := range runs {
		if f.Outcome != "" && run.Outcome != f.Outcome {
			continue
		}
		if f.MinDuration > 0 && run.DurationMinutes < f.MinDuration {
			continue
		}
		filtered = append(filtered, run)
	}
	return filtered
}

// FilterSummary renders active filters as a single display string, keys
// sorted for stable output.
func FilterSummary(active map[string]string) string {
	if len(active) == 0 {
		return "No active filters"
	}

	keys := make([]string, 0, len(active))
	for k, v := range active {
		if v != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return "No active filters"
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, active[k]))
	}
	return "Active filters: " + strings.Join(parts, " | ")
}
