package dashboard

import (
	"testing"

	"github.com/kanamori/govport/internal/entities"
)

func TestApplyRowFilter(t *testing.T) {
	runs := []entities.HealthRun{
		{RunID: "r1", Outcome: "PASS", DurationMinutes: 5},
		{RunID: "r2", Outcome: "FAIL", DurationMinutes: 50},
		{RunID: "r3", Outcome: "PASS", DurationMinutes: 120},
	}

	tests := []struct {
		name    string
		filter  RowFilter
		wantIDs []string
	}{
		{name: "empty filter keeps everything", filter: RowFilter{}, wantIDs: []string{"r1", "r2", "r3"}},
		{name: "outcome filter", filter: RowFilter{Outcome: "PASS"}, wantIDs: []string{"r1", "r3"}},
		{name: "duration filter", filter: RowFilter{MinDuration: 30}, wantIDs: []string{"r2", "r3"}},
		{name: "combined filters", filter: RowFilter{Outcome: "PASS", MinDuration: 30}, wantIDs: []string{"r3"}},
		{name: "no match yields empty not nil", filter: RowFilter{Outcome: "WARN"}, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyRowFilter(runs, tt.filter)
			if got == nil {
				t.Fatal("filtered slice is nil, want empty slice")
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d rows, want %d", len(got), len(tt.wantIDs))
			}
			for i, run := range got {
				if run.RunID != tt.wantIDs[i] {
					t.Errorf("row %d = %s, want %s", i, run.RunID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestFilterSummary(t *testing.T) {
	tests := []struct {
		name   string
		active map[string]string
		want   string
	}{
		{name: "nil map", active: nil, want: "No active filters"},
		{name: "empty map", active: map[string]string{}, want: "No active filters"},
		{name: "empty values ignored", active: map[string]string{"domain": ""}, want: "No active filters"},
		{name: "single filter", active: map[string]string{"domain": "SALES"}, want: "Active filters: domain: SALES"},
		{
			name:   "multiple filters sorted by key",
			active: map[string]string{"process": "nightly_load", "domain": "SALES"},
			want:   "Active filters: domain: SALES | process: nightly_load",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterSummary(tt.active); got != tt.want {
				t.Errorf("FilterSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}
