package dashboard

import (
	"testing"

	"github.com/kanamori/govport/internal/entities"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		runs []entities.HealthRun
		want KPISummary
	}{
		{
			name: "empty input yields zero summary",
			runs: nil,
			want: KPISummary{},
		},
		{
			name: "mixed outcomes",
			runs: []entities.HealthRun{
				{Outcome: entities.OutcomePass},
				{Outcome: entities.OutcomePass},
				{Outcome: entities.OutcomeWarn},
				{Outcome: entities.OutcomeFail},
			},
			want: KPISummary{Total: 4, Passed: 2, Warned: 1, Failed: 1, PassRate: 50},
		},
		{
			name: "all passed",
			runs: []entities.HealthRun{
				{Outcome: entities.OutcomePass},
				{Outcome: entities.OutcomePass},
			},
			want: KPISummary{Total: 2, Passed: 2, PassRate: 100},
		},
		{
			name: "unknown outcomes count toward total only",
			runs: []entities.HealthRun{
				{Outcome: "SKIPPED"},
				{Outcome: entities.OutcomePass},
			},
			want: KPISummary{Total: 2, Passed: 1, PassRate: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.runs); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
