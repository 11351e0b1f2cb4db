package dashboard

import (
	"reflect"
	"testing"
	"time"

	"github.com/kanamori/govport/internal/entities"
)

func TestOutcomeDistribution(t *testing.T) {
	t.Run("empty input yields empty chart", func(t *testing.T) {
		chart := OutcomeDistribution(nil)
		if len(chart.Labels) != 0 || len(chart.Values) != 0 {
			t.Errorf("expected empty chart, got %+v", chart)
		}
	})

	t.Run("counts and colors per outcome", func(t *testing.T) {
		chart := OutcomeDistribution([]string{"PASS", "FAIL", "PASS", "WARN", "PASS"})

		wantLabels := []string{"FAIL", "PASS", "WARN"}
		if !reflect.DeepEqual(chart.Labels, wantLabels) {
			t.Errorf("Labels = %v, want %v", chart.Labels, wantLabels)
		}
		wantValues := []int{1, 3, 1}
		if !reflect.DeepEqual(chart.Values, wantValues) {
			t.Errorf("Values = %v, want %v", chart.Values, wantValues)
		}
		if chart.Colors[1] != OutcomeColors[entities.OutcomePass] {
			t.Errorf("PASS color = %q, want %q", chart.Colors[1], OutcomeColors[entities.OutcomePass])
		}
	})
}

func TestDomainOutcomeChart(t *testing.T) {
	runs := []entities.HealthRun{
		{DomainName: "SALES", Outcome: entities.OutcomePass},
		{DomainName: "SALES", Outcome: entities.OutcomeFail},
		{DomainName: "FINANCE", Outcome: entities.OutcomePass},
		{DomainName: "", Outcome: entities.OutcomePass}, // no domain, skipped
	}

	chart := DomainOutcomeChart(runs)

	if !reflect.DeepEqual(chart.Categories, []string{"FINANCE", "SALES"}) {
		t.Fatalf("Categories = %v, want [FINANCE SALES]", chart.Categories)
	}
	if len(chart.Series) != 3 {
		t.Fatalf("got %d series, want 3 (PASS, WARN, FAIL)", len(chart.Series))
	}

	// Series order is PASS, WARN, FAIL
	pass, fail := chart.Series[0], chart.Series[2]
	if !reflect.DeepEqual(pass.Values, []int{1, 1}) {
		t.Errorf("PASS values = %v, want [1 1]", pass.Values)
	}
	if !reflect.DeepEqual(fail.Values, []int{0, 1}) {
		t.Errorf("FAIL values = %v, want [0 1]", fail.Values)
	}
}

func TestDurationByOutcome(t *testing.T) {
	runs := []entities.HealthRun{
		{Outcome: "PASS", DurationMinutes: 10},
		{Outcome: "PASS", DurationMinutes: 20},
		{Outcome: "PASS", DurationMinutes: 30},
		{Outcome: "PASS", DurationMinutes: 40},
		{Outcome: "PASS", DurationMinutes: 50},
		{Outcome: "FAIL", DurationMinutes: 5},
		{Outcome: "WARN", DurationMinutes: 0}, // non-positive, skipped
	}

	summaries := DurationByOutcome(runs)
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}

	// Sorted by outcome name: FAIL before PASS
	fail, pass := summaries[0], summaries[1]
	if fail.Outcome != "FAIL" || fail.Min != 5 || fail.Max != 5 || fail.Median != 5 {
		t.Errorf("FAIL summary = %+v", fail)
	}
	if pass.Outcome != "PASS" {
		t.Fatalf("second summary outcome = %q, want PASS", pass.Outcome)
	}
	if pass.Min != 10 || pass.Q1 != 20 || pass.Median != 30 || pass.Q3 != 40 || pass.Max != 50 {
		t.Errorf("PASS summary = %+v, want 10/20/30/40/50", pass)
	}
}

func TestOutcomeTrend(t *testing.T) {
	base := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	runs := []entities.HealthRun{
		{Outcome: "PASS", StartedAt: base.Add(5 * time.Minute)},
		{Outcome: "FAIL", StartedAt: base.Add(30 * time.Minute)},
		{Outcome: "PASS", StartedAt: base.Add(70 * time.Minute)},
	}

	points := OutcomeTrend(runs)
	if len(points) != 2 {
		t.Fatalf("got %d buckets, want 2", len(points))
	}
	if !points[0].Bucket.Equal(base) {
		t.Errorf("first bucket = %v, want %v", points[0].Bucket, base)
	}
	if points[0].Counts["PASS"] != 1 || points[0].Counts["FAIL"] != 1 {
		t.Errorf("first bucket counts = %v", points[0].Counts)
	}
	if points[1].Counts["PASS"] != 1 {
		t.Errorf("second bucket counts = %v", points[1].Counts)
	}
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{name: "empty", sorted: nil, p: 0.5, want: 0},
		{name: "single value", sorted: []float64{7}, p: 0.25, want: 7},
		{name: "median of pair interpolates", sorted: []float64{10, 20}, p: 0.5, want: 15},
		{name: "upper bound", sorted: []float64{1, 2, 3}, p: 1, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quantile(tt.sorted, tt.p); got != tt.want {
				t.Errorf("quantile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}
