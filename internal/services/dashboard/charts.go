package dashboard

import (
	"sort"
	"time"

	"github.com/kanamori/govport/internal/entities"
)

// Chart colors shared across pages so every widget renders outcomes and
// severities consistently.
var (
	OutcomeColors = map[string]string{
		entities.OutcomePass: "#2ca02c",
		entities.OutcomeWarn: "#ff7f0e",
		entities.OutcomeFail: "#d62728",
	}

	SeverityColors = map[string]string{
		entities.SeverityCritical: "#d62728",
		entities.SeverityHigh:     "#ff4444",
		entities.SeverityMedium:   "#ff7f0e",
		entities.SeverityLow:      "#ffd700",
	}
)

// PieChart is a label/value/color triple list for a distribution widget.
type PieChart struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Colors []string `json:"colors"`
}

// BarSeries is one outcome's counts across the category axis.
type BarSeries struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Values []int  `json:"values"`
}

// StackedBarChart is a per-category stacked count widget.
type StackedBarChart struct {
	Categories []string    `json:"categories"`
	Series     []BarSeries `json:"series"`
}

// BoxSummary is the five-number summary of a duration distribution.
type BoxSummary struct {
	Outcome string  `json:"outcome"`
	Min     float64 `json:"min"`
	Q1      float64 `json:"q1"`
	Median  float64 `json:"median"`
	Q3      float64 `json:"q3"`
	Max     float64 `json:"max"`
}

// TrendPoint is one time bucket of outcome counts.
type TrendPoint struct {
	Bucket time.Time      `json:"bucket"`
	Counts map[string]int `json:"counts"`
}

// OutcomeDistribution counts outcome values into a pie chart. Empty
// input produces an empty chart, never an error.
func OutcomeDistribution(outcomes []string) PieChart {
	counts := map[string]int{}
	for _, o := range outcomes {
		counts[o]++
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	chart := PieChart{Labels: []string{}, Values: []int{}, Colors: []string{}}
	for _, label := range labels {
		chart.Labels = append(chart.Labels, label)
		chart.Values = append(chart.Values, counts[label])
		chart.Colors = append(chart.Colors, OutcomeColors[label])
	}
	return chart
}

// DomainOutcomeChart groups health runs into per-domain stacked outcome
// counts, domains sorted by name.
func DomainOutcomeChart(runs []entities.HealthRun) StackedBarChart {
	perDomain := map[string]map[string]int{}
	for _, run := range runs {
		if run.DomainName == "" {
			continue
		}
		if perDomain[run.DomainName] == nil {
			perDomain[run.DomainName] = map[string]int{}
		}
		perDomain[run.DomainName][run.Outcome]++
	}

	categories := make([]string, 0, len(perDomain))
	for domain := range perDomain {
		categories = append(categories, domain)
	}
	sort.Strings(categories)

	chart := StackedBarChart{Categories: categories, Series: []BarSeries{}}
	for _, outcome := range []string{entities.OutcomePass, entities.OutcomeWarn, entities.OutcomeFail} {
		series := BarSeries{Name: outcome, Color: OutcomeColors[outcome], Values: make([]int, len(categories))}
		for i, domain := range categories {
			series.Values[i] = perDomain[domain][outcome]
		}
		chart.Series = append(chart.Series, series)
	}
	return chart
}

// DurationByOutcome computes a box-plot summary of run durations per
// outcome. Runs without a positive duration are skipped.
func DurationByOutcome(runs []entities.HealthRun) []BoxSummary {
	perOutcome := map[string][]float64{}
	for _, run := range runs {
		if run.DurationMinutes <= 0 {
			continue
		}
		perOutcome[run.Outcome] = append(perOutcome[run.Outcome], run.DurationMinutes)
	}

	outcomes := make([]string, 0, len(perOutcome))
	for outcome := range perOutcome {
		outcomes = append(outcomes, outcome)
	}
	sort.Strings(outcomes)

	summaries := []BoxSummary{}
	for _, outcome := range outcomes {
		durations := perOutcome[outcome]
		sort.Float64s(durations)
		summaries = append(summaries, BoxSummary{
			Outcome: outcome,
			Min:     durations[0],
			Q1:      quantile(durations, 0.25),
			Median:  quantile(durations, 0.5),
			Q3:      quantile(durations, 0.75),
			Max:     durations[len(durations)-1],
		})
	}
	return summaries
}

// OutcomeTrend buckets health runs by hour of start time with per-outcome
// counts, buckets sorted ascending.
func OutcomeTrend(runs []entities.HealthRun) []TrendPoint {
	perBucket := map[time.Time]map[string]int{}
	for _, run := range runs {
		bucket := run.StartedAt.Truncate(time.Hour)
		if perBucket[bucket] == nil {
			perBucket[bucket] = map[string]int{}
		}
		perBucket[bucket][run.Outcome]++
	}

	buckets := make([]time.Time, 0, len(perBucket))
	for bucket := range perBucket {
		buckets = append(buckets, bucket)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })

	points := []TrendPoint{}
	for _, bucket := range buckets {
		points = append(points, TrendPoint{Bucket: bucket, Counts: perBucket[bucket]})
	}
	return points
}

// quantile computes the p-quantile of sorted values by linear
// interpolation between closest ranks.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lower := int(pos)
	frac := pos - float64(lower)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}
