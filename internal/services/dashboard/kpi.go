package dashboard

import "github.com/kanamori/govport/internal/entities"

// KPISummary is the headline metric row on the HOME page.
type KPISummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Warned   int     `json:"warned"`
	Failed   int     `json:"failed"`
	PassRate float64 `json:"pass_rate"`
}

// Summarize counts outcomes across today's health runs. PassRate is a
// percentage; zero runs yields a zero rate rather than dividing by zero.
func Summarize(runs []entities.HealthRun) KPISummary {
	s := KPISummary{Total: len(runs)}
	for _, run := range runs {
		switch run.Outcome {
		case entities.OutcomePass:
			s.Passed++
		case entities.OutcomeWarn:
			s.Warned++
		case entities.OutcomeFail:
			s.Failed++
		}
	}
	if s.Total > 0 {
		s.PassRate = float64(s.Passed) / float64(s.Total) * 100
	}
	return s
}
