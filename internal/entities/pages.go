package entities

// Dashboard page names. Every page requires READ access unless a handler
// asks for a higher level.
const (
	PageHome       = "HOME"
	PageDQExplorer = "DQ_EXPLORER"
	PageLineage    = "LINEAGE"
	PageOwnership  = "OWNERSHIP"
	PageGlossary   = "GLOSSARY"
	PageContracts  = "CONTRACTS"
	PageRisk       = "RISK"
)

// Pages returns all dashboard page names.
func Pages() []string {
	return []string{
		PageHome,
		PageDQExplorer,
		PageLineage,
		PageOwnership,
		PageGlossary,
		PageContracts,
		PageRisk,
	}
}
