package entities

import "testing"

func TestAccessLevelRank(t *testing.T) {
	tests := []struct {
		name  string
		level AccessLevel
		want  int
	}{
		{name: "read ranks lowest", level: LevelRead, want: 1},
		{name: "write ranks middle", level: LevelWrite, want: 2},
		{name: "admin ranks highest", level: LevelAdmin, want: 3},
		{name: "unknown level ranks zero", level: AccessLevel("SUPERUSER"), want: 0},
		{name: "empty level ranks zero", level: AccessLevel(""), want: 0},
		{name: "lowercase is not recognized", level: AccessLevel("read"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.Rank(); got != tt.want {
				t.Errorf("Rank(%q) = %d, want %d", tt.level, got, tt.want)
			}
		})
	}
}

func TestAccessLevelOrdering(t *testing.T) {
	// The rank order is the whole access model: each level must admit
	// itself and everything below it.
	levels := []AccessLevel{LevelRead, LevelWrite, LevelAdmin}
	for i, lower := range levels {
		for _, higher := range levels[i:] {
			if higher.Rank() < lower.Rank() {
				t.Errorf("Rank(%s) < Rank(%s), order broken", higher, lower)
			}
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		name string
		role string
		want string
	}{
		{name: "empty role becomes public", role: "", want: "PUBLIC"},
		{name: "whitespace role becomes public", role: "   ", want: "PUBLIC"},
		{name: "lowercase is uppercased", role: "data_steward", want: "DATA_STEWARD"},
		{name: "surrounding whitespace trimmed", role: "  Governance_Admin ", want: "GOVERNANCE_ADMIN"},
		{name: "already canonical", role: "AUDIT_ROLE", want: "AUDIT_ROLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeRole(tt.role); got != tt.want {
				t.Errorf("NormalizeRole(%q) = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}

func TestNormalizeScope(t *testing.T) {
	if got := NormalizeScope(" home "); got != "HOME" {
		t.Errorf("NormalizeScope(\" home \") = %q, want HOME", got)
	}
	// Unlike roles, an empty scope stays empty
	if got := NormalizeScope(""); got != "" {
		t.Errorf("NormalizeScope(\"\") = %q, want empty", got)
	}
}
