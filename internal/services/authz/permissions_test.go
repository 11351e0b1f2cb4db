package authz

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		permission string
		want       bool
	}{
		{name: "admin holds export", role: "GOVERNANCE_ADMIN", permission: PermissionExport, want: true},
		{name: "steward holds export", role: "DATA_STEWARD", permission: PermissionExport, want: true},
		{name: "analyst holds export", role: "GOVERNANCE_ANALYST", permission: PermissionExport, want: true},
		{name: "audit role lacks export", role: "AUDIT_ROLE", permission: PermissionExport, want: false},
		{name: "public lacks export", role: "", permission: PermissionExport, want: false},
		{name: "only admin holds admin", role: "DATA_STEWARD", permission: PermissionAdmin, want: false},
		{name: "risk manager holds risk mgmt", role: "RISK_MANAGER", permission: PermissionRiskMgmt, want: true},
		{name: "privacy officer sees pii", role: "PRIVACY_OFFICER", permission: PermissionViewPII, want: true},
		{name: "lowercase role is normalized", role: "data_steward", permission: PermissionSteward, want: true},
		{name: "unknown permission grants nothing", role: "GOVERNANCE_ADMIN", permission: "LAUNCH_MISSILES", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPermission(tt.role, tt.permission); got != tt.want {
				t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.want)
			}
		})
	}
}
