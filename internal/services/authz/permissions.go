package authz

import "github.com/kanamori/govport/internal/entities"

// Named permissions checked outside the page-level rank comparison.
const (
	PermissionExport         = "EXPORT"
	PermissionAdmin          = "ADMIN"
	PermissionAudit          = "AUDIT"
	PermissionRiskMgmt       = "RISK_MGMT"
	PermissionSteward        = "STEWARD"
	PermissionAnalyst        = "ANALYST"
	PermissionViewPII        = "VIEW_PII"
	PermissionModifyGlossary = "MODIFY_GLOSSARY"
	PermissionApproveChanges = "APPROVE_CHANGES"
	PermissionCreateTickets  = "CREATE_TICKETS"
)

// permissionRoles maps each named permission to the roles that hold it.
// Authored in code rather than configuration; unknown permissions grant
// nothing.
var permissionRoles = map[string][]string{
	PermissionExport:         {"GOVERNANCE_ADMIN", "DATA_STEWARD", "GOVERNANCE_ANALYST"},
	PermissionAdmin:          {"GOVERNANCE_ADMIN"},
	PermissionAudit:          {"GOVERNANCE_ADMIN", "AUDIT_ROLE"},
	PermissionRiskMgmt:       {"GOVERNANCE_ADMIN", "RISK_MANAGER", "AUDIT_ROLE"},
	PermissionSteward:        {"GOVERNANCE_ADMIN", "DATA_STEWARD"},
	PermissionAnalyst:        {"GOVERNANCE_ADMIN", "DATA_STEWARD", "GOVERNANCE_ANALYST"},
	PermissionViewPII:        {"GOVERNANCE_ADMIN", "DATA_STEWARD", "PRIVACY_OFFICER"},
	PermissionModifyGlossary: {"GOVERNANCE_ADMIN", "DATA_STEWARD"},
	PermissionApproveChanges: {"GOVERNANCE_ADMIN", "DATA_STEWARD"},
	PermissionCreateTickets:  {"GOVERNANCE_ADMIN", "DATA_STEWARD", "GOVERNANCE_ANALYST"},
}

// HasPermission reports whether a role holds a named permission.
func HasPermission(role, permission string) bool {
	role = entities.NormalizeRole(role)
	for _, allowed := range permissionRoles[permission] {
		if allowed == role {
			return true
		}
	}
	return false
}
