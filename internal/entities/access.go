package entities

import (
	"strings"
	"time"
)

// AccessLevel is an ordered permission tier: READ < WRITE < ADMIN.
type AccessLevel string

const (
	LevelRead  AccessLevel = "READ"
	LevelWrite AccessLevel = "WRITE"
	LevelAdmin AccessLevel = "ADMIN"
)

// Rank maps an access level to its position in the READ < WRITE < ADMIN
// order. Unrecognized levels rank 0 and therefore lose every comparison
// against a recognized required level.
func (l AccessLevel) Rank() int {
	switch l {
	case LevelRead:
		return 1
	case LevelWrite:
		return 2
	case LevelAdmin:
		return 3
	default:
		return 0
	}
}

// Domain visibility types as stored in the domain_visibility table.
const (
	VisibilityFull    = "FULL"
	VisibilityLimited = "LIMITED"
	VisibilityNone    = "NONE"
)

// RoleWhenEmpty is the role assumed when a request carries no role at all.
const RoleWhenEmpty = "PUBLIC"

// NormalizeRole canonicalizes a free-form role string. An empty role is
// treated as PUBLIC.
func NormalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role == "" {
		return RoleWhenEmpty
	}
	return role
}

// NormalizeScope canonicalizes a page or domain identifier.
func NormalizeScope(scope string) string {
	return strings.ToUpper(strings.TrimSpace(scope))
}

// AccessRule is a single row of the role_page_access configuration table.
// Rules are authored externally; this system only reads them. When
// duplicates exist for a (role, page) pair the first match wins.
type AccessRule struct {
	Role  string
	Page  string
	Level AccessLevel
}

// DomainRule is a single row of the domain_visibility configuration table.
type DomainRule struct {
	Role         string
	Domain       string
	AccessType   string
	Restrictions string
}

// AccessDecision is the outcome of resolving a role against a page or
// domain. It is computed per request and never persisted except as an
// audit log row.
type AccessDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

// AccessAttempt is an append-only audit row recording one access decision.
type AccessAttempt struct {
	UserName   string
	RoleName   string
	PageName   string
	Action     string
	Allowed    bool
	Reason     string
	OccurredAt time.Time
}

// Identity is the caller's user and role as presented to a page request.
// The warehouse session that authenticated them is outside this system.
type Identity struct {
	User string `json:"user"`
	Role string `json:"role"`
}
