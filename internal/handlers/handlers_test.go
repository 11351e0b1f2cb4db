package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kanamori/govport/internal/entities"
	infcache "github.com/kanamori/govport/internal/infrastructure/cache"
	"github.com/kanamori/govport/internal/infrastructure/metrics"
	"github.com/kanamori/govport/internal/repositories"
	"github.com/kanamori/govport/internal/services/authz"
	"github.com/kanamori/govport/internal/services/dashboard"
	"github.com/kanamori/govport/pkg/cache/memorycache"
)

// --- mocks ---

type mockRuleRepo struct {
	pageRules map[string]*entities.AccessRule // "role/page" -> rule
	err       error
}

func (m *mockRuleRepo) GetPageRule(ctx context.Context, role, page string) (*entities.AccessRule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pageRules[role+"/"+page], nil
}

func (m *mockRuleRepo) GetDomainRule(ctx context.Context, role, domain string) (*entities.DomainRule, error) {
	return nil, m.err
}

func (m *mockRuleRepo) ListPageRules(ctx context.Context, role string) ([]*entities.AccessRule, error) {
	return nil, m.err
}

func (m *mockRuleRepo) AccessibleDomains(ctx context.Context, role string) ([]string, error) {
	return nil, m.err
}

type mockAuditRepo struct {
	attempts []*entities.AccessAttempt
}

func (m *mockAuditRepo) RecordAccess(ctx context.Context, attempt *entities.AccessAttempt) error {
	m.attempts = append(m.attempts, attempt)
	return nil
}

type mockTelemetryRepo struct {
	events []*entities.TelemetryEvent
}

func (m *mockTelemetryRepo) RecordEvent(ctx context.Context, event *entities.TelemetryEvent) error {
	m.events = append(m.events, event)
	return nil
}

type mockFlagRepo struct {
	flags map[string]entities.FeatureFlag
}

func (m *mockFlagRepo) FlagsForRole(ctx context.Context, role string) (map[string]entities.FeatureFlag, error) {
	if m.flags == nil {
		return map[string]entities.FeatureFlag{}, nil
	}
	return m.flags, nil
}

type mockGovRepo struct {
	health  []entities.HealthRun
	lineage *entities.DatasetLineage
}

func (m *mockGovRepo) TodayHealth(ctx context.Context, f repositories.HealthFilter) ([]entities.HealthRun, error) {
	return m.health, nil
}

func (m *mockGovRepo) DQResults(ctx context.Context, f repositories.DQFilter) ([]entities.DQResult, error) {
	return []entities.DQResult{}, nil
}

func (m *mockGovRepo) ControlResults(ctx context.Context, f repositories.ControlFilter) ([]entities.ControlResult, error) {
	return []entities.ControlResult{}, nil
}

func (m *mockGovRepo) DatasetOwners(ctx context.Context, domain string) ([]entities.DatasetOwner, error) {
	return []entities.DatasetOwner{}, nil
}

func (m *mockGovRepo) LineageEdges(ctx context.Context, f repositories.LineageFilter) ([]entities.LineageEdge, error) {
	return []entities.LineageEdge{}, nil
}

func (m *mockGovRepo) DatasetLineage(ctx context.Context, datasetID string, depth int) (*entities.DatasetLineage, error) {
	if m.lineage != nil {
		return m.lineage, nil
	}
	return &entities.DatasetLineage{}, nil
}

func (m *mockGovRepo) BusinessGlossary(ctx context.Context, f repositories.GlossaryFilter) ([]entities.GlossaryTerm, error) {
	return []entities.GlossaryTerm{}, nil
}

func (m *mockGovRepo) DataContracts(ctx context.Context, f repositories.ContractFilter) ([]entities.DataContract, error) {
	return []entities.DataContract{}, nil
}

func (m *mockGovRepo) RiskItems(ctx context.Context, f repositories.RiskFilter) ([]entities.RiskItem, error) {
	return []entities.RiskItem{}, nil
}

func (m *mockGovRepo) SearchDatasets(ctx context.Context, term string, limit int) ([]entities.Dataset, error) {
	return []entities.Dataset{{DatasetID: "ds1", ObjectName: "fct_orders"}}, nil
}

type mockLookupRepo struct {
	values map[repositories.LookupKind][]string
}

func (m *mockLookupRepo) Lookup(ctx context.Context, kind repositories.LookupKind) ([]string, error) {
	return m.values[kind], nil
}

// --- test harness ---

type testServer struct {
	handler   *Handler
	router    http.Handler
	audit     *mockAuditRepo
	telemetry *mockTelemetryRepo
}

func newTestServer(t *testing.T, rules map[string]*entities.AccessRule, gov *mockGovRepo) *testServer {
	t.Helper()

	if gov == nil {
		gov = &mockGovRepo{}
	}
	audit := &mockAuditRepo{}
	telemetry := &mockTelemetryRepo{}

	resolver := authz.NewResolver(&mockRuleRepo{pageRules: rules})
	guard := authz.NewGuard(resolver, audit, telemetry)
	dash := dashboard.NewService(gov)

	lookupCache := memorycache.New(&memorycache.Config{MaxEntries: 100})
	t.Cleanup(func() { lookupCache.Close() })
	lookups := infcache.NewLookupCache(
		&mockLookupRepo{values: map[repositories.LookupKind][]string{
			repositories.LookupDomains: {"FINANCE", "SALES"},
		}},
		lookupCache, time.Minute, time.Minute,
	)

	// nil exporter: promauto registration is process-global and would
	// collide across tests
	h := New(dash, guard, resolver, lookups, &mockFlagRepo{}, nil, metrics.NewCollector(), nil)
	return &testServer{handler: h, router: h.Routes(), audit: audit, telemetry: telemetry}
}

func (s *testServer) get(t *testing.T, path, role string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-User", "tester")
	if role != "" {
		req.Header.Set("X-Role", role)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// --- tests ---

func TestHomeAllowed(t *testing.T) {
	srv := newTestServer(t, map[string]*entities.AccessRule{
		"DATA_STEWARD/HOME": {Role: "DATA_STEWARD", Page: "HOME", Level: entities.LevelWrite},
	}, &mockGovRepo{health: []entities.HealthRun{
		{RunID: "r1", DomainName: "SALES", Outcome: "PASS", DurationMinutes: 5},
	}})

	rec := srv.get(t, "/api/v1/home", "data_steward")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		KPIs struct {
			Total int `json:"total"`
		} `json:"kpis"`
		Rows          []entities.HealthRun `json:"rows"`
		FilterSummary string               `json:"filter_summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.KPIs.Total != 1 || len(payload.Rows) != 1 {
		t.Errorf("payload = %+v", payload)
	}
	if payload.FilterSummary != "No active filters" {
		t.Errorf("FilterSummary = %q", payload.FilterSummary)
	}

	if len(srv.audit.attempts) != 1 || !srv.audit.attempts[0].Allowed {
		t.Errorf("expected one allowed audit row, got %+v", srv.audit.attempts)
	}
}

func TestHomeDenied(t *testing.T) {
	srv := newTestServer(t, map[string]*entities.AccessRule{
		"PUBLIC/HOME": {Role: "PUBLIC", Page: "HOME", Level: entities.AccessLevel("NONE")},
	}, nil)

	rec := srv.get(t, "/api/v1/home", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	var payload errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Error != "access denied" || payload.Reason != "rule=NONE" {
		t.Errorf("payload = %+v", payload)
	}

	// Denial is audited and produces a telemetry event
	if len(srv.audit.attempts) != 1 || srv.audit.attempts[0].Allowed {
		t.Errorf("expected one denied audit row, got %+v", srv.audit.attempts)
	}
	if len(srv.telemetry.events) != 1 || srv.telemetry.events[0].Action != "ACCESS_DENIED_READ" {
		t.Errorf("expected denial telemetry, got %+v", srv.telemetry.events)
	}
}

func TestHomeDefaultAllowWithoutRules(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := srv.get(t, "/api/v1/home", "SOME_UNKNOWN_ROLE")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (missing rule defaults open)", rec.Code)
	}
}

func TestHomeExportPermission(t *testing.T) {
	rules := map[string]*entities.AccessRule{
		"AUDIT_ROLE/HOME":   {Role: "AUDIT_ROLE", Page: "HOME", Level: entities.LevelRead},
		"DATA_STEWARD/HOME": {Role: "DATA_STEWARD", Page: "HOME", Level: entities.LevelRead},
	}
	gov := &mockGovRepo{health: []entities.HealthRun{
		{RunID: "r1", Outcome: "PASS", StartedAt: time.Now(), DurationMinutes: 5},
	}}

	t.Run("role without export permission gets 403", func(t *testing.T) {
		srv := newTestServer(t, rules, gov)
		rec := srv.get(t, "/api/v1/home/export", "AUDIT_ROLE")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("steward downloads csv", func(t *testing.T) {
		srv := newTestServer(t, rules, gov)
		rec := srv.get(t, "/api/v1/home/export", "DATA_STEWARD")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
			t.Errorf("Content-Type = %q, want text/csv", ct)
		}
		if !strings.HasPrefix(rec.Body.String(), "run_id,") {
			t.Errorf("body does not start with csv header: %q", rec.Body.String())
		}
	})
}

func TestLookupEndpoint(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	t.Run("known kind", func(t *testing.T) {
		rec := srv.get(t, "/api/v1/lookups/domains", "DATA_STEWARD")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var payload struct {
			Values []string `json:"values"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(payload.Values) != 2 {
			t.Errorf("values = %v", payload.Values)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		rec := srv.get(t, "/api/v1/lookups/colors", "DATA_STEWARD")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestDatasetSearchRequiresTerm(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := srv.get(t, "/api/v1/datasets/search", "DATA_STEWARD")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = srv.get(t, "/api/v1/datasets/search?q=orders", "DATA_STEWARD")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestMeEndpoint(t *testing.T) {
	srv := newTestServer(t, map[string]*entities.AccessRule{
		"GOVERNANCE_ANALYST/RISK": {Role: "GOVERNANCE_ANALYST", Page: "RISK", Level: entities.AccessLevel("NONE")},
	}, nil)

	rec := srv.get(t, "/api/v1/me", "governance_analyst")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var payload meResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.User != "tester" || payload.Role != "GOVERNANCE_ANALYST" {
		t.Errorf("identity = %s/%s", payload.User, payload.Role)
	}
	if len(payload.Pages) != len(entities.Pages()) {
		t.Errorf("pages map has %d entries, want %d", len(payload.Pages), len(entities.Pages()))
	}
	if payload.Pages[entities.PageRisk] {
		t.Error("RISK should be denied by the NONE rule")
	}
	if !payload.Pages[entities.PageHome] {
		t.Error("HOME should default open with no rule")
	}
}

func TestPageEndpointsShareGuard(t *testing.T) {
	// A role denied on every page gets 403 from each page endpoint
	rules := map[string]*entities.AccessRule{}
	for _, page := range entities.Pages() {
		rules["PUBLIC/"+page] = &entities.AccessRule{Role: "PUBLIC", Page: page, Level: entities.AccessLevel("NONE")}
	}
	srv := newTestServer(t, rules, nil)

	paths := []string{
		"/api/v1/home",
		"/api/v1/dq/results",
		"/api/v1/controls/results",
		"/api/v1/lineage/edges",
		"/api/v1/lineage/datasets/ds1",
		"/api/v1/ownership",
		"/api/v1/glossary",
		"/api/v1/contracts",
		"/api/v1/risk",
	}
	for _, path := range paths {
		rec := srv.get(t, path, "")
		if rec.Code != http.StatusForbidden {
			t.Errorf("GET %s status = %d, want 403", path, rec.Code)
		}
	}
}
