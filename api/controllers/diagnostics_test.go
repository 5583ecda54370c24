package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkwellpress/inkwell-backend/internal/diagnostics"
)

type stubDiagnosticsService struct {
	report *diagnostics.Report
	err    error
}

func (s *stubDiagnosticsService) Run(ctx context.Context) (*diagnostics.Report, error) {
	return s.report, s.err
}

func TestDatabaseDiagnosticsReturnsReport(t *testing.T) {
	report := &diagnostics.Report{
		SupabaseURL:      "https://abc.supabase.co",
		SupabaseKeyValid: true,
		Tables: map[string]diagnostics.TableStatus{
			"books": {Exists: true},
		},
		ConnectionTest: diagnostics.CheckResult{OK: true},
		InsertTest:     diagnostics.CheckResult{OK: true},
		DeleteTest:     diagnostics.CheckResult{OK: true},
	}
	handler := DatabaseDiagnostics(&stubDiagnosticsService{report: report}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/diagnostics/database", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data diagnostics.Report `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.ConnectionTest.OK {
		t.Fatalf("unexpected report %+v", envelope.Data)
	}
	if envelope.Data.SupabaseURL != "https://abc.supabase.co" {
		t.Fatalf("unexpected url %q", envelope.Data.SupabaseURL)
	}
}

func TestDatabaseDiagnosticsWithoutService(t *testing.T) {
	handler := DatabaseDiagnostics(nil, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/diagnostics/database", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
