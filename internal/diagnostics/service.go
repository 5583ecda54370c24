package diagnostics

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/inkwellpress/inkwell-backend/pkg/config"
	pkgerrors "github.com/inkwellpress/inkwell-backend/pkg/errors"
	"github.com/inkwellpress/inkwell-backend/pkg/logger"
)

// watchedTables are the application tables the report verifies.
var watchedTables = []string{"books", "contact_messages"}

// TableStatus reports whether one table is reachable.
type TableStatus struct {
	Exists bool   `json:"exists"`
	Error  string `json:"error,omitempty"`
}

// CheckResult is a pass/fail with an optional failure reason.
type CheckResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Report is the full database diagnostics payload.
type Report struct {
	SupabaseURL      string                 `json:"supabase_url"`
	SupabaseKeyValid bool                   `json:"supabase_key_valid"`
	Tables           map[string]TableStatus `json:"tables"`
	ConnectionTest   CheckResult            `json:"connection_test"`
	InsertTest       CheckResult            `json:"insert_test"`
	DeleteTest       CheckResult            `json:"delete_test"`
	CheckedAt        time.Time              `json:"checked_at"`
}

// Service runs the diagnostics suite against the live database.
type Service interface {
	Run(ctx context.Context) (*Report, error)
}

type service struct {
	prober Prober
	cfg    config.SupabaseConfig
	logg   *logger.Logger
}

func NewService(prober Prober, cfg config.SupabaseConfig, logg *logger.Logger) (Service, error) {
	if prober == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "diagnostics prober required")
	}
	return &service{prober: prober, cfg: cfg, logg: logg}, nil
}

// Run never fails outright: individual checks record their own errors so
// the report stays useful when the database is partially broken.
func (s *service) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		SupabaseURL:      redactURL(s.cfg.URL),
		SupabaseKeyValid: looksLikeJWT(s.cfg.ServiceKey),
		Tables:           map[string]TableStatus{},
		CheckedAt:        time.Now().UTC(),
	}

	if err := s.prober.Ping(ctx); err != nil {
		report.ConnectionTest = CheckResult{Error: err.Error()}
		s.logError(ctx, "diagnostics.connection_failed", err)
	} else {
		report.ConnectionTest = CheckResult{OK: true}
	}

	for _, table := range watchedTables {
		exists, err := s.prober.TableExists(ctx, table)
		status := TableStatus{Exists: exists}
		if err != nil {
			status.Error = err.Error()
		}
		report.Tables[table] = status
	}

	s.runWriteProbe(ctx, report)
	return report, nil
}

// runWriteProbe inserts a marker row and deletes it again. The delete is
// attempted even when asserting on the insert result, so a half-failed
// probe does not leave junk behind.
func (s *service) runWriteProbe(ctx context.Context, report *Report) {
	id, err := s.prober.InsertProbe(ctx)
	if err != nil {
		report.InsertTest = CheckResult{Error: err.Error()}
		report.DeleteTest = CheckResult{Error: "skipped: insert failed"}
		s.logError(ctx, "diagnostics.insert_failed", err)
		return
	}
	report.InsertTest = CheckResult{OK: true}

	if err := s.prober.DeleteProbe(ctx, id); err != nil {
		report.DeleteTest = CheckResult{Error: err.Error()}
		s.logError(ctx, "diagnostics.delete_failed", err)
		return
	}
	report.DeleteTest = CheckResult{OK: true}
}

func (s *service) logError(ctx context.Context, msg string, err error) {
	if s.logg != nil {
		s.logg.Error(ctx, msg, err)
	}
}

// looksLikeJWT does a shape check only: three dot-separated segments with
// base64url-decodable header and payload. It never verifies a signature.
func looksLikeJWT(token string) bool {
	token = strings.TrimSpace(token)
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts[:2] {
		if part == "" {
			return false
		}
		if _, err := base64.RawURLEncoding.DecodeString(part); err != nil {
			return false
		}
	}
	return true
}

// redactURL keeps only scheme and host so credentials embedded in the
// project URL never end up in a response body.
func redactURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if idx := strings.Index(raw, "://"); idx >= 0 {
		scheme := raw[:idx]
		rest := raw[idx+3:]
		if at := strings.Index(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		if slash := strings.Index(rest, "/"); slash >= 0 {
			rest = rest[:slash]
		}
		return scheme + "://" + rest
	}
	return raw
}
