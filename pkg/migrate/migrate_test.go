package migrate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations should validate: %v", err)
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not_versioned.sql")
	if err := os.WriteFile(path, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename to fail validation")
	}
}

func TestCreateSQLMigrationRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Orders Table!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("migration created outside dir: %s", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}
}
