package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/churrascometro/churrascometro/internal/config"
)

func TestSplitStatements(t *testing.T) {
	script := `
-- a comment; with a semicolon
CREATE TABLE a (x TEXT DEFAULT 'a;b');
INSERT INTO a VALUES ('it''s');
SELECT 1`

	got := splitStatements(script)
	if len(got) != 3 {
		t.Fatalf("splitStatements() returned %d statements: %q", len(got), got)
	}
	if !strings.Contains(got[0], "'a;b'") {
		t.Errorf("statement 0 = %q, want quoted semicolon kept", got[0])
	}
	if got[2] != "SELECT 1" {
		t.Errorf("statement 2 = %q", got[2])
	}
}

func TestParseMigration(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantUp   string
		wantDown string
	}{
		{"no markers", "CREATE TABLE t (x);", "CREATE TABLE t (x);", ""},
		{"up only", "-- +migrate Up\nCREATE TABLE t (x);", "CREATE TABLE t (x);", ""},
		{"up and down", "-- +migrate Up\nA;\n-- +migrate Down\nB;", "A;", "B;"},
		{"down first", "-- +migrate Down\nB;\n-- +migrate Up\nA;", "A;", "B;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, down := parseMigration(tt.content)
			if up != tt.wantUp || down != tt.wantDown {
				t.Errorf("parseMigration() = %q, %q, want %q, %q", up, down, tt.wantUp, tt.wantDown)
			}
		})
	}
}

func TestMigrator_UpStatusDown(t *testing.T) {
	ctx := context.Background()
	db, err := NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory() error = %v", err)
	}
	defer db.Close()

	m, err := NewMigrator(db)
	if err != nil {
		t.Fatalf("NewMigrator() error = %v", err)
	}

	result, err := m.MigrateUp(ctx)
	if err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}
	if len(result.Applied) != len(m.Migrations()) {
		t.Errorf("applied %d migrations, want %d", len(result.Applied), len(m.Migrations()))
	}

	// second run is a no-op
	again, err := m.MigrateUp(ctx)
	if err != nil {
		t.Fatalf("second MigrateUp() error = %v", err)
	}
	if len(again.Applied) != 0 {
		t.Errorf("second MigrateUp() applied %d", len(again.Applied))
	}

	status, err := m.Status(ctx)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	for _, s := range status {
		if !s.Applied || s.Modified {
			t.Errorf("migration %d applied=%v modified=%v", s.Version, s.Applied, s.Modified)
		}
	}

	if _, err := db.ExecContext(ctx, "SELECT COUNT(*) FROM store_prices"); err != nil {
		t.Errorf("schema missing store_prices: %v", err)
	}

	if _, err := m.MigrateDown(ctx); err != nil {
		t.Fatalf("MigrateDown() error = %v", err)
	}
	if _, err := db.ExecContext(ctx, "SELECT COUNT(*) FROM store_prices"); err == nil {
		t.Error("store_prices still present after rollback")
	}
}

func TestOpen_BackupAndStats(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	if err := os.MkdirAll(backupDir, 0750); err != nil {
		t.Fatal(err)
	}

	cfg := &config.DatabaseConfig{Path: filepath.Join(dir, "test.db"), BackupRetentionDays: 1}
	db, err := Open(cfg.Path, cfg, backupDir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	m, err := NewMigrator(db)
	if err != nil {
		t.Fatalf("NewMigrator() error = %v", err)
	}
	if _, err := m.MigrateUp(ctx); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}

	if err := db.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.SchemaVersion != 1 {
		t.Errorf("SchemaVersion = %d, want 1", stats.SchemaVersion)
	}
	if stats.JournalMode != "wal" {
		t.Errorf("JournalMode = %q, want wal", stats.JournalMode)
	}

	// an old file is pruned by the next backup
	stale := filepath.Join(backupDir, "churrascometro-old.db")
	if err := os.WriteFile(stale, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	old := time.Now().AddDate(0, 0, -3)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}

	path, err := db.Backup(ctx)
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("backup file missing: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale backup not pruned: %v", err)
	}

	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := db.HealthCheck(ctx); err != ErrClosed {
		t.Errorf("HealthCheck() after Close = %v, want ErrClosed", err)
	}

	report, err := AttemptRecovery(cfg.Path, backupDir)
	if err != nil {
		t.Fatalf("AttemptRecovery() error = %v", err)
	}
	if report.Result != RecoveryHealthy {
		t.Errorf("Result = %v, want healthy", report.Result)
	}
}

func TestAttemptRecovery_RestoresBackup(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	if err := os.MkdirAll(backupDir, 0750); err != nil {
		t.Fatal(err)
	}
	dbPath := filepath.Join(dir, "test.db")

	db, err := Open(dbPath, &config.DatabaseConfig{Path: dbPath}, backupDir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := db.ExecContext(ctx, "CREATE TABLE t (x INTEGER)"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Backup(ctx); err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	db.Close()

	if err := os.WriteFile(dbPath, []byte(strings.Repeat("garbage", 1024)), 0600); err != nil {
		t.Fatal(err)
	}
	os.Remove(dbPath + "-wal")

	report, err := AttemptRecovery(dbPath, backupDir)
	if err != nil {
		t.Fatalf("AttemptRecovery() error = %v", err)
	}
	if report.Result != RecoveryFromBackup || report.BackupUsed == "" {
		t.Errorf("report = %+v, want restored from backup", report)
	}
}

func TestAttemptRecovery_MissingFile(t *testing.T) {
	report, err := AttemptRecovery(filepath.Join(t.TempDir(), "none.db"), "")
	if err != nil {
		t.Fatalf("AttemptRecovery() error = %v", err)
	}
	if report.Result != RecoveryHealthy || len(report.Steps) != 1 {
		t.Errorf("report = %+v", report)
	}
}
