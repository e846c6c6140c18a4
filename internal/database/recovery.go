package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// RecoveryResult is the outcome of AttemptRecovery.
type RecoveryResult int

const (
	RecoveryHealthy RecoveryResult = iota
	RecoveryFromWAL
	RecoveryFromBackup
	RecoveryFailed
)

func (r RecoveryResult) String() string {
	switch r {
	case RecoveryHealthy:
		return "healthy"
	case RecoveryFromWAL:
		return "wal_replayed"
	case RecoveryFromBackup:
		return "restored_from_backup"
	case RecoveryFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RecoveryReport lists the steps AttemptRecovery took.
type RecoveryReport struct {
	Result       RecoveryResult
	DatabasePath string
	BackupUsed   string
	Steps        []RecoveryStep
}

// RecoveryStep is a single named check or repair.
type RecoveryStep struct {
	Name      string
	Succeeded bool
	Message   string
	Duration  time.Duration
}

func (r *RecoveryReport) run(name string, fn func() (string, error)) bool {
	start := time.Now()
	msg, err := fn()
	step := RecoveryStep{Name: name, Succeeded: err == nil, Message: msg, Duration: time.Since(start)}
	if err != nil {
		step.Message = err.Error()
	}
	r.Steps = append(r.Steps, step)
	return step.Succeeded
}

// AttemptRecovery is run before Open. A missing file counts as healthy.
// A file failing the integrity check is repaired by replaying its WAL, and
// failing that replaced with the newest backup that passes the check. The
// damaged file is kept beside the original with a ".corrupted" suffix.
func AttemptRecovery(dbPath, backupDir string) (*RecoveryReport, error) {
	report := &RecoveryReport{DatabasePath: dbPath}

	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		report.Steps = append(report.Steps, RecoveryStep{
			Name:      "check_exists",
			Succeeded: true,
			Message:   "no database yet",
		})
		return report, nil
	}

	if report.run("integrity_check", func() (string, error) { return checkFile(dbPath) }) {
		return report, nil
	}
	slog.Warn("database failed integrity check", "path", dbPath)

	if _, err := os.Stat(dbPath + "-wal"); err == nil {
		replayed := report.run("wal_replay", func() (string, error) { return replayWAL(dbPath) }) &&
			report.run("post_wal_integrity", func() (string, error) { return checkFile(dbPath) })
		if replayed {
			report.Result = RecoveryFromWAL
			slog.Info("database recovered from WAL", "path", dbPath)
			return report, nil
		}
	}

	if backupDir != "" {
		var used string
		restored := report.run("restore_backup", func() (string, error) {
			var err error
			used, err = restoreLatestBackup(dbPath, backupDir)
			return used, err
		})
		if restored {
			report.Result = RecoveryFromBackup
			report.BackupUsed = used
			slog.Info("database restored from backup", "path", dbPath, "backup", used)
			return report, nil
		}
	}

	report.Result = RecoveryFailed
	slog.Error("database recovery failed", "path", dbPath, "steps", len(report.Steps))
	return report, errors.New("all recovery attempts failed")
}

func checkFile(path string) (string, error) {
	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := integrityCheck(ctx, conn); err != nil {
		return "", err
	}
	return "ok", nil
}

func replayWAL(path string) (string, error) {
	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_txlock=immediate", path))
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := conn.ExecContext(ctx, "PRAGMA wal_checkpoint(RESTART)"); err != nil {
		return "", fmt.Errorf("WAL checkpoint: %w", err)
	}
	return "checkpoint complete", nil
}

func restoreLatestBackup(dbPath, backupDir string) (string, error) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return "", fmt.Errorf("reading backup directory: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var candidates []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{filepath.Join(backupDir, entry.Name()), info.ModTime()})
	}
	if len(candidates) == 0 {
		return "", errors.New("no backup files found")
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime.After(candidates[j].modTime)
	})

	for _, c := range candidates {
		if _, err := checkFile(c.path); err != nil {
			slog.Debug("skipping damaged backup", "path", c.path, "error", err)
			continue
		}

		damaged := dbPath + ".corrupted." + time.Now().Format("20060102-150405")
		if err := moveFile(dbPath, damaged); err != nil {
			slog.Warn("could not keep damaged database", "path", dbPath, "error", err)
		}
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")

		if err := copyFile(c.path, dbPath); err != nil {
			return "", fmt.Errorf("copying backup: %w", err)
		}
		return c.path, nil
	}
	return "", errors.New("no valid backup found")
}

func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return out.Sync()
}
