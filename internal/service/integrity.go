package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	ForeignKeyViolations int `json:"foreign_key_violations"`
	InvalidBooleanRows   int `json:"invalid_boolean_rows"`
	MalformedTimeRows    int `json:"malformed_time_rows"`
}

func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := copyFile(dbPath, outPath); err != nil {
		return BackupInfo{}, err
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// RestoreBackup copies a backup over the DB file. When a .sha256 sidecar
// exists next to the backup, the checksum must match. An existing DB is
// only overwritten with force.
func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("stat backup file: %w", err)
	}

	if sidecar, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		want := strings.TrimSpace(string(sidecar))
		got, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("backup checksum mismatch: recorded %s, computed %s", want, got)
		}
	}

	if _, err := os.Stat(dbPath); err == nil && !force {
		return fmt.Errorf("database already exists at %s (use --force to overwrite)", dbPath)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	items := make([]BackupInfo, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat backup %s: %w", entry.Name(), err)
		}
		checksum := ""
		if sidecar, err := os.ReadFile(path + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(sidecar))
		}
		items = append(items, BackupInfo{
			Path:      path,
			Checksum:  checksum,
			CreatedAt: info.ModTime(),
			SizeBytes: info.Size(),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

// RunDoctor checks the invariants the schema cannot fully express:
// referential integrity (in case the DB was written with foreign keys
// off), the 0/1 domain of boolean columns, and the HH:MM shape of
// time-of-day strings.
func RunDoctor(db *sql.DB) (DoctorReport, error) {
	var report DoctorReport

	rows, err := db.Query(`PRAGMA foreign_key_check`)
	if err != nil {
		return DoctorReport{}, fmt.Errorf("run foreign key check: %w", err)
	}
	for rows.Next() {
		report.ForeignKeyViolations++
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return DoctorReport{}, fmt.Errorf("iterate foreign key check: %w", err)
	}
	rows.Close()

	if err := db.QueryRow(`
SELECT (SELECT COUNT(1) FROM catches WHERE released NOT IN (0, 1))
     + (SELECT COUNT(1) FROM locations WHERE is_favorite NOT IN (0, 1))
`).Scan(&report.InvalidBooleanRows); err != nil {
		return DoctorReport{}, fmt.Errorf("check boolean columns: %w", err)
	}

	const clockGlob = `[0-2][0-9]:[0-5][0-9]`
	if err := db.QueryRow(`
SELECT (SELECT COUNT(1) FROM trips WHERE start_time NOT GLOB ?)
     + (SELECT COUNT(1) FROM trips WHERE end_time IS NOT NULL AND end_time NOT GLOB ?)
     + (SELECT COUNT(1) FROM catches WHERE time NOT GLOB ?)
`, clockGlob, clockGlob, clockGlob).Scan(&report.MalformedTimeRows); err != nil {
		return DoctorReport{}, fmt.Errorf("check time columns: %w", err)
	}

	return report, nil
}

func (r DoctorReport) Clean() bool {
	return r.ForeignKeyViolations == 0 && r.InvalidBooleanRows == 0 && r.MalformedTimeRows == 0
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Sync()
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
