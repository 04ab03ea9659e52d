package tests

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func buildFishlogBinary(t *testing.T) string {
	t.Helper()
	repoRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("resolve repo root: %v", err)
	}
	binPath := filepath.Join(t.TempDir(), "fishlog")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = repoRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build fishlog binary: %v\n%s", err, string(out))
	}
	return binPath
}

func runFishlog(t *testing.T, binPath, dbPath string, args ...string) (string, string, int) {
	t.Helper()
	allArgs := append([]string{"--db", dbPath}, args...)
	cmd := exec.Command(binPath, allArgs...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("run fishlog command: %v", err)
	}
	return stdout.String(), stderr.String(), exitErr.ExitCode()
}

func initDB(t *testing.T, binPath, dbPath string) {
	t.Helper()
	_, stderr, exit := runFishlog(t, binPath, dbPath, "init")
	if exit != 0 {
		t.Fatalf("init db failed: exit=%d stderr=%s", exit, stderr)
	}
}

func TestCLIRejectsMalformedTripDate(t *testing.T) {
	binPath := buildFishlogBinary(t)
	dbPath := filepath.Join(t.TempDir(), "fishlog.db")
	initDB(t, binPath, dbPath)

	_, stderr, exit := runFishlog(t, binPath, dbPath,
		"trip", "add",
		"--date", "07/04/2026",
		"--start", "06:00",
		"--location", "Pine Lake",
	)

	if exit == 0 {
		t.Fatalf("expected non-zero exit for malformed date")
	}
	if !strings.Contains(stderr, "expected YYYY-MM-DD") {
		t.Fatalf("expected date validation error in stderr, got: %s", stderr)
	}
}

func TestCLIRejectsTripWithoutLocation(t *testing.T) {
	binPath := buildFishlogBinary(t)
	dbPath := filepath.Join(t.TempDir(), "fishlog.db")
	initDB(t, binPath, dbPath)

	_, stderr, exit := runFishlog(t, binPath, dbPath,
		"trip", "add",
		"--date", "2026-07-04",
		"--start", "06:00",
	)

	if exit == 0 {
		t.Fatalf("expected non-zero exit when --location is missing")
	}
	if !strings.Contains(stderr, "location name is required") {
		t.Fatalf("expected location validation error in stderr, got: %s", stderr)
	}
}

func TestCLIRejectsCatchForMissingTrip(t *testing.T) {
	binPath := buildFishlogBinary(t)
	dbPath := filepath.Join(t.TempDir(), "fishlog.db")
	initDB(t, binPath, dbPath)

	_, stderr, exit := runFishlog(t, binPath, dbPath,
		"catch", "add",
		"--trip", "999",
		"--species", "Walleye",
		"--time", "09:15",
	)

	if exit == 0 {
		t.Fatalf("expected non-zero exit for catch on missing trip")
	}
	if !strings.Contains(stderr, "insert catch") {
		t.Fatalf("expected foreign key error in stderr, got: %s", stderr)
	}
}

func TestCLIUpdateRejectsClearingRequiredField(t *testing.T) {
	binPath := buildFishlogBinary(t)
	dbPath := filepath.Join(t.TempDir(), "fishlog.db")
	initDB(t, binPath, dbPath)

	_, stderr, exit := runFishlog(t, binPath, dbPath,
		"trip", "add",
		"--date", "2026-07-04",
		"--start", "06:00",
		"--location", "Pine Lake",
	)
	if exit != 0 {
		t.Fatalf("seed trip failed: exit=%d stderr=%s", exit, stderr)
	}

	_, stderr, exit = runFishlog(t, binPath, dbPath,
		"trip", "update", "1",
		"--clear", "location",
	)
	if exit == 0 {
		t.Fatalf("expected non-zero exit when clearing a required field")
	}
	if !strings.Contains(stderr, `field "location" cannot be cleared`) {
		t.Fatalf("expected clear-field rejection in stderr, got: %s", stderr)
	}
}

func TestCLIUpdateUnknownTripFails(t *testing.T) {
	binPath := buildFishlogBinary(t)
	dbPath := filepath.Join(t.TempDir(), "fishlog.db")
	initDB(t, binPath, dbPath)

	_, stderr, exit := runFishlog(t, binPath, dbPath,
		"trip", "update", "42",
		"--weather", "sunny",
	)
	if exit == 0 {
		t.Fatalf("expected non-zero exit for update of unknown trip")
	}
	if !strings.Contains(stderr, "trip 42 not found") {
		t.Fatalf("expected not-found error in stderr, got: %s", stderr)
	}
}

func TestCLISeasonReportRejectsInvalidDate(t *testing.T) {
	binPath := buildFishlogBinary(t)
	dbPath := filepath.Join(t.TempDir(), "fishlog.db")
	initDB(t, binPath, dbPath)

	_, stderr, exit := runFishlog(t, binPath, dbPath,
		"stats", "season",
		"--from", "2026-13-01",
		"--to", "2026-09-30",
	)

	if exit == 0 {
		t.Fatalf("expected non-zero exit for invalid season date")
	}
	if !strings.Contains(stderr, "invalid from date") {
		t.Fatalf("expected invalid from date error in stderr, got: %s", stderr)
	}
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
