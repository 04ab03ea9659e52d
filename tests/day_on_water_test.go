package tests

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDayOnTheWaterFlow(t *testing.T) {
	binPath := buildFishlogBinary(t)
	dbPath := filepath.Join(t.TempDir(), "fishlog.db")
	initDB(t, binPath, dbPath)

	_, stderr, exit := runFishlog(t, binPath, dbPath,
		"location", "add",
		"--name", "Pine Lake",
		"--lat", "46.85231",
		"--lng", "-92.10741",
		"--description", "North shore access, gravel launch",
		"--favorite",
	)
	if exit != 0 {
		t.Fatalf("location add failed: exit=%d stderr=%s", exit, stderr)
	}

	_, stderr, exit = runFishlog(t, binPath, dbPath,
		"trip", "add",
		"--date", "2026-06-14",
		"--start", "05:30",
		"--end", "13:00",
		"--location", "Pine Lake",
		"--lat", "46.85231",
		"--lng", "-92.10741",
		"--weather", "overcast, light wind",
		"--temp", "17.5",
		"--notes", "Bite picked up after sunrise",
	)
	if exit != 0 {
		t.Fatalf("trip add failed: exit=%d stderr=%s", exit, stderr)
	}

	catchArgs := [][]string{
		{"--trip", "1", "--species", "Smallmouth Bass", "--time", "06:10", "--length", "43.2", "--weight", "1.4", "--lure", "tube jig", "--method", "casting", "--released"},
		{"--trip", "1", "--species", "Walleye", "--time", "07:45", "--length", "51", "--bait", "leech", "--method", "drifting"},
		{"--trip", "1", "--species", "Smallmouth Bass", "--time", "09:20", "--released"},
	}
	for i, extra := range catchArgs {
		args := append([]string{"catch", "add"}, extra...)
		_, stderr, exit = runFishlog(t, binPath, dbPath, args...)
		if exit != 0 {
			t.Fatalf("catch add #%d failed: exit=%d stderr=%s", i+1, exit, stderr)
		}
	}

	stdout, stderr, exit := runFishlog(t, binPath, dbPath, "trip", "show", "1")
	if exit != 0 {
		t.Fatalf("trip show failed: exit=%d stderr=%s", exit, stderr)
	}
	for _, want := range []string{
		"Location: Pine Lake",
		"Catches: 3",
		"06:10  Smallmouth Bass (released)",
		"07:45  Walleye",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected trip show output to contain %q, got:\n%s", want, stdout)
		}
	}

	stdout, stderr, exit = runFishlog(t, binPath, dbPath, "stats", "overall")
	if exit != 0 {
		t.Fatalf("stats overall failed: exit=%d stderr=%s", exit, stderr)
	}
	for _, want := range []string{
		"Trips: 1",
		"Catches: 3",
		"Catches per trip: 3.00",
		"Favorite species: Smallmouth Bass",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected stats output to contain %q, got:\n%s", want, stdout)
		}
	}

	stdout, stderr, exit = runFishlog(t, binPath, dbPath,
		"stats", "season",
		"--from", "2026-06-01",
		"--to", "2026-06-30",
	)
	if exit != 0 {
		t.Fatalf("stats season failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Catches: 3 (released 2, kept 1)") {
		t.Fatalf("expected season catch breakdown, got:\n%s", stdout)
	}

	exportPath := filepath.Join(t.TempDir(), "logbook.json")
	_, stderr, exit = runFishlog(t, binPath, dbPath, "export", "--out", exportPath)
	if exit != 0 {
		t.Fatalf("export failed: exit=%d stderr=%s", exit, stderr)
	}

	freshDB := filepath.Join(t.TempDir(), "fresh.db")
	initDB(t, binPath, freshDB)
	stdout, stderr, exit = runFishlog(t, binPath, freshDB, "import", "--in", exportPath, "--mode", "merge")
	if exit != 0 {
		t.Fatalf("import failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Imported 1 trips, 3 catches, 1 locations") {
		t.Fatalf("unexpected import summary:\n%s", stdout)
	}

	backupPath := filepath.Join(t.TempDir(), "fishlog-backup.db")
	stdout, stderr, exit = runFishlog(t, binPath, dbPath, "backup", "create", "--out", backupPath)
	if exit != 0 {
		t.Fatalf("backup create failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Created backup: ") {
		t.Fatalf("expected backup confirmation, got:\n%s", stdout)
	}

	restoredDB := filepath.Join(t.TempDir(), "restored.db")
	_, stderr, exit = runFishlog(t, binPath, restoredDB, "backup", "restore", "--file", backupPath)
	if exit != 0 {
		t.Fatalf("backup restore failed: exit=%d stderr=%s", exit, stderr)
	}
	stdout, stderr, exit = runFishlog(t, binPath, restoredDB, "stats", "overall")
	if exit != 0 {
		t.Fatalf("stats on restored db failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "Catches: 3") {
		t.Fatalf("expected restored db to carry catches, got:\n%s", stdout)
	}

	_, stderr, exit = runFishlog(t, binPath, dbPath, "doctor")
	if exit != 0 {
		t.Fatalf("doctor failed on healthy db: exit=%d stderr=%s", exit, stderr)
	}
}
