package fishlog

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/pcannon/fishlog-cli/internal/app"
	"github.com/pcannon/fishlog-cli/internal/db"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

// splitClearList parses a --clear flag value into field names and checks
// them against the fields a command allows clearing.
func splitClearList(value string, allowed map[string]bool) ([]string, error) {
	fields := make([]string, 0)
	for _, raw := range strings.Split(value, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if !allowed[name] {
			return nil, fmt.Errorf("field %q cannot be cleared", name)
		}
		fields = append(fields, name)
	}
	return fields, nil
}

func dash(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

func dashFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// withUnit appends a configured display unit, leaving "-" placeholders
// untouched.
func withUnit(value, unit string) string {
	if unit == "" || value == "-" {
		return value
	}
	return value + " " + unit
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
