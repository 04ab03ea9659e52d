package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pcannon/fishlog-cli/internal/model"
)

// Audit timestamps are written by the service as UTC RFC3339 strings so
// a freshly created row has created_at == updated_at exactly.
func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func validateDate(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return "", fmt.Errorf("invalid %s %q, expected YYYY-MM-DD", name, value)
	}
	return value, nil
}

func validateClock(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if _, err := time.Parse("15:04", value); err != nil {
		return "", fmt.Errorf("invalid %s %q, expected HH:MM", name, value)
	}
	return value, nil
}

func nullableString(value string) any {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// optionalText maps a supplied text patch field onto sets/args. An
// explicit null or a present-but-empty value clears the column.
func optionalText(sets *[]string, args *[]any, column string, field model.Optional[string]) {
	if !field.IsSet() {
		return
	}
	*sets = append(*sets, column+" = ?")
	if field.IsNull() {
		*args = append(*args, nil)
		return
	}
	v, _ := field.Value()
	*args = append(*args, nullableString(v))
}

// optionalFloat maps a supplied numeric patch field onto sets/args. A
// present zero is a value, not a clear.
func optionalFloat(sets *[]string, args *[]any, column string, field model.Optional[float64]) {
	if !field.IsSet() {
		return
	}
	*sets = append(*sets, column+" = ?")
	*args = append(*args, field.Arg())
}

// requiredText applies a patch field backed by a NOT NULL column.
// Clearing it is rejected rather than silently dropped.
func requiredText(sets *[]string, args *[]any, column, name string, field model.Optional[string], validate func(string, string) (string, error)) error {
	if !field.IsSet() {
		return nil
	}
	v, ok := field.Value()
	if !ok || strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s cannot be cleared", name)
	}
	if validate != nil {
		normalized, err := validate(name, v)
		if err != nil {
			return err
		}
		v = normalized
	} else {
		v = strings.TrimSpace(v)
	}
	*sets = append(*sets, column+" = ?")
	*args = append(*args, v)
	return nil
}
