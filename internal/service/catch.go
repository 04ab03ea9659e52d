package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pcannon/fishlog-cli/internal/model"
)

type CreateCatchInput struct {
	TripID   int64
	Species  string
	Length   *float64
	Weight   *float64
	Bait     string
	Lure     string
	Method   string
	Time     string
	PhotoURI string
	Notes    string
	Released bool
}

type ListCatchesFilter struct {
	Limit  int
	Offset int
}

type CatchPatch struct {
	TripID   model.Optional[int64]
	Species  model.Optional[string]
	Length   model.Optional[float64]
	Weight   model.Optional[float64]
	Bait     model.Optional[string]
	Lure     model.Optional[string]
	Method   model.Optional[string]
	Time     model.Optional[string]
	PhotoURI model.Optional[string]
	Notes    model.Optional[string]
	Released model.Optional[bool]
}

// CreateCatch records a fish against an existing trip. A trip_id that
// does not reference a trip fails with the storage layer's foreign key
// error, propagated unmodified.
func CreateCatch(db *sql.DB, in CreateCatchInput) (int64, error) {
	if in.TripID <= 0 {
		return 0, fmt.Errorf("trip id must be > 0")
	}
	in.Species = strings.TrimSpace(in.Species)
	if in.Species == "" {
		return 0, fmt.Errorf("species is required")
	}
	catchTime, err := validateClock("catch time", in.Time)
	if err != nil {
		return 0, err
	}

	now := nowStamp()
	res, err := db.Exec(`
INSERT INTO catches(trip_id, species, length, weight, bait, lure, method, time, photo_uri, notes, released, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, in.TripID, in.Species, in.Length, in.Weight, nullableString(in.Bait), nullableString(in.Lure), nullableString(in.Method), catchTime, nullableString(in.PhotoURI), nullableString(in.Notes), boolToInt(in.Released), now, now)
	if err != nil {
		return 0, fmt.Errorf("insert catch: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted catch id: %w", err)
	}
	return id, nil
}

const catchColumns = `id, trip_id, species, length, weight, bait, lure, method, time, photo_uri, notes, released, created_at, updated_at`

// CatchesByTrip replays one trip chronologically: earliest catch first.
func CatchesByTrip(db *sql.DB, tripID int64) ([]model.Catch, error) {
	if tripID <= 0 {
		return nil, fmt.Errorf("trip id must be > 0")
	}
	rows, err := db.Query(`SELECT `+catchColumns+` FROM catches WHERE trip_id = ? ORDER BY time ASC, id ASC`, tripID)
	if err != nil {
		return nil, fmt.Errorf("list catches for trip %d: %w", tripID, err)
	}
	defer rows.Close()
	return collectCatches(rows)
}

// ListCatches returns catches across all trips, most recently logged
// first (by created_at, not the catch's own time of day).
func ListCatches(db *sql.DB, f ListCatchesFilter) ([]model.Catch, error) {
	query := `SELECT ` + catchColumns + ` FROM catches ORDER BY created_at DESC, id DESC`
	args := make([]any, 0)
	if f.Limit > 0 {
		offset := f.Offset
		if offset < 0 {
			offset = 0
		}
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list catches: %w", err)
	}
	defer rows.Close()
	return collectCatches(rows)
}

func CatchByID(db *sql.DB, id int64) (*model.Catch, error) {
	if id <= 0 {
		return nil, fmt.Errorf("catch id must be > 0")
	}
	row := db.QueryRow(`SELECT `+catchColumns+` FROM catches WHERE id = ?`, id)
	c, err := scanCatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func UpdateCatch(db *sql.DB, id int64, p CatchPatch) error {
	if id <= 0 {
		return fmt.Errorf("catch id must be > 0")
	}

	sets := make([]string, 0)
	args := make([]any, 0)

	if p.TripID.IsSet() {
		v, ok := p.TripID.Value()
		if !ok || v <= 0 {
			return fmt.Errorf("trip id cannot be cleared")
		}
		sets = append(sets, "trip_id = ?")
		args = append(args, v)
	}
	if err := requiredText(&sets, &args, "species", "species", p.Species, nil); err != nil {
		return err
	}
	if err := requiredText(&sets, &args, "time", "catch time", p.Time, validateClock); err != nil {
		return err
	}
	optionalFloat(&sets, &args, "length", p.Length)
	optionalFloat(&sets, &args, "weight", p.Weight)
	optionalText(&sets, &args, "bait", p.Bait)
	optionalText(&sets, &args, "lure", p.Lure)
	optionalText(&sets, &args, "method", p.Method)
	optionalText(&sets, &args, "photo_uri", p.PhotoURI)
	optionalText(&sets, &args, "notes", p.Notes)
	if p.Released.IsSet() {
		v, ok := p.Released.Value()
		if !ok {
			return fmt.Errorf("released cannot be cleared")
		}
		sets = append(sets, "released = ?")
		args = append(args, boolToInt(v))
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, nowStamp())
	args = append(args, id)

	res, err := db.Exec(`UPDATE catches SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update catch %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for catch %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("catch %d not found", id)
	}
	return nil
}

// DeleteCatch removes one catch. Deleting an unknown id is a no-op.
func DeleteCatch(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("catch id must be > 0")
	}
	if _, err := db.Exec(`DELETE FROM catches WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete catch %d: %w", id, err)
	}
	return nil
}

func collectCatches(rows *sql.Rows) ([]model.Catch, error) {
	catches := make([]model.Catch, 0)
	for rows.Next() {
		c, err := scanCatch(rows)
		if err != nil {
			return nil, err
		}
		catches = append(catches, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catches: %w", err)
	}
	return catches, nil
}

func scanCatch(row rowScanner) (model.Catch, error) {
	var c model.Catch
	var length, weight sql.NullFloat64
	var bait, lure, method, photoURI, notes sql.NullString
	var released int
	if err := row.Scan(&c.ID, &c.TripID, &c.Species, &length, &weight, &bait, &lure, &method, &c.Time, &photoURI, &notes, &released, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return model.Catch{}, err
		}
		return model.Catch{}, fmt.Errorf("scan catch: %w", err)
	}
	c.Length = floatPtr(length)
	c.Weight = floatPtr(weight)
	c.Bait = stringPtr(bait)
	c.Lure = stringPtr(lure)
	c.Method = stringPtr(method)
	c.PhotoURI = stringPtr(photoURI)
	c.Notes = stringPtr(notes)
	// released is stored as 0/1; the integer form never leaves the
	// service boundary.
	c.Released = released != 0
	return c, nil
}
