package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pcannon/fishlog-cli/internal/model"
)

type CreateLocationInput struct {
	Name        string
	Latitude    float64
	Longitude   float64
	Description string
	IsFavorite  bool
}

type LocationPatch struct {
	Name        model.Optional[string]
	Latitude    model.Optional[float64]
	Longitude   model.Optional[float64]
	Description model.Optional[string]
	IsFavorite  model.Optional[bool]
}

func CreateLocation(db *sql.DB, in CreateLocationInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return 0, fmt.Errorf("location name is required")
	}

	now := nowStamp()
	res, err := db.Exec(`
INSERT INTO locations(name, latitude, longitude, description, is_favorite, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, in.Name, in.Latitude, in.Longitude, nullableString(in.Description), boolToInt(in.IsFavorite), now, now)
	if err != nil {
		return 0, fmt.Errorf("insert location: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted location id: %w", err)
	}
	return id, nil
}

const locationColumns = `id, name, latitude, longitude, description, is_favorite, created_at, updated_at`

// ListLocations returns saved locations alphabetically, optionally
// filtered to favorites.
func ListLocations(db *sql.DB, favoritesOnly bool) ([]model.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations`
	if favoritesOnly {
		query += ` WHERE is_favorite = 1`
	}
	query += ` ORDER BY name COLLATE NOCASE ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	locations := make([]model.Location, 0)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return locations, nil
}

func LocationByID(db *sql.DB, id int64) (*model.Location, error) {
	if id <= 0 {
		return nil, fmt.Errorf("location id must be > 0")
	}
	row := db.QueryRow(`SELECT `+locationColumns+` FROM locations WHERE id = ?`, id)
	loc, err := scanLocation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func UpdateLocation(db *sql.DB, id int64, p LocationPatch) error {
	if id <= 0 {
		return fmt.Errorf("location id must be > 0")
	}

	sets := make([]string, 0)
	args := make([]any, 0)

	if err := requiredText(&sets, &args, "name", "location name", p.Name, nil); err != nil {
		return err
	}
	if p.Latitude.IsSet() {
		v, ok := p.Latitude.Value()
		if !ok {
			return fmt.Errorf("latitude cannot be cleared")
		}
		sets = append(sets, "latitude = ?")
		args = append(args, v)
	}
	if p.Longitude.IsSet() {
		v, ok := p.Longitude.Value()
		if !ok {
			return fmt.Errorf("longitude cannot be cleared")
		}
		sets = append(sets, "longitude = ?")
		args = append(args, v)
	}
	optionalText(&sets, &args, "description", p.Description)
	if p.IsFavorite.IsSet() {
		v, ok := p.IsFavorite.Value()
		if !ok {
			return fmt.Errorf("favorite flag cannot be cleared")
		}
		sets = append(sets, "is_favorite = ?")
		args = append(args, boolToInt(v))
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, nowStamp())
	args = append(args, id)

	res, err := db.Exec(`UPDATE locations SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update location %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for location %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("location %d not found", id)
	}
	return nil
}

func SetLocationFavorite(db *sql.DB, id int64, favorite bool) error {
	return UpdateLocation(db, id, LocationPatch{IsFavorite: model.Set(favorite)})
}

// DeleteLocation removes a saved location. Deleting an unknown id is a
// no-op.
func DeleteLocation(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("location id must be > 0")
	}
	if _, err := db.Exec(`DELETE FROM locations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete location %d: %w", id, err)
	}
	return nil
}

func scanLocation(row rowScanner) (model.Location, error) {
	var loc model.Location
	var description sql.NullString
	var favorite int
	if err := row.Scan(&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &description, &favorite, &loc.CreatedAt, &loc.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return model.Location{}, err
		}
		return model.Location{}, fmt.Errorf("scan location: %w", err)
	}
	loc.Description = stringPtr(description)
	loc.IsFavorite = favorite != 0
	return loc, nil
}
