package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pcannon/fishlog-cli/internal/model"
)

type CreateTripInput struct {
	Date         string
	StartTime    string
	EndTime      string
	LocationName string
	Latitude     *float64
	Longitude    *float64
	Weather      string
	Temperature  *float64
	Notes        string
}

type ListTripsFilter struct {
	Limit  int
	Offset int
}

// TripPatch carries a partial update. Absent fields are left untouched;
// a field that is present is applied even when it holds a zero value.
type TripPatch struct {
	Date         model.Optional[string]
	StartTime    model.Optional[string]
	EndTime      model.Optional[string]
	LocationName model.Optional[string]
	Latitude     model.Optional[float64]
	Longitude    model.Optional[float64]
	Weather      model.Optional[string]
	Temperature  model.Optional[float64]
	Notes        model.Optional[string]
}

func CreateTrip(db *sql.DB, in CreateTripInput) (int64, error) {
	date, err := validateDate("date", in.Date)
	if err != nil {
		return 0, err
	}
	startTime, err := validateClock("start time", in.StartTime)
	if err != nil {
		return 0, err
	}
	var endTime any
	if strings.TrimSpace(in.EndTime) != "" {
		v, err := validateClock("end time", in.EndTime)
		if err != nil {
			return 0, err
		}
		endTime = v
	}
	in.LocationName = strings.TrimSpace(in.LocationName)
	if in.LocationName == "" {
		return 0, fmt.Errorf("location name is required")
	}

	now := nowStamp()
	res, err := db.Exec(`
INSERT INTO trips(date, start_time, end_time, location_name, latitude, longitude, weather, temperature, notes, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, date, startTime, endTime, in.LocationName, in.Latitude, in.Longitude, nullableString(in.Weather), in.Temperature, nullableString(in.Notes), now, now)
	if err != nil {
		return 0, fmt.Errorf("insert trip: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted trip id: %w", err)
	}
	return id, nil
}

const tripColumns = `id, date, start_time, end_time, location_name, latitude, longitude, weather, temperature, notes, created_at, updated_at`

// ListTrips returns trips most recent first: date descending, same-date
// ties broken by later start time first. A non-positive limit returns
// all rows; offset only applies together with a limit.
func ListTrips(db *sql.DB, f ListTripsFilter) ([]model.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips ORDER BY date DESC, start_time DESC`
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
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	trips := make([]model.Trip, 0)
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trips: %w", err)
	}
	return trips, nil
}

// TripByID returns the trip, or nil without error when no trip has that
// id. A missing trip is an expected outcome, not a failure.
func TripByID(db *sql.DB, id int64) (*model.Trip, error) {
	if id <= 0 {
		return nil, fmt.Errorf("trip id must be > 0")
	}
	row := db.QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
	trip, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func UpdateTrip(db *sql.DB, id int64, p TripPatch) error {
	if id <= 0 {
		return fmt.Errorf("trip id must be > 0")
	}

	sets := make([]string, 0)
	args := make([]any, 0)

	if err := requiredText(&sets, &args, "date", "date", p.Date, validateDate); err != nil {
		return err
	}
	if err := requiredText(&sets, &args, "start_time", "start time", p.StartTime, validateClock); err != nil {
		return err
	}
	if err := requiredText(&sets, &args, "location_name", "location name", p.LocationName, nil); err != nil {
		return err
	}
	if p.EndTime.IsSet() {
		sets = append(sets, "end_time = ?")
		if v, ok := p.EndTime.Value(); ok && strings.TrimSpace(v) != "" {
			normalized, err := validateClock("end time", v)
			if err != nil {
				return err
			}
			args = append(args, normalized)
		} else {
			args = append(args, nil)
		}
	}
	optionalFloat(&sets, &args, "latitude", p.Latitude)
	optionalFloat(&sets, &args, "longitude", p.Longitude)
	optionalText(&sets, &args, "weather", p.Weather)
	optionalFloat(&sets, &args, "temperature", p.Temperature)
	optionalText(&sets, &args, "notes", p.Notes)

	// updated_at refreshes even when no other field was supplied.
	sets = append(sets, "updated_at = ?")
	args = append(args, nowStamp())
	args = append(args, id)

	res, err := db.Exec(`UPDATE trips SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update trip %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for trip %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("trip %d not found", id)
	}
	return nil
}

// DeleteTrip removes a trip and, through the schema's delete cascade,
// every catch recorded on it. Deleting an unknown id is a no-op.
func DeleteTrip(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("trip id must be > 0")
	}
	if _, err := db.Exec(`DELETE FROM trips WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete trip %d: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (model.Trip, error) {
	var t model.Trip
	var endTime, weather, notes sql.NullString
	var latitude, longitude, temperature sql.NullFloat64
	if err := row.Scan(&t.ID, &t.Date, &t.StartTime, &endTime, &t.LocationName, &latitude, &longitude, &weather, &temperature, &notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return model.Trip{}, err
		}
		return model.Trip{}, fmt.Errorf("scan trip: %w", err)
	}
	t.EndTime = stringPtr(endTime)
	t.Latitude = floatPtr(latitude)
	t.Longitude = floatPtr(longitude)
	t.Weather = stringPtr(weather)
	t.Temperature = floatPtr(temperature)
	t.Notes = stringPtr(notes)
	return t, nil
}
