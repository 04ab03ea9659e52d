package service

import (
	"database/sql"
	"fmt"
	"strings"
)

// ExportCatch is a catch without store-assigned ids: on import the
// catch is re-parented under whatever id its trip receives.
type ExportCatch struct {
	Species   string   `json:"species"`
	Length    *float64 `json:"length,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	Bait      *string  `json:"bait,omitempty"`
	Lure      *string  `json:"lure,omitempty"`
	Method    *string  `json:"method,omitempty"`
	Time      string   `json:"time"`
	PhotoURI  *string  `json:"photo_uri,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
	Released  bool     `json:"released"`
	CreatedAt string   `json:"created_at,omitempty"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

type ExportTrip struct {
	Date         string        `json:"date"`
	StartTime    string        `json:"start_time"`
	EndTime      *string       `json:"end_time,omitempty"`
	LocationName string        `json:"location_name"`
	Latitude     *float64      `json:"latitude,omitempty"`
	Longitude    *float64      `json:"longitude,omitempty"`
	Weather      *string       `json:"weather,omitempty"`
	Temperature  *float64      `json:"temperature,omitempty"`
	Notes        *string       `json:"notes,omitempty"`
	CreatedAt    string        `json:"created_at,omitempty"`
	UpdatedAt    string        `json:"updated_at,omitempty"`
	Catches      []ExportCatch `json:"catches"`
}

type ExportLocation struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description *string `json:"description,omitempty"`
	IsFavorite  bool    `json:"is_favorite"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

type ExportData struct {
	Trips     []ExportTrip     `json:"trips"`
	Locations []ExportLocation `json:"locations"`
}

type ImportMode string

const (
	ImportModeMerge   ImportMode = "merge"
	ImportModeReplace ImportMode = "replace"
)

type ImportSummary struct {
	Trips     int `json:"trips"`
	Catches   int `json:"catches"`
	Locations int `json:"locations"`
}

// ExportSnapshot reads the entire logbook into a portable document with
// catches nested under their trip.
func ExportSnapshot(db *sql.DB) (ExportData, error) {
	trips, err := ListTrips(db, ListTripsFilter{})
	if err != nil {
		return ExportData{}, err
	}

	data := ExportData{Trips: make([]ExportTrip, 0, len(trips))}
	for _, t := range trips {
		catches, err := CatchesByTrip(db, t.ID)
		if err != nil {
			return ExportData{}, err
		}
		et := ExportTrip{
			Date:         t.Date,
			StartTime:    t.StartTime,
			EndTime:      t.EndTime,
			LocationName: t.LocationName,
			Latitude:     t.Latitude,
			Longitude:    t.Longitude,
			Weather:      t.Weather,
			Temperature:  t.Temperature,
			Notes:        t.Notes,
			CreatedAt:    t.CreatedAt,
			UpdatedAt:    t.UpdatedAt,
			Catches:      make([]ExportCatch, 0, len(catches)),
		}
		for _, c := range catches {
			et.Catches = append(et.Catches, ExportCatch{
				Species:   c.Species,
				Length:    c.Length,
				Weight:    c.Weight,
				Bait:      c.Bait,
				Lure:      c.Lure,
				Method:    c.Method,
				Time:      c.Time,
				PhotoURI:  c.PhotoURI,
				Notes:     c.Notes,
				Released:  c.Released,
				CreatedAt: c.CreatedAt,
				UpdatedAt: c.UpdatedAt,
			})
		}
		data.Trips = append(data.Trips, et)
	}

	locations, err := ListLocations(db, false)
	if err != nil {
		return ExportData{}, err
	}
	data.Locations = make([]ExportLocation, 0, len(locations))
	for _, loc := range locations {
		data.Locations = append(data.Locations, ExportLocation{
			Name:        loc.Name,
			Latitude:    loc.Latitude,
			Longitude:   loc.Longitude,
			Description: loc.Description,
			IsFavorite:  loc.IsFavorite,
			CreatedAt:   loc.CreatedAt,
			UpdatedAt:   loc.UpdatedAt,
		})
	}
	return data, nil
}

// ImportSnapshot loads a snapshot. Mode merge appends to existing data;
// mode replace wipes all three tables first. Audit timestamps present in
// the snapshot are preserved; missing ones are set to now.
func ImportSnapshot(db *sql.DB, data ExportData, mode ImportMode) (ImportSummary, error) {
	switch mode {
	case ImportModeMerge, ImportModeReplace:
	default:
		return ImportSummary{}, fmt.Errorf("invalid import mode %q (use merge or replace)", mode)
	}

	if mode == ImportModeReplace {
		// Catches go first so the wipe never trips the foreign key.
		for _, table := range []string{"catches", "trips", "locations"} {
			if _, err := db.Exec(`DELETE FROM ` + table); err != nil {
				return ImportSummary{}, fmt.Errorf("clear %s: %w", table, err)
			}
		}
	}

	var summary ImportSummary
	for i, t := range data.Trips {
		if strings.TrimSpace(t.Date) == "" || strings.TrimSpace(t.StartTime) == "" || strings.TrimSpace(t.LocationName) == "" {
			return summary, fmt.Errorf("trip %d in snapshot is missing date, start time, or location name", i+1)
		}
		created, updated := importStamps(t.CreatedAt, t.UpdatedAt)
		res, err := db.Exec(`
INSERT INTO trips(date, start_time, end_time, location_name, latitude, longitude, weather, temperature, notes, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, t.Date, t.StartTime, t.EndTime, strings.TrimSpace(t.LocationName), t.Latitude, t.Longitude, t.Weather, t.Temperature, t.Notes, created, updated)
		if err != nil {
			return summary, fmt.Errorf("import trip %d: %w", i+1, err)
		}
		tripID, err := res.LastInsertId()
		if err != nil {
			return summary, fmt.Errorf("resolve imported trip id: %w", err)
		}
		summary.Trips++

		for j, c := range t.Catches {
			if strings.TrimSpace(c.Species) == "" || strings.TrimSpace(c.Time) == "" {
				return summary, fmt.Errorf("catch %d on trip %d is missing species or time", j+1, i+1)
			}
			created, updated := importStamps(c.CreatedAt, c.UpdatedAt)
			if _, err := db.Exec(`
INSERT INTO catches(trip_id, species, length, weight, bait, lure, method, time, photo_uri, notes, released, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, tripID, strings.TrimSpace(c.Species), c.Length, c.Weight, c.Bait, c.Lure, c.Method, c.Time, c.PhotoURI, c.Notes, boolToInt(c.Released), created, updated); err != nil {
				return summary, fmt.Errorf("import catch %d on trip %d: %w", j+1, i+1, err)
			}
			summary.Catches++
		}
	}

	for i, loc := range data.Locations {
		if strings.TrimSpace(loc.Name) == "" {
			return summary, fmt.Errorf("location %d in snapshot is missing a name", i+1)
		}
		created, updated := importStamps(loc.CreatedAt, loc.UpdatedAt)
		if _, err := db.Exec(`
INSERT INTO locations(name, latitude, longitude, description, is_favorite, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, strings.TrimSpace(loc.Name), loc.Latitude, loc.Longitude, loc.Description, boolToInt(loc.IsFavorite), created, updated); err != nil {
			return summary, fmt.Errorf("import location %d: %w", i+1, err)
		}
		summary.Locations++
	}

	return summary, nil
}

func importStamps(created, updated string) (string, string) {
	now := nowStamp()
	if strings.TrimSpace(created) == "" {
		created = now
	}
	if strings.TrimSpace(updated) == "" {
		updated = created
	}
	return created, updated
}
