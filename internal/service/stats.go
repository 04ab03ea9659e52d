package service

import (
	"database/sql"
	"fmt"
)

type TripStats struct {
	TotalTrips        int     `json:"total_trips"`
	TotalCatches      int     `json:"total_catches"`
	AvgCatchesPerTrip float64 `json:"avg_catches_per_trip"`
	FavoriteSpecies   *string `json:"favorite_species"`
}

type SpeciesStat struct {
	Species string `json:"species"`
	Count   int    `json:"count"`
}

type SeasonReport struct {
	FromDate   string        `json:"from_date"`
	ToDate     string        `json:"to_date"`
	Trips      int           `json:"trips"`
	Catches    int           `json:"catches"`
	Released   int           `json:"released"`
	Kept       int           `json:"kept"`
	TopSpecies *string       `json:"top_species,omitempty"`
	BySpecies  []SpeciesStat `json:"by_species"`
}

// GetTripStats aggregates across all trips and catches. FavoriteSpecies
// is nil when nothing has been caught; the average is 0 when there are
// no trips.
func GetTripStats(db *sql.DB) (TripStats, error) {
	var stats TripStats
	if err := db.QueryRow(`SELECT COUNT(1) FROM trips`).Scan(&stats.TotalTrips); err != nil {
		return TripStats{}, fmt.Errorf("count trips: %w", err)
	}
	if err := db.QueryRow(`SELECT COUNT(1) FROM catches`).Scan(&stats.TotalCatches); err != nil {
		return TripStats{}, fmt.Errorf("count catches: %w", err)
	}
	if stats.TotalTrips > 0 {
		stats.AvgCatchesPerTrip = float64(stats.TotalCatches) / float64(stats.TotalTrips)
	}

	var species string
	err := db.QueryRow(`
SELECT species FROM catches
GROUP BY species
ORDER BY COUNT(1) DESC, species ASC
LIMIT 1
`).Scan(&species)
	if err == nil {
		stats.FavoriteSpecies = &species
	} else if err != sql.ErrNoRows {
		return TripStats{}, fmt.Errorf("query favorite species: %w", err)
	}
	return stats, nil
}

// GetSpeciesStats returns the full ranked species breakdown, highest
// catch count first. Count ties are broken by species name so output is
// deterministic.
func GetSpeciesStats(db *sql.DB) ([]SpeciesStat, error) {
	rows, err := db.Query(`
SELECT species, COUNT(1) FROM catches
GROUP BY species
ORDER BY COUNT(1) DESC, species ASC
`)
	if err != nil {
		return nil, fmt.Errorf("query species stats: %w", err)
	}
	defer rows.Close()
	return collectSpeciesStats(rows)
}

// GetSeasonReport aggregates over trips dated within [from, to]
// inclusive, both YYYY-MM-DD.
func GetSeasonReport(db *sql.DB, from, to string) (*SeasonReport, error) {
	fromDate, err := validateDate("from date", from)
	if err != nil {
		return nil, err
	}
	toDate, err := validateDate("to date", to)
	if err != nil {
		return nil, err
	}
	if fromDate > toDate {
		return nil, fmt.Errorf("from date must be <= to date")
	}

	report := &SeasonReport{FromDate: fromDate, ToDate: toDate}

	if err := db.QueryRow(`SELECT COUNT(1) FROM trips WHERE date >= ? AND date <= ?`, fromDate, toDate).Scan(&report.Trips); err != nil {
		return nil, fmt.Errorf("count trips in range: %w", err)
	}
	if err := db.QueryRow(`
SELECT COUNT(1), IFNULL(SUM(c.released), 0)
FROM catches c
JOIN trips t ON t.id = c.trip_id
WHERE t.date >= ? AND t.date <= ?
`, fromDate, toDate).Scan(&report.Catches, &report.Released); err != nil {
		return nil, fmt.Errorf("count catches in range: %w", err)
	}
	report.Kept = report.Catches - report.Released

	rows, err := db.Query(`
SELECT c.species, COUNT(1)
FROM catches c
JOIN trips t ON t.id = c.trip_id
WHERE t.date >= ? AND t.date <= ?
GROUP BY c.species
ORDER BY COUNT(1) DESC, c.species ASC
`, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query species in range: %w", err)
	}
	defer rows.Close()

	report.BySpecies, err = collectSpeciesStats(rows)
	if err != nil {
		return nil, err
	}
	if len(report.BySpecies) > 0 {
		top := report.BySpecies[0].Species
		report.TopSpecies = &top
	}
	return report, nil
}

func collectSpeciesStats(rows *sql.Rows) ([]SpeciesStat, error) {
	items := make([]SpeciesStat, 0)
	for rows.Next() {
		var s SpeciesStat
		if err := rows.Scan(&s.Species, &s.Count); err != nil {
			return nil, fmt.Errorf("scan species stat: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate species stats: %w", err)
	}
	return items, nil
}
