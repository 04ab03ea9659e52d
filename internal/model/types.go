package model

// Trip is one recorded fishing outing. Date is a YYYY-MM-DD calendar
// date; StartTime and EndTime are HH:MM times of day. EndTime is nil
// while the trip is ongoing or unrecorded. Latitude and Longitude are
// expected to be paired but are stored independently.
type Trip struct {
	ID           int64    `json:"id"`
	Date         string   `json:"date"`
	StartTime    string   `json:"start_time"`
	EndTime      *string  `json:"end_time,omitempty"`
	LocationName string   `json:"location_name"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Weather      *string  `json:"weather,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// Catch is one fish caught on a trip. A catch cannot outlive its trip:
// deleting the trip cascades at the storage layer.
type Catch struct {
	ID        int64    `json:"id"`
	TripID    int64    `json:"trip_id"`
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
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// Location is a named, favoritable point of interest, independent of any
// trip. Unlike trips, coordinates are required.
type Location struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description *string `json:"description,omitempty"`
	IsFavorite  bool    `json:"is_favorite"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
