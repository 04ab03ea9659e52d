package service_test

import (
	"strings"
	"testing"

	"github.com/pcannon/fishlog-cli/internal/model"
	"github.com/pcannon/fishlog-cli/internal/service"
)

func TestCreateTripRoundTrip(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	lat := 47.6097
	lng := -122.3331
	temp := 18.5
	id := mustCreateTrip(t, sqldb, service.CreateTripInput{
		Date:         "2024-05-01",
		StartTime:    "06:30",
		EndTime:      "14:00",
		LocationName: "Green Lake",
		Latitude:     &lat,
		Longitude:    &lng,
		Weather:      "overcast",
		Temperature:  &temp,
		Notes:        "north shore, light chop",
	})

	trip, err := service.TripByID(sqldb, id)
	if err != nil {
		t.Fatalf("get trip: %v", err)
	}
	if trip == nil {
		t.Fatalf("expected trip %d to exist", id)
	}
	if trip.Date != "2024-05-01" || trip.StartTime != "06:30" || trip.LocationName != "Green Lake" {
		t.Fatalf("unexpected trip row: %+v", trip)
	}
	if trip.EndTime == nil || *trip.EndTime != "14:00" {
		t.Fatalf("expected end time 14:00, got %+v", trip.EndTime)
	}
	if trip.Latitude == nil || *trip.Latitude != lat || trip.Longitude == nil || *trip.Longitude != lng {
		t.Fatalf("coordinates did not round-trip: %+v", trip)
	}
	if trip.Weather == nil || *trip.Weather != "overcast" {
		t.Fatalf("weather did not round-trip: %+v", trip.Weather)
	}
	if trip.Temperature == nil || *trip.Temperature != temp {
		t.Fatalf("temperature did not round-trip: %+v", trip.Temperature)
	}
	if trip.CreatedAt == "" || trip.CreatedAt != trip.UpdatedAt {
		t.Fatalf("expected created_at == updated_at on creation, got %q / %q", trip.CreatedAt, trip.UpdatedAt)
	}
}

func TestCreateTripRequiresMandatoryFields(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	_, err := service.CreateTrip(sqldb, service.CreateTripInput{StartTime: "06:00", LocationName: "x"})
	if err == nil || !strings.Contains(err.Error(), "invalid date") {
		t.Fatalf("expected date error, got: %v", err)
	}
	_, err = service.CreateTrip(sqldb, service.CreateTripInput{Date: "2024-05-01", StartTime: "6am", LocationName: "x"})
	if err == nil || !strings.Contains(err.Error(), "invalid start time") {
		t.Fatalf("expected start time error, got: %v", err)
	}
	_, err = service.CreateTrip(sqldb, service.CreateTripInput{Date: "2024-05-01", StartTime: "06:00"})
	if err == nil || !strings.Contains(err.Error(), "location name is required") {
		t.Fatalf("expected location name error, got: %v", err)
	}
}

func TestTripByIDMissingIsSoftNotFound(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	trip, err := service.TripByID(sqldb, 42)
	if err != nil {
		t.Fatalf("get missing trip: %v", err)
	}
	if trip != nil {
		t.Fatalf("expected nil for missing trip, got %+v", trip)
	}
}

func TestListTripsOrderedMostRecentFirst(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	mustCreateTrip(t, sqldb, service.CreateTripInput{Date: "2024-05-01", StartTime: "08:00", LocationName: "A"})
	mustCreateTrip(t, sqldb, service.CreateTripInput{Date: "2024-05-02", StartTime: "06:00", LocationName: "B"})
	mustCreateTrip(t, sqldb, service.CreateTripInput{Date: "2024-05-01", StartTime: "18:00", LocationName: "C"})

	trips, err := service.ListTrips(sqldb, service.ListTripsFilter{})
	if err != nil {
		t.Fatalf("list trips: %v", err)
	}
	if len(trips) != 3 {
		t.Fatalf("expected 3 trips, got %d", len(trips))
	}
	got := []string{
		trips[0].Date + " " + trips[0].StartTime,
		trips[1].Date + " " + trips[1].StartTime,
		trips[2].Date + " " + trips[2].StartTime,
	}
	want := []string{"2024-05-02 06:00", "2024-05-01 18:00", "2024-05-01 08:00"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order at %d: got %v, want %v", i, got, want)
		}
	}
}

func TestListTripsPagination(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	for _, d := range []string{"2024-05-01", "2024-05-02", "2024-05-03", "2024-05-04", "2024-05-05"} {
		mustCreateTrip(t, sqldb, service.CreateTripInput{Date: d, StartTime: "07:00", LocationName: "Spot " + d})
	}

	// Sorted order is 05-05 .. 05-01; skip 1, take 2 lands on 05-04, 05-03.
	trips, err := service.ListTrips(sqldb, service.ListTripsFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("list trips paginated: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}
	if trips[0].Date != "2024-05-04" || trips[1].Date != "2024-05-03" {
		t.Fatalf("unexpected page: %s, %s", trips[0].Date, trips[1].Date)
	}
}

func TestUpdateTripAppliesZeroValues(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	temp := 21.0
	id := mustCreateTrip(t, sqldb, service.CreateTripInput{
		Date: "2024-05-01", StartTime: "06:00", LocationName: "Green Lake", Temperature: &temp,
	})

	if err := service.UpdateTrip(sqldb, id, service.TripPatch{Temperature: model.Set(0.0)}); err != nil {
		t.Fatalf("update trip: %v", err)
	}

	trip, err := service.TripByID(sqldb, id)
	if err != nil {
		t.Fatalf("get trip: %v", err)
	}
	if trip.Temperature == nil || *trip.Temperature != 0 {
		t.Fatalf("expected temperature 0 to persist, got %+v", trip.Temperature)
	}
}

func TestUpdateTripPartialAndClear(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	id := mustCreateTrip(t, sqldb, service.CreateTripInput{
		Date: "2024-05-01", StartTime: "06:00", EndTime: "12:00",
		LocationName: "Green Lake", Weather: "sunny", Notes: "calm",
	})
	before, err := service.TripByID(sqldb, id)
	if err != nil {
		t.Fatalf("get trip: %v", err)
	}

	err = service.UpdateTrip(sqldb, id, service.TripPatch{
		Weather: model.Set("windy"),
		EndTime: model.Null[string](),
	})
	if err != nil {
		t.Fatalf("update trip: %v", err)
	}

	trip, err := service.TripByID(sqldb, id)
	if err != nil {
		t.Fatalf("get trip after update: %v", err)
	}
	if trip.Weather == nil || *trip.Weather != "windy" {
		t.Fatalf("expected weather windy, got %+v", trip.Weather)
	}
	if trip.EndTime != nil {
		t.Fatalf("expected end time cleared, got %+v", trip.EndTime)
	}
	// Untouched fields keep their prior values.
	if trip.Date != before.Date || trip.StartTime != before.StartTime || trip.LocationName != before.LocationName {
		t.Fatalf("unrelated fields changed: %+v", trip)
	}
	if trip.Notes == nil || *trip.Notes != "calm" {
		t.Fatalf("notes should be untouched, got %+v", trip.Notes)
	}
	if trip.CreatedAt != before.CreatedAt {
		t.Fatalf("created_at must be immutable, got %q vs %q", trip.CreatedAt, before.CreatedAt)
	}
}

func TestUpdateTripRejectsClearingRequiredFields(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	id := mustCreateTrip(t, sqldb, service.CreateTripInput{Date: "2024-05-01", StartTime: "06:00", LocationName: "Green Lake"})

	err := service.UpdateTrip(sqldb, id, service.TripPatch{LocationName: model.Null[string]()})
	if err == nil || !strings.Contains(err.Error(), "location name cannot be cleared") {
		t.Fatalf("expected clear rejection, got: %v", err)
	}
	err = service.UpdateTrip(sqldb, id, service.TripPatch{Date: model.Set("")})
	if err == nil || !strings.Contains(err.Error(), "date cannot be cleared") {
		t.Fatalf("expected clear rejection for empty date, got: %v", err)
	}
}

func TestUpdateTripUnknownID(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	err := service.UpdateTrip(sqldb, 99, service.TripPatch{Notes: model.Set("late entry")})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found, got: %v", err)
	}
}

func TestDeleteTripCascadesToCatches(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	id := mustCreateTrip(t, sqldb, service.CreateTripInput{Date: "2024-05-01", StartTime: "06:00", LocationName: "Green Lake"})
	mustCreateCatch(t, sqldb, service.CreateCatchInput{TripID: id, Species: "Bass", Time: "07:10"})
	mustCreateCatch(t, sqldb, service.CreateCatchInput{TripID: id, Species: "Trout", Time: "08:45"})
	mustCreateCatch(t, sqldb, service.CreateCatchInput{TripID: id, Species: "Bass", Time: "09:30"})

	if err := service.DeleteTrip(sqldb, id); err != nil {
		t.Fatalf("delete trip: %v", err)
	}

	catches, err := service.CatchesByTrip(sqldb, id)
	if err != nil {
		t.Fatalf("list catches after delete: %v", err)
	}
	if len(catches) != 0 {
		t.Fatalf("expected cascade to remove catches, got %d", len(catches))
	}
}

func TestDeleteTripUnknownIDIsNoOp(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if err := service.DeleteTrip(sqldb, 12345); err != nil {
		t.Fatalf("delete of unknown trip should be a no-op, got: %v", err)
	}
}
