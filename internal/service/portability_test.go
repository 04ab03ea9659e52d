package service_test

import (
	"testing"

	"github.com/pcannon/fishlog-cli/internal/service"
)

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	source := newTestDB(t)
	defer source.Close()

	weight := 2.1
	tripID := mustCreateTrip(t, source, service.CreateTripInput{
		Date: "2024-05-01", StartTime: "06:00", EndTime: "12:30",
		LocationName: "Green Lake", Weather: "overcast",
	})
	mustCreateCatch(t, source, service.CreateCatchInput{TripID: tripID, Species: "Bass", Time: "07:15", Weight: &weight, Released: true})
	mustCreateCatch(t, source, service.CreateCatchInput{TripID: tripID, Species: "Trout", Time: "09:40"})
	if _, err := service.CreateLocation(source, service.CreateLocationInput{Name: "Baker Point", Latitude: 48.75, Longitude: -121.81, IsFavorite: true}); err != nil {
		t.Fatalf("create location: %v", err)
	}

	snapshot, err := service.ExportSnapshot(source)
	if err != nil {
		t.Fatalf("export snapshot: %v", err)
	}
	if len(snapshot.Trips) != 1 || len(snapshot.Trips[0].Catches) != 2 || len(snapshot.Locations) != 1 {
		t.Fatalf("unexpected snapshot shape: %+v", snapshot)
	}

	target := newTestDB(t)
	defer target.Close()

	summary, err := service.ImportSnapshot(target, snapshot, service.ImportModeMerge)
	if err != nil {
		t.Fatalf("import snapshot: %v", err)
	}
	if summary.Trips != 1 || summary.Catches != 2 || summary.Locations != 1 {
		t.Fatalf("unexpected import summary: %+v", summary)
	}

	trips, err := service.ListTrips(target, service.ListTripsFilter{})
	if err != nil {
		t.Fatalf("list imported trips: %v", err)
	}
	if len(trips) != 1 || trips[0].LocationName != "Green Lake" {
		t.Fatalf("unexpected imported trips: %+v", trips)
	}
	catches, err := service.CatchesByTrip(target, trips[0].ID)
	if err != nil {
		t.Fatalf("list imported catches: %v", err)
	}
	if len(catches) != 2 {
		t.Fatalf("expected catches re-parented under imported trip, got %d", len(catches))
	}
	if catches[0].Species != "Bass" || !catches[0].Released {
		t.Fatalf("unexpected imported catch: %+v", catches[0])
	}
}

func TestImportReplaceWipesExistingData(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	oldTrip := mustCreateTrip(t, sqldb, service.CreateTripInput{Date: "2023-09-10", StartTime: "08:00", LocationName: "Old Spot"})
	mustCreateCatch(t, sqldb, service.CreateCatchInput{TripID: oldTrip, Species: "Pike", Time: "09:00"})

	snapshot := service.ExportData{
		Trips: []service.ExportTrip{
			{
				Date: "2024-05-01", StartTime: "06:00", LocationName: "Green Lake",
				Catches: []service.ExportCatch{{Species: "Bass", Time: "07:00"}},
			},
		},
	}
	if _, err := service.ImportSnapshot(sqldb, snapshot, service.ImportModeReplace); err != nil {
		t.Fatalf("import replace: %v", err)
	}

	trips, err := service.ListTrips(sqldb, service.ListTripsFilter{})
	if err != nil {
		t.Fatalf("list trips: %v", err)
	}
	if len(trips) != 1 || trips[0].LocationName != "Green Lake" {
		t.Fatalf("expected only imported trip to remain, got %+v", trips)
	}
	stats, err := service.GetTripStats(sqldb)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.TotalCatches != 1 {
		t.Fatalf("expected old catches wiped, got %d", stats.TotalCatches)
	}
}

func TestImportRejectsInvalidModeAndBadRows(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if _, err := service.ImportSnapshot(sqldb, service.ExportData{}, "upsert"); err == nil {
		t.Fatalf("expected invalid mode error")
	}

	bad := service.ExportData{Trips: []service.ExportTrip{{Date: "2024-05-01", StartTime: "06:00"}}}
	if _, err := service.ImportSnapshot(sqldb, bad, service.ImportModeMerge); err == nil {
		t.Fatalf("expected error for trip missing location name")
	}
}
