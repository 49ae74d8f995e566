package tracker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"foxholewar/api/warapi"
	"foxholewar/database"
)

type fakeClient struct {
	war       warapi.WarDataResponse
	names     []string
	dynamic   map[string]warapi.MapDataResponse
	static    map[string]warapi.MapDataResponse
	failMaps  map[string]bool
	staticReq int
}

func (f *fakeClient) WarData(ctx context.Context) (warapi.WarDataResponse, error) {
	return f.war, nil
}

func (f *fakeClient) MapNames(ctx context.Context) ([]string, error) {
	return f.names, nil
}

func (f *fakeClient) MapDataStatic(ctx context.Context, mapName string) (warapi.MapDataResponse, error) {
	f.staticReq++
	return f.static[mapName], nil
}

func (f *fakeClient) MapDataDynamic(ctx context.Context, mapName string) (warapi.MapDataResponse, error) {
	if f.failMaps[mapName] {
		return warapi.MapDataResponse{}, &warapi.TransportError{URL: mapName, StatusCode: 503, Status: "503 Service Unavailable", Err: errors.New("unavailable")}
	}

	return f.dynamic[mapName], nil
}

type recordingNotifier struct {
	wars    []WarEvent
	changes []MapChange
}

func (r *recordingNotifier) NotifyWar(ctx context.Context, event WarEvent) error {
	r.wars = append(r.wars, event)
	return nil
}

func (r *recordingNotifier) NotifyMapChange(ctx context.Context, change MapChange) error {
	r.changes = append(r.changes, change)
	return nil
}

const (
	warID1 = "1e82269a-d82b-4350-b1b1-06a98c983503"
	warID2 = "5f0e2b1c-8a61-4c63-9d27-4c1b7bd7a3f1"
)

func townHall(team warapi.TeamID, x, y float32) warapi.MapItem {
	return warapi.MapItem{TeamID: team, IconType: warapi.IconTownBase1, X: x, Y: y, Flags: warapi.FLAG_VICTORY_BASE}
}

func mapData(version uint16, items ...warapi.MapItem) warapi.MapDataResponse {
	return warapi.MapDataResponse{
		RegionID:     38,
		MapItems:     items,
		MapTextItems: []warapi.MapTextItem{},
		Version:      version,
	}
}

func setup(t *testing.T) (*fakeClient, *recordingNotifier, *Tracker) {
	t.Helper()

	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	client := &fakeClient{
		war:   warapi.WarDataResponse{WarID: warID1, WarNumber: 83, Winner: warapi.TeamNone, ConquestStartTime: 1632326703205, RequiredVictoryTowns: 32},
		names: []string{"TheFingersHex", "GreatMarchHex"},
		dynamic: map[string]warapi.MapDataResponse{
			"TheFingersHex": mapData(1, townHall(warapi.TeamWardens, 0.1, 0.2)),
			"GreatMarchHex": mapData(4, townHall(warapi.TeamColonials, 0.5, 0.5)),
		},
		static: map[string]warapi.MapDataResponse{
			"TheFingersHex": mapData(1),
			"GreatMarchHex": mapData(1),
		},
	}
	notifier := &recordingNotifier{}

	return client, notifier, New(client, db, notifier)
}

func TestSyncFirstRun(t *testing.T) {
	_, notifier, tr := setup(t)

	report, err := tr.Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Changes) != 2 || len(report.Skipped) != 0 {
		t.Errorf("expected 2 new maps, got %d changes and %d skipped", len(report.Changes), len(report.Skipped))
	}
	if len(report.Events) != 0 {
		t.Errorf("expected no war events on first run, got %v", report.Events)
	}
	// Nothing to compare against yet, so nothing is announced.
	if len(notifier.changes) != 0 || len(notifier.wars) != 0 {
		t.Errorf("expected no notifications on first run, got %d changes and %d wars", len(notifier.changes), len(notifier.wars))
	}
}

func TestSyncSkipsUnchangedVersion(t *testing.T) {
	client, notifier, tr := setup(t)

	if _, err := tr.Sync(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Only TheFingersHex advances.
	client.dynamic["TheFingersHex"] = mapData(2, townHall(warapi.TeamColonials, 0.1, 0.2))

	report, err := tr.Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Changes) != 1 || report.Changes[0].MapName != "TheFingersHex" {
		t.Fatalf("expected only TheFingersHex to change, got %+v", report.Changes)
	}
	if len(report.Skipped) != 1 || report.Skipped[0] != "GreatMarchHex" {
		t.Errorf("expected GreatMarchHex to be skipped, got %v", report.Skipped)
	}

	if len(notifier.changes) != 1 {
		t.Fatalf("expected 1 map change notification, got %d", len(notifier.changes))
	}

	change := notifier.changes[0]
	if change.OldVersion != 1 || change.NewVersion != 2 {
		t.Errorf("expected version 1 -> 2, got %d -> %d", change.OldVersion, change.NewVersion)
	}
	if len(change.Captured) != 1 || change.Captured[0].Previous != warapi.TeamWardens || change.Captured[0].Item.TeamID != warapi.TeamColonials {
		t.Errorf("unexpected captures: %+v", change.Captured)
	}
}

func TestSyncNotifiesAfterVersionZero(t *testing.T) {
	client, notifier, tr := setup(t)
	client.dynamic["TheFingersHex"] = mapData(0, townHall(warapi.TeamWardens, 0.1, 0.2))

	report, err := tr.Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, change := range report.Changes {
		if !change.First {
			t.Errorf("expected %s to be a first snapshot", change.MapName)
		}
	}

	client.dynamic["TheFingersHex"] = mapData(1, townHall(warapi.TeamColonials, 0.1, 0.2))

	report, err = tr.Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Changes) != 1 || report.Changes[0].First {
		t.Fatalf("expected one compared change, got %+v", report.Changes)
	}
	if len(notifier.changes) != 1 {
		t.Fatalf("expected the bump from version 0 to be announced, got %d notifications", len(notifier.changes))
	}
	if notifier.changes[0].OldVersion != 0 || notifier.changes[0].NewVersion != 1 {
		t.Errorf("expected version 0 -> 1, got %d -> %d", notifier.changes[0].OldVersion, notifier.changes[0].NewVersion)
	}
}

func TestSyncIgnoresOlderVersion(t *testing.T) {
	client, notifier, tr := setup(t)

	if _, err := tr.Sync(context.Background()); err != nil {
		t.Fatal(err)
	}

	// A lagging server replica can hand back an older version.
	client.dynamic["GreatMarchHex"] = mapData(3, townHall(warapi.TeamWardens, 0.5, 0.5))

	report, err := tr.Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Changes) != 0 {
		t.Errorf("expected no changes, got %+v", report.Changes)
	}
	if len(notifier.changes) != 0 {
		t.Errorf("expected no notifications, got %d", len(notifier.changes))
	}
}

func TestSyncNewWarClearsSnapshots(t *testing.T) {
	client, notifier, tr := setup(t)

	if _, err := tr.Sync(context.Background()); err != nil {
		t.Fatal(err)
	}

	client.war = warapi.WarDataResponse{WarID: warID2, WarNumber: 84, Winner: warapi.TeamNone, ConquestStartTime: 1700000000000, RequiredVictoryTowns: 32}
	// Versions restart in a new war.
	client.dynamic["TheFingersHex"] = mapData(1, townHall(warapi.TeamNone, 0.1, 0.2))

	report, err := tr.Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Events) != 1 || report.Events[0].Kind != EVENT_NEW_WAR {
		t.Fatalf("expected a new war event, got %+v", report.Events)
	}
	if report.Events[0].Previous == nil || report.Events[0].Previous.WarNumber != 83 {
		t.Errorf("expected previous war 83, got %+v", report.Events[0].Previous)
	}
	if len(report.Changes) != 2 {
		t.Errorf("expected both maps to be re-stored after clearing, got %d", len(report.Changes))
	}
	if len(notifier.wars) != 1 {
		t.Errorf("expected 1 war notification, got %d", len(notifier.wars))
	}
}

func TestSyncWarOver(t *testing.T) {
	client, notifier, tr := setup(t)

	if _, err := tr.Sync(context.Background()); err != nil {
		t.Fatal(err)
	}

	end := uint64(1640000000000)
	client.war.Winner = warapi.TeamWardens
	client.war.ConquestEndTime = &end

	report, err := tr.Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Events) != 1 || report.Events[0].Kind != EVENT_WAR_OVER {
		t.Fatalf("expected a war over event, got %+v", report.Events)
	}
	if len(notifier.wars) != 1 || notifier.wars[0].War.Winner != warapi.TeamWardens {
		t.Errorf("unexpected war notifications: %+v", notifier.wars)
	}
}

func TestSyncCollectsMapErrors(t *testing.T) {
	client, _, tr := setup(t)
	client.failMaps = map[string]bool{"GreatMarchHex": true}

	report, err := tr.Sync(context.Background())
	if err == nil {
		t.Fatal("expected an error for the failing map")
	}

	var transportErr *warapi.TransportError
	if !errors.As(err, &transportErr) {
		t.Errorf("expected joined error to contain a TransportError, got %v", err)
	}

	if len(report.Failed) != 1 || report.Failed[0] != "GreatMarchHex" {
		t.Errorf("expected GreatMarchHex to fail, got %v", report.Failed)
	}
	if len(report.Changes) != 1 {
		t.Errorf("expected the other map to still sync, got %d changes", len(report.Changes))
	}
}

func TestSyncStatic(t *testing.T) {
	client, _, tr := setup(t)

	fetched, err := tr.SyncStatic(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if fetched != 2 {
		t.Errorf("expected 2 static maps fetched, got %d", fetched)
	}

	// Already stored, nothing to fetch.
	fetched, err = tr.SyncStatic(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if fetched != 0 || client.staticReq != 2 {
		t.Errorf("expected no further requests, got fetched=%d requests=%d", fetched, client.staticReq)
	}
}

func TestSyncWithHTTPClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(warapi.ENDPOINT_WAR, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"warId":"1e82269a-d82b-4350-b1b1-06a98c983503","warNumber":83,"winner":"NONE","conquestStartTime":1632326703205,"conquestEndTime":null,"resistanceStartTime":null,"requiredVictoryTowns":32}`))
	})
	mux.HandleFunc(warapi.ENDPOINT_MAPS, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["TheFingersHex"]`))
	})
	mux.HandleFunc(warapi.DynamicMapEndpoint("TheFingersHex"), func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"regionId":38,"scorchedVictoryTowns":0,"mapItems":[{"teamId":"WARDENS","iconType":56,"x":0.1,"y":0.2,"flags":1}],"mapTextItems":[],"lastUpdated":1635534670643,"version":5}`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	client := warapi.NewClient(warapi.SHARD_LIVE1, warapi.WithBaseURL(srv.URL))
	report, err := New(client, db, nil).Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if report.War.WarNumber != 83 || len(report.Changes) != 1 {
		t.Errorf("unexpected report: %+v", report)
	}

	stored, err := db.GetMap("TheFingersHex", database.KIND_DYNAMIC)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Version != 5 || stored.MapItems[0].IconType != warapi.IconTownBase1 {
		t.Errorf("unexpected stored snapshot: %+v", stored)
	}
}

func TestScheduleRejectsInvalidSpec(t *testing.T) {
	_, _, tr := setup(t)

	if err := tr.Schedule(context.Background(), "every now and then"); err == nil {
		t.Error("expected invalid cron spec to fail")
	}

	if _, err := tr.db.GetWar(); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected no sync for a rejected schedule, got %v", err)
	}
}

func TestScheduleRunsImmediately(t *testing.T) {
	_, _, tr := setup(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := tr.Schedule(ctx, "@every 1h"); err != nil {
		t.Fatal(err)
	}

	war, err := tr.db.GetWar()
	if err != nil {
		t.Fatalf("expected the first sync to run before waiting on the schedule: %v", err)
	}
	if war.WarID != warID1 {
		t.Errorf("expected war %s, got %s", warID1, war.WarID)
	}
}
