package tracker

import (
	"context"
	"errors"
	"fmt"

	"foxholewar/api/warapi"
	"foxholewar/database"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// The subset of [warapi.Client] the tracker needs.
type WarClient interface {
	WarData(ctx context.Context) (warapi.WarDataResponse, error)
	MapNames(ctx context.Context) ([]string, error)
	MapDataStatic(ctx context.Context, mapName string) (warapi.MapDataResponse, error)
	MapDataDynamic(ctx context.Context, mapName string) (warapi.MapDataResponse, error)
}

type WarEventKind string

const (
	EVENT_NEW_WAR  WarEventKind = "new_war"
	EVENT_WAR_OVER WarEventKind = "war_over"
)

type WarEvent struct {
	Kind     WarEventKind
	War      warapi.WarDataResponse
	Previous *warapi.WarDataResponse
}

type Notifier interface {
	NotifyWar(ctx context.Context, event WarEvent) error
	NotifyMapChange(ctx context.Context, change MapChange) error
}

type SyncReport struct {
	War      warapi.WarDataResponse
	Events   []WarEvent
	Changes  []MapChange // Maps with a newer version than the stored snapshot.
	Skipped  []string    // Maps whose version did not advance.
	Failed   []string
	MapCount int
}

// Fetches dynamic map data and compares the server version counter against the last stored snapshot.
// The API client itself never does this, comparing versions is the caller's job.
type Tracker struct {
	client   WarClient
	db       *database.SnapshotDB
	notifier Notifier
}

// notifier may be nil, in which case nothing is sent anywhere.
func New(client WarClient, db *database.SnapshotDB, notifier Notifier) *Tracker {
	return &Tracker{client: client, db: db, notifier: notifier}
}

// Runs a single sync. Every request is made once, in order, and failures on individual maps
// are collected rather than retried. The returned error joins all of them.
func (t *Tracker) Sync(ctx context.Context) (SyncReport, error) {
	report := SyncReport{}

	war, err := t.client.WarData(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to fetch war data: %w", err)
	}
	report.War = war

	events, err := t.syncWar(war)
	if err != nil {
		return report, err
	}
	report.Events = events

	names, err := t.client.MapNames(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to fetch map names: %w", err)
	}
	report.MapCount = len(names)

	errs := []error{}
	for _, name := range names {
		change, updated, err := t.syncMap(ctx, name)
		if err != nil {
			log.WithField("map", name).Warnf("failed to sync map: %v", err)
			report.Failed = append(report.Failed, name)
			errs = append(errs, fmt.Errorf("map %s: %w", name, err))
			continue
		}

		if !updated {
			report.Skipped = append(report.Skipped, name)
			continue
		}

		report.Changes = append(report.Changes, change)
	}

	t.notify(ctx, report)

	log.WithFields(log.Fields{
		"war":     war.WarNumber,
		"maps":    report.MapCount,
		"updated": len(report.Changes),
		"failed":  len(report.Failed),
	}).Info("sync finished")

	return report, errors.Join(errs...)
}

// Stores the latest war data, clearing every snapshot if a new war has started.
func (t *Tracker) syncWar(war warapi.WarDataResponse) ([]WarEvent, error) {
	events := []WarEvent{}

	prev, err := t.db.GetWar()
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	if prev != nil {
		if !sameWar(*prev, war) {
			log.WithFields(log.Fields{"previous": prev.WarNumber, "current": war.WarNumber}).Info("new war detected, clearing snapshots")
			if err := t.db.Clear(); err != nil {
				return nil, fmt.Errorf("failed to clear snapshots for new war: %w", err)
			}

			events = append(events, WarEvent{Kind: EVENT_NEW_WAR, War: war, Previous: prev})
		} else if !prev.IsOver() && war.IsOver() {
			events = append(events, WarEvent{Kind: EVENT_WAR_OVER, War: war, Previous: prev})
		}
	}

	if err := t.db.PutWar(war); err != nil {
		return nil, err
	}

	return events, nil
}

// Compares war ids as UUIDs when both parse, so casing differences do not look like a new war.
func sameWar(a, b warapi.WarDataResponse) bool {
	aID, aErr := a.WarUUID()
	bID, bErr := b.WarUUID()
	if aErr == nil && bErr == nil {
		return aID == bID
	}

	return a.WarID == b.WarID
}

func (t *Tracker) syncMap(ctx context.Context, name string) (MapChange, bool, error) {
	cur, err := t.client.MapDataDynamic(ctx, name)
	if err != nil {
		return MapChange{}, false, err
	}

	prev, err := t.db.GetMap(name, database.KIND_DYNAMIC)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return MapChange{}, false, err
	}

	var change MapChange
	if prev != nil {
		if prev.Version >= cur.Version {
			return MapChange{}, false, nil
		}

		change = DiffMaps(name, *prev, cur)
	} else {
		// First time seeing this map, nothing to compare against.
		change = MapChange{MapName: name, NewVersion: cur.Version, First: true}
	}

	if err := t.db.PutMap(name, database.KIND_DYNAMIC, cur); err != nil {
		return MapChange{}, false, err
	}

	return change, true, nil
}

// Fetches static data for every map that has none stored yet. Static data does not change during a war.
func (t *Tracker) SyncStatic(ctx context.Context) (fetched int, err error) {
	names, err := t.client.MapNames(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch map names: %w", err)
	}

	errs := []error{}
	for _, name := range names {
		if _, err := t.db.GetMap(name, database.KIND_STATIC); err == nil {
			continue
		}

		data, err := t.client.MapDataStatic(ctx, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("map %s: %w", name, err))
			continue
		}

		if err := t.db.PutMap(name, database.KIND_STATIC, data); err != nil {
			errs = append(errs, err)
			continue
		}

		fetched++
	}

	return fetched, errors.Join(errs...)
}

func (t *Tracker) notify(ctx context.Context, report SyncReport) {
	if t.notifier == nil {
		return
	}

	for _, event := range report.Events {
		if err := t.notifier.NotifyWar(ctx, event); err != nil {
			log.Errorf("failed to send war notification: %v", err)
		}
	}

	for _, change := range report.Changes {
		if change.First || change.IsEmpty() {
			continue
		}

		if err := t.notifier.NotifyMapChange(ctx, change); err != nil {
			log.WithField("map", change.MapName).Errorf("failed to send map change notification: %v", err)
		}
	}
}

// Runs Sync once immediately, then on the given cron spec (e.g. "@every 5m") until ctx is done.
// A run that is still going when the next one is due causes that next run to be skipped.
func (t *Tracker) Schedule(ctx context.Context, spec string) error {
	c := cron.New(
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log.StandardLogger()))),
	)

	run := func() {
		if _, err := t.Sync(ctx); err != nil {
			log.Errorf("sync failed: %v", err)
		}
	}

	if _, err := c.AddFunc(spec, run); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	run()
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()

	return nil
}
