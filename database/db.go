package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"foxholewar/api/warapi"

	"github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
)

// Returned by getters when nothing has been stored under the key yet.
var ErrNotFound = errors.New("snapshot not found")

type MapKind string

const (
	KIND_STATIC  MapKind = "static"
	KIND_DYNAMIC MapKind = "dynamic"
)

const (
	WAR_KEY         = "war"
	MAPS_KEY_PREFIX = "maps/"
)

// Persistent snapshots of the last fetched war and map data for one shard.
// Everything is stored as JSON under lowercased keys so lookups are case-insensitive.
type SnapshotDB struct {
	db *badger.DB
}

// Opens (or creates) the database for shard under baseDir, i.e. "./db/live-2".
func Open(baseDir string, shard warapi.Shard) (*SnapshotDB, error) {
	dbDir := filepath.Join(baseDir, string(shard))

	opts := badger.DefaultOptions(dbDir)
	opts.ZSTDCompressionLevel = 2
	opts.NumLevelZeroTables = 1
	opts.NumVersionsToKeep = 1
	opts.CompactL0OnClose = true
	opts.Logger = nil

	return open(opts)
}

// Opens a database that lives only in memory. Used for tests and one-off syncs.
func OpenInMemory() (*SnapshotDB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return open(opts)
}

func open(opts badger.Options) (*SnapshotDB, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot db at %q: %w", opts.Dir, err)
	}

	return &SnapshotDB{db: db}, nil
}

func (s *SnapshotDB) Close() error {
	return s.db.Close()
}

func MapKey(mapName string, kind MapKind) string {
	return MAPS_KEY_PREFIX + mapName + "/" + string(kind)
}

func (s *SnapshotDB) GetWar() (*warapi.WarDataResponse, error) {
	return GetInsensitive[warapi.WarDataResponse](s.db, WAR_KEY)
}

func (s *SnapshotDB) PutWar(war warapi.WarDataResponse) error {
	return putJSON(s.db, WAR_KEY, war)
}

func (s *SnapshotDB) GetMap(mapName string, kind MapKind) (*warapi.MapDataResponse, error) {
	return GetInsensitive[warapi.MapDataResponse](s.db, MapKey(mapName, kind))
}

func (s *SnapshotDB) PutMap(mapName string, kind MapKind, data warapi.MapDataResponse) error {
	// nil slices encode as null, which the strict decoder would refuse on the way back out.
	if data.MapItems == nil {
		data.MapItems = []warapi.MapItem{}
	}
	if data.MapTextItems == nil {
		data.MapTextItems = []warapi.MapTextItem{}
	}

	return putJSON(s.db, MapKey(mapName, kind), data)
}

// Lowercased names of all maps with at least one stored snapshot.
func (s *SnapshotDB) MapNames() ([]string, error) {
	seen := map[string]struct{}{}
	names := []string{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(MAPS_KEY_PREFIX)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			rest := strings.TrimPrefix(string(it.Item().Key()), MAPS_KEY_PREFIX)
			name, _, _ := strings.Cut(rest, "/")
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}

		return nil
	})

	return names, err
}

// Removes every snapshot. Called when a new war begins since old map versions mean nothing anymore.
func (s *SnapshotDB) Clear() error {
	return s.db.DropAll()
}

// Writes every key and its indented value to w.
func (s *SnapshotDB) Dump(w io.Writer) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())

			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			var data any
			if err := json.Unmarshal(val, &data); err != nil {
				fmt.Fprintf(w, "\n%s\n%s\n\n", key, val)
				continue
			}

			valPretty, _ := json.MarshalIndent(data, "", "  ")
			fmt.Fprintf(w, "\n%s\n%s\n\n", key, valPretty)
		}

		return nil
	})
}

func GetInsensitiveTxn[T any](txn *badger.Txn, key string) (*T, error) {
	item, err := txn.Get([]byte(strings.ToLower(key)))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}

	out := new(T)
	if err := json.Unmarshal(val, out); err != nil {
		return nil, fmt.Errorf("corrupt snapshot at key '%s': %w", key, err)
	}

	return out, nil
}

func GetInsensitive[T any](db *badger.DB, key string) (out *T, err error) {
	err = db.View(func(txn *badger.Txn) error {
		out, err = GetInsensitiveTxn[T](txn, key)
		return err
	})

	return
}

// Puts data into the DB at the specified key which is automatically lowercased.
func PutInsensitive(db *badger.DB, key string, data []byte) error {
	return db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(strings.ToLower(key)), data)
	})
}

func putJSON(db *badger.DB, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error marshalling snapshot '%s': %w", key, err)
	}

	log.WithField("key", strings.ToLower(key)).Debug("writing snapshot")
	return PutInsensitive(db, key, data)
}
