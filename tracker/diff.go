package tracker

import (
	"fmt"

	"foxholewar/api/warapi"

	"github.com/samber/lo"
)

// A map item that changed hands between two snapshots.
type OwnershipChange struct {
	Item     warapi.MapItem // State in the newer snapshot.
	Previous warapi.TeamID
}

// Differences between two versions of the same map hex.
type MapChange struct {
	MapName    string
	OldVersion uint16
	NewVersion uint16
	First      bool // No earlier snapshot was stored, so nothing was compared.
	Captured   []OwnershipChange
	Added      []warapi.MapItem
	Removed    []warapi.MapItem
}

func (c MapChange) IsEmpty() bool {
	return len(c.Captured) == 0 && len(c.Added) == 0 && len(c.Removed) == 0
}

// Items are identified by icon type and position since the API gives them no id.
type itemKey struct {
	icon warapi.IconType
	x, y float32
}

func keyOf(item warapi.MapItem) itemKey {
	return itemKey{icon: item.IconType, x: item.X, y: item.Y}
}

// Compares two snapshots of mapName. If two items share a key, the last one wins.
func DiffMaps(mapName string, old, cur warapi.MapDataResponse) MapChange {
	oldList, oldItems := uniqueItems(old.MapItems)
	curList, curItems := uniqueItems(cur.MapItems)

	change := MapChange{
		MapName:    mapName,
		OldVersion: old.Version,
		NewVersion: cur.Version,
	}

	for _, item := range curList {
		prev, ok := oldItems[keyOf(item)]
		if !ok {
			change.Added = append(change.Added, item)
			continue
		}

		if prev.TeamID != item.TeamID {
			change.Captured = append(change.Captured, OwnershipChange{Item: item, Previous: prev.TeamID})
		}
	}

	change.Removed = lo.Filter(oldList, func(item warapi.MapItem, _ int) bool {
		_, ok := curItems[keyOf(item)]
		return !ok
	})

	return change
}

// Collapses items sharing a key into the last of them, in order of first appearance.
func uniqueItems(items []warapi.MapItem) ([]warapi.MapItem, map[itemKey]warapi.MapItem) {
	byKey := lo.KeyBy(items, keyOf)
	keys := lo.Uniq(lo.Map(items, func(item warapi.MapItem, _ int) itemKey {
		return keyOf(item)
	}))

	return lo.Map(keys, func(key itemKey, _ int) warapi.MapItem {
		return byKey[key]
	}), byKey
}

// One line summary, e.g. "Town Base 1 captured by Wardens (was Colonials)".
func (c OwnershipChange) String() string {
	if c.Item.TeamID == warapi.TeamNone {
		return fmt.Sprintf("%s lost by %s", c.Item.IconType.Label(), c.Previous.Label())
	}

	return fmt.Sprintf("%s captured by %s (was %s)", c.Item.IconType.Label(), c.Item.TeamID.Label(), c.Previous.Label())
}
