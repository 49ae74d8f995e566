package warapi

import (
	"encoding/json"
	"strings"
	"time"

	"foxholewar/utils/requests"

	"github.com/samber/lo"
)

// Response for the /worldconquest/maps/{map}/static and /worldconquest/maps/{map}/dynamic/public endpoints.
//
// Version is incremented by the server whenever the content changes.
// The client never compares versions itself, see the tracker package for that.
type MapDataResponse struct {
	RegionID             uint16        `json:"regionId"`
	ScorchedVictoryTowns uint16        `json:"scorchedVictoryTowns"`
	MapItems             []MapItem     `json:"mapItems"`
	MapTextItems         []MapTextItem `json:"mapTextItems"`
	LastUpdated          uint64        `json:"lastUpdated"`
	Version              uint16        `json:"version"`
}

// A single item present on a map hex. X and Y are normalized to [0,1] within the hex.
type MapItem struct {
	TeamID   TeamID       `json:"teamId"`
	IconType IconType     `json:"iconType"`
	X        float32      `json:"x"`
	Y        float32      `json:"y"`
	Flags    MapItemFlags `json:"flags"`
}

// A map label.
type MapTextItem struct {
	Text          string        `json:"text"`
	X             float32       `json:"x"`
	Y             float32       `json:"y"`
	MapMarkerType MapMarkerType `json:"mapMarkerType"`
}

var (
	mapDataRequired     = []string{"regionId", "scorchedVictoryTowns", "mapItems", "mapTextItems", "lastUpdated", "version"}
	mapItemRequired     = []string{"teamId", "iconType", "x", "y", "flags"}
	mapTextItemRequired = []string{"text", "x", "y", "mapMarkerType"}
)

func (m *MapDataResponse) UnmarshalJSON(data []byte) error {
	if err := requests.RequireFields(data, mapDataRequired...); err != nil {
		return err
	}

	type plain MapDataResponse

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*m = MapDataResponse(p)
	return nil
}

func (i *MapItem) UnmarshalJSON(data []byte) error {
	if err := requests.RequireFields(data, mapItemRequired...); err != nil {
		return err
	}

	type plain MapItem

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*i = MapItem(p)
	return nil
}

func (i *MapTextItem) UnmarshalJSON(data []byte) error {
	if err := requests.RequireFields(data, mapTextItemRequired...); err != nil {
		return err
	}

	type plain MapTextItem

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*i = MapTextItem(p)
	return nil
}

func (m MapDataResponse) LastUpdatedTime() time.Time {
	return time.UnixMilli(int64(m.LastUpdated))
}

func (m MapDataResponse) ItemsByTeam(team TeamID) []MapItem {
	return lo.Filter(m.MapItems, func(item MapItem, _ int) bool {
		return item.TeamID == team
	})
}

func (m MapDataResponse) ItemsOfType(types ...IconType) []MapItem {
	return lo.Filter(m.MapItems, func(item MapItem, _ int) bool {
		return lo.Contains(types, item.IconType)
	})
}

// Number of items owned by each team. Teams without items are absent from the map.
func (m MapDataResponse) TeamCounts() map[TeamID]int {
	return lo.CountValuesBy(m.MapItems, func(item MapItem) TeamID {
		return item.TeamID
	})
}

// Items flagged as victory bases.
func (m MapDataResponse) VictoryBases() []MapItem {
	return lo.Filter(m.MapItems, func(item MapItem, _ int) bool {
		return item.Flags.Has(FLAG_VICTORY_BASE)
	})
}

// Turns an API map name into a readable one, e.g. "TheFingersHex" becomes "The Fingers".
func HumanizeMapName(name string) string {
	return strings.Join(lo.Words(strings.TrimSuffix(name, "Hex")), " ")
}
