package warapi

import (
	"encoding/json"
	"time"

	"foxholewar/utils/requests"

	"github.com/google/uuid"
)

// Response for the `worldconquest/war` endpoint.
//
// Contains the status of the war for a given shard. ConquestEndTime and ResistanceStartTime are nil while the war is ongoing.
type WarDataResponse struct {
	WarID                string  `json:"warId"`
	WarNumber            uint32  `json:"warNumber"`
	Winner               TeamID  `json:"winner"`
	ConquestStartTime    uint64  `json:"conquestStartTime"`
	ConquestEndTime      *uint64 `json:"conquestEndTime"`
	ResistanceStartTime  *uint64 `json:"resistanceStartTime"`
	RequiredVictoryTowns uint8   `json:"requiredVictoryTowns"`
}

var warDataRequired = []string{"warId", "warNumber", "winner", "conquestStartTime", "requiredVictoryTowns"}

func (w *WarDataResponse) UnmarshalJSON(data []byte) error {
	if err := requests.RequireFields(data, warDataRequired...); err != nil {
		return err
	}

	type plain WarDataResponse

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*w = WarDataResponse(p)
	return nil
}

// Parses the war id as a UUID. The id itself is kept as an opaque string since the API makes no promise about its format.
func (w WarDataResponse) WarUUID() (uuid.UUID, error) {
	return uuid.Parse(w.WarID)
}

// Whether the war has a winner and a conquest end time.
func (w WarDataResponse) IsOver() bool {
	return w.Winner != TeamNone && w.ConquestEndTime != nil
}

func (w WarDataResponse) ConquestStart() time.Time {
	return time.UnixMilli(int64(w.ConquestStartTime))
}

// Time since the conquest started, or its total length if the war is over.
func (w WarDataResponse) Duration(now time.Time) time.Duration {
	if w.ConquestEndTime != nil {
		return time.UnixMilli(int64(*w.ConquestEndTime)).Sub(w.ConquestStart())
	}

	return now.Sub(w.ConquestStart())
}
