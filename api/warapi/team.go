package warapi

import (
	"encoding/json"
	"fmt"
)

// Team that owns a map item or won a war.
type TeamID string

func (t *TeamID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case
		string(TeamNone),
		string(TeamWardens),
		string(TeamColonials):

		*t = TeamID(s)

		return nil
	default:
		return fmt.Errorf("invalid team id: %q", s)
	}
}

const (
	TeamNone      TeamID = "NONE"
	TeamWardens   TeamID = "WARDENS"
	TeamColonials TeamID = "COLONIALS"
)

var Teams = []TeamID{TeamNone, TeamWardens, TeamColonials}

// Display name, e.g. "Wardens".
func (t TeamID) Label() string {
	switch t {
	case TeamWardens:
		return "Wardens"
	case TeamColonials:
		return "Colonials"
	case TeamNone:
		return "None"
	}

	return string(t)
}
