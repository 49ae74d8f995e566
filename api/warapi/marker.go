package warapi

import (
	"encoding/json"
	"fmt"
)

// Whether a map text label is major or minor.
type MapMarkerType string

func (m *MapMarkerType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case string(MarkerMajor), string(MarkerMinor):
		*m = MapMarkerType(s)
		return nil
	default:
		return fmt.Errorf("invalid map marker type: %q", s)
	}
}

const (
	MarkerMajor MapMarkerType = "Major"
	MarkerMinor MapMarkerType = "Minor"
)
