package requests

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Checks that the JSON object in data contains every one of the given keys with a non-null value.
// encoding/json silently leaves missing fields at their zero value, which would let a
// truncated or foreign body pass as real data.
func RequireFields(data []byte, names ...string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	if obj == nil {
		return fmt.Errorf("expected JSON object, got null")
	}

	for _, name := range names {
		v, ok := obj[name]
		if !ok {
			return fmt.Errorf("missing required field %q", name)
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return fmt.Errorf("required field %q must not be null", name)
		}
	}

	return nil
}
