package warapi

import (
	"fmt"
	"strings"
)

// An independently hosted instance of the game world. Each shard exposes its own API.
type Shard string

const (
	SHARD_LIVE1 Shard = "live"
	SHARD_LIVE2 Shard = "live-2"
)

const DEFAULT_SHARD = SHARD_LIVE1

const PROVIDER_DOMAIN = "foxholeservices.com"

// The API base URL for this shard, without a trailing slash.
func (s Shard) BaseURL() string {
	return fmt.Sprintf("https://war-service-%s.%s/api", string(s), PROVIDER_DOMAIN)
}

func (s Shard) String() string {
	return string(s)
}

// Parses a user supplied shard name. Accepts "live", "live-1", "live1" or "1" for the
// first shard and "live-2", "live2" or "2" for the second. Case is ignored.
func ParseShard(s string) (Shard, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "live", "live-1", "live1", "1":
		return SHARD_LIVE1, nil
	case "live-2", "live2", "2":
		return SHARD_LIVE2, nil
	}

	return "", fmt.Errorf("unknown shard %q, expected one of: live, live-2", s)
}
