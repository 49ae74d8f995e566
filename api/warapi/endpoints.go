package warapi

import (
	"fmt"
	"net/url"
)

type Endpoint = string

const (
	ENDPOINT_WAR  Endpoint = "/worldconquest/war"
	ENDPOINT_MAPS Endpoint = "/worldconquest/maps"
)

// Path for the static data of a map hex. The name is escaped but not checked against the map list.
func StaticMapEndpoint(mapName string) Endpoint {
	return fmt.Sprintf("%s/%s/static", ENDPOINT_MAPS, url.PathEscape(mapName))
}

// Path for the publicly visible dynamic data of a map hex.
func DynamicMapEndpoint(mapName string) Endpoint {
	return fmt.Sprintf("%s/%s/dynamic/public", ENDPOINT_MAPS, url.PathEscape(mapName))
}
