package warapi

// Raw bit field attached to every map item. The client never interprets it,
// these constants only exist so callers can.
type MapItemFlags uint16

const (
	FLAG_VICTORY_BASE MapItemFlags = 0x01
	FLAG_HOME_BASE    MapItemFlags = 0x02 // No longer set by the server.
	FLAG_BUILD_SITE   MapItemFlags = 0x04
	FLAG_SCORCHED     MapItemFlags = 0x10
	FLAG_TOWN_CLAIMED MapItemFlags = 0x20
)

func (f MapItemFlags) Has(flag MapItemFlags) bool {
	return f&flag == flag
}
