// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on the simulation
// so thin clients can import it without pulling in the server.
package netconfig

// ProtocolVersion is checked against JoinRequest.Version. Clients sending an
// empty version are accepted.
const ProtocolVersion = "yeetables/1"

// EntityKind identifies what a synced entity is, so clients know how to draw it.
type EntityKind int

const (
	KindUnknown EntityKind = iota
	KindPlayer
	KindMob
	KindSnowball
	KindArrow
	KindSmallFireball
	KindBlockDisplay
	KindItemDisplay
	KindItemDrop
	KindLeashAnchor
)

var kindNames = map[EntityKind]string{
	KindUnknown:       "unknown",
	KindPlayer:        "player",
	KindMob:           "mob",
	KindSnowball:      "snowball",
	KindArrow:         "arrow",
	KindSmallFireball: "small_fireball",
	KindBlockDisplay:  "block_display",
	KindItemDisplay:   "item_display",
	KindItemDrop:      "item",
	KindLeashAnchor:   "leash_anchor",
}

func (k EntityKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// FeedbackKind selects how a client presents a feedback entity.
type FeedbackKind int

const (
	FeedbackSound FeedbackKind = iota
	FeedbackParticles
)

// Admin command verbs accepted in AdminCommand.Line.
const (
	AdminReload = "reload"
	AdminList   = "list"
	AdminGive   = "give"
)
