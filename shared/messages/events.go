package messages

// ThrowRejected tells a player why right-clicking did nothing.
type ThrowRejected struct {
	Reason      string
	RemainingMs int64 // Cooldown left, when that is the reason
}

// DeathEvent is broadcast when a player or mob dies
type DeathEvent struct {
	VictimID uint   // NetworkId of victim
	KillerID uint   // NetworkId of killer (0 if environmental)
	Kind     string // Entity type of the victim
}
