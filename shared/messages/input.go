package messages

// PlayerInput is sent from client to server whenever the player's controls
// change. Yaw and pitch are absolute, in degrees.
type PlayerInput struct {
	Sequence uint32 // Incrementing ID; older inputs are dropped
	Yaw      float64
	Pitch    float64
	MoveX    float64 // World-space walk direction, clamped to unit length
	MoveZ    float64
	Jump     bool
	Use      bool // Right click: throw what is held
	HeldSlot int  // Hotbar slot, -1 = unchanged
}
