package projectile

import (
	"time"

	"github.com/google/uuid"
)

// Cooldowns records when each player last launched each definition.
type Cooldowns struct {
	now  func() time.Time
	last map[uuid.UUID]map[string]time.Time
}

func NewCooldowns(now func() time.Time) *Cooldowns {
	if now == nil {
		now = time.Now
	}
	return &Cooldowns{
		now:  now,
		last: map[uuid.UUID]map[string]time.Time{},
	}
}

// Remaining returns how long the player must still wait before launching the
// definition again. Zero means ready.
func (c *Cooldowns) Remaining(player uuid.UUID, defID string, cooldown time.Duration) time.Duration {
	last, ok := c.last[player][defID]
	if !ok {
		return 0
	}
	if left := cooldown - c.now().Sub(last); left > 0 {
		return left
	}
	return 0
}

// Active reports whether the player launched the definition less than
// cooldown ago.
func (c *Cooldowns) Active(player uuid.UUID, defID string, cooldown time.Duration) bool {
	return c.Remaining(player, defID, cooldown) > 0
}

// Set records a launch now.
func (c *Cooldowns) Set(player uuid.UUID, defID string) {
	m, ok := c.last[player]
	if !ok {
		m = map[string]time.Time{}
		c.last[player] = m
	}
	m[defID] = c.now()
}

// Forget drops everything recorded for the player.
func (c *Cooldowns) Forget(player uuid.UUID) {
	delete(c.last, player)
}

// Clear drops every record.
func (c *Cooldowns) Clear() {
	clear(c.last)
}
