package components

import (
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
)

// HotbarSize is the number of main-hand slots a player can select.
const HotbarSize = 9

type PlayerData struct {
	ID       uuid.UUID
	Name     string
	Creative bool // Creative/sandbox: nothing is consumed
	Hotbar   [HotbarSize]*ItemStack
	HeldSlot int
	OffHand  *ItemStack
}

// MainHand returns the stack in the selected hotbar slot (may be nil).
func (p *PlayerData) MainHand() *ItemStack {
	if p.HeldSlot < 0 || p.HeldSlot >= HotbarSize {
		return nil
	}
	return p.Hotbar[p.HeldSlot]
}

// SetMainHand replaces the selected hotbar slot; empty stacks clear it.
func (p *PlayerData) SetMainHand(s *ItemStack) {
	if p.HeldSlot < 0 || p.HeldSlot >= HotbarSize {
		return
	}
	if s.Empty() {
		s = nil
	}
	p.Hotbar[p.HeldSlot] = s
}

// SetOffHand replaces the off-hand slot; empty stacks clear it.
func (p *PlayerData) SetOffHand(s *ItemStack) {
	if s.Empty() {
		s = nil
	}
	p.OffHand = s
}

// Give puts the stack in the first empty hotbar slot. It reports false when
// the hotbar is full.
func (p *PlayerData) Give(s *ItemStack) bool {
	for i, slot := range p.Hotbar {
		if slot == nil {
			p.Hotbar[i] = s
			return true
		}
	}
	return false
}

var Player = donburi.NewComponentType[PlayerData]()
