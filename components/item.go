package components

// ItemStack is one inventory slot's worth of a material.
type ItemStack struct {
	Material    string
	Amount      int
	DisplayName string
	Lore        []string
	Texture     string // Base64 skin texture for heads
	Charged     bool   // Crossbows: loaded with a projectile
}

// Empty reports whether the stack holds nothing.
func (s *ItemStack) Empty() bool {
	return s == nil || s.Material == "" || s.Material == "air" || s.Amount <= 0
}

// HasMeta reports whether the stack carries a name or lore.
func (s *ItemStack) HasMeta() bool {
	return s != nil && (s.DisplayName != "" || len(s.Lore) > 0)
}

// Clone returns a deep copy.
func (s *ItemStack) Clone() *ItemStack {
	if s == nil {
		return nil
	}
	c := *s
	c.Lore = append([]string(nil), s.Lore...)
	return &c
}
