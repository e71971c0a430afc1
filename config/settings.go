package config

// EntityExemption is one swap-exempt-entities rule. An empty EntityType is a
// wildcard.
type EntityExemption struct {
	EntityType     string
	IfHasAnyTag    bool
	RequiredTags   []string
	RequireAllTags bool
}

// Exempt reports whether an entity of the given type carrying the given
// scoreboard tags matches this rule.
func (e EntityExemption) Exempt(entityType string, tags map[string]struct{}) bool {
	if e.EntityType != "" && e.EntityType != entityType {
		return false
	}

	if e.IfHasAnyTag {
		return len(tags) > 0
	}

	// Wildcard with no conditions matches nothing
	if len(e.RequiredTags) == 0 {
		return e.EntityType != ""
	}

	if e.RequireAllTags {
		for _, t := range e.RequiredTags {
			if _, ok := tags[t]; !ok {
				return false
			}
		}
		return true
	}
	for _, t := range e.RequiredTags {
		if _, ok := tags[t]; ok {
			return true
		}
	}
	return false
}

// Settings holds the global values read from config.yml on every reload.
type Settings struct {
	HideDisplayProjectiles bool
	SwapExemptions         []EntityExemption
}

// DefaultSettings returns the values used when config.yml leaves a key out.
func DefaultSettings() Settings {
	return Settings{
		HideDisplayProjectiles: true,
	}
}

// IsSwapExempt reports whether any exemption rule matches.
func (s Settings) IsSwapExempt(entityType string, tags map[string]struct{}) bool {
	for _, ex := range s.SwapExemptions {
		if ex.Exempt(entityType, tags) {
			return true
		}
	}
	return false
}
