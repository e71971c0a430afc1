package definitions

import "strings"

// Options is the free-form ability-config section. Getters fall back to def
// when the key is missing or has the wrong type.
type Options map[string]any

func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

func (o Options) Float(key string, def float64) float64 {
	switch v := o[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	}
	return def
}

func (o Options) Int(key string, def int) int {
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}

func (o Options) String(key, def string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return def
}

// ParseRotationMode accepts any case and "-" or "_" separators. Unknown
// values return PointForward and false.
func ParseRotationMode(s string) (RotationMode, bool) {
	switch strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_") {
	case "POINT_FORWARD":
		return PointForward, true
	case "SPIN_RANDOM":
		return SpinRandom, true
	case "NONE":
		return RotationNone, true
	}
	return PointForward, false
}

// ParseConsumption accepts any case. Unknown values return ConsumeMainHand
// and false.
func ParseConsumption(s string) (Consumption, bool) {
	switch strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_") {
	case "MAIN_HAND":
		return ConsumeMainHand, true
	case "OFFHAND", "OFF_HAND":
		return ConsumeOffHand, true
	case "NONE":
		return ConsumeNone, true
	}
	return ConsumeMainHand, false
}

// normalizeMaterial lowercases material names so "SNOWBALL" and "snowball"
// refer to the same thing.
func normalizeMaterial(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimPrefix(s, "minecraft:")
}
