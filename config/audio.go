package config

// Sound keys understood by clients. Definitions may name any other key; these
// are the ones the server itself falls back to.
const (
	SoundSnowballThrow = "entity.snowball.throw"
	SoundArrowShoot    = "entity.arrow.shoot"
	SoundLeashBreak    = "entity.leash_knot.break"
	SoundExplode       = "entity.generic.explode"
	SoundFireballShoot = "entity.blaze.shoot"
	SoundTeleport      = "entity.enderman.teleport"
)

// AudioConfig contains default playback values
type AudioConfig struct {
	DefaultVolume float64
	DefaultPitch  float64
}

var Audio AudioConfig

func init() {
	Audio = AudioConfig{
		DefaultVolume: 1.0,
		DefaultPitch:  1.0,
	}
}
