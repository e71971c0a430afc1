package config

// ProjectileConfig contains host-side projectile physics values
type ProjectileConfig struct {
	// Launch defaults (used when a definition leaves the value out)
	DefaultSpeed      float64
	DefaultCooldownMs int64
	EyeHeight         float64 // Launch origin above the actor's feet

	// Per-carrier physics (blocks per tick)
	SnowballGravity float64
	ArrowGravity    float64
	FireballGravity float64
	Drag            float64

	// Collision
	HitboxSize        float64 // Edge length of the projectile's box
	ShooterGraceTicks int     // Ticks during which a projectile ignores its shooter
	MaxAgeTicks       int     // Projectiles older than this are discarded
}

// RenderConfig contains transform renderer configuration
type RenderConfig struct {
	NormalGravity     float64 // Host gravity the multiplier is relative to (blocks/tick², negative is down)
	LifetimeTicks     int     // Hard safety lifetime (10 seconds)
	SpinSpeed         float64 // Radians per tick for SPIN_RANDOM
	DegenerateEpsilon float64 // Squared velocity below which the last direction is reused
	ViewRange         float64
}

// BounceConfig contains bounce/ignite ability configuration
type BounceConfig struct {
	Damping        float64 // Speed kept after each bounce
	DefaultBounces int
	RespawnNudge   float64 // Distance the replacement spawns along its new velocity
	MinVelocitySq  float64 // Below this the projectile's facing is used instead
}

// GrappleConfig contains grapple session configuration
type GrappleConfig struct {
	DefaultPullStrength float64
	DefaultTimeoutTicks int
	MaxPullSpeed        float64
	MinVerticalPull     float64 // Floor for the vertical pull component
	AnchorOffsetY       float64 // Anchor sits this far below the hook so the lead lines up
}

// AbilityConfig contains defaults for the single-shot abilities
type AbilityConfig struct {
	IgniteFireTicks     int
	ExplodePower        float64
	FireballSpeed       float64 // 0 = keep the original projectile's speed
	PotionDurationTicks int
	PotionAmplifier     int
}

// ParticleConfig contains impact particle defaults
type ParticleConfig struct {
	Count           int
	Spread          float64
	Speed           float64
	DefaultMaterial string
}

// KnockbackConfig contains knockback fallbacks
type KnockbackConfig struct {
	DegenerateVelocitySq float64 // Below this the projectile→target vector is used
}

// SimConfig contains host world simulation values
type SimConfig struct {
	LivingGravity    float64
	LivingDrag       float64
	GroundFriction   float64
	FireDamage       float64 // Damage per FireDamageTicks while burning
	FireDamageTicks  int
	FireballDamage   float64
	FireballBurn     int // Fire ticks applied by an incendiary fireball
	PlayerHealth     float64
	PlayerWidth      float64
	PlayerHeight     float64
	MobHealth        float64
	CellSize         int // resolv broadphase cell size in blocks
	DefaultArenaW    int
	DefaultArenaD    int
	ItemDespawnTicks int
	VoidY            float64 // Entities below this are removed
	PoisonInterval   int     // Ticks between poison/wither damage
	MaxAmplifier     int     // Potion amplifiers are clamped to [0, MaxAmplifier]
}

// ServerConfig contains dedicated server defaults
type ServerConfig struct {
	Port            uint
	TickRate        int
	FeedbackTTL     int // Ticks a synced feedback entity stays alive
	StarterMaterial string
	StarterAmount   int
	CommandBuffer   int // Queued commands per tick, all clients
	ClientCommands  int // Queued commands per tick, one client
	MaxPlayers      int
	WalkSpeed       float64
	JumpVelocity    float64
	RespawnTicks    int
}

// Global configuration instances
var Projectile ProjectileConfig
var Render RenderConfig
var Bounce BounceConfig
var Grapple GrappleConfig
var Ability AbilityConfig
var Particles ParticleConfig
var Knockback KnockbackConfig
var Sim SimConfig
var Server ServerConfig

func init() {
	Projectile = ProjectileConfig{
		DefaultSpeed:      1.0,
		DefaultCooldownMs: 500,
		EyeHeight:         1.62,

		SnowballGravity: 0.03,
		ArrowGravity:    0.05,
		FireballGravity: 0,
		Drag:            0.99,

		HitboxSize:        0.25,
		ShooterGraceTicks: 3,
		MaxAgeTicks:       20 * 60,
	}

	Render = RenderConfig{
		NormalGravity:     -0.04,
		LifetimeTicks:     20 * 10,
		SpinSpeed:         0.3,
		DegenerateEpsilon: 1e-10,
		ViewRange:         64,
	}

	Bounce = BounceConfig{
		Damping:        0.8,
		DefaultBounces: 3,
		RespawnNudge:   0.1,
		MinVelocitySq:  1e-6,
	}

	Grapple = GrappleConfig{
		DefaultPullStrength: 0.6,
		DefaultTimeoutTicks: 100,
		MaxPullSpeed:        3.0,
		MinVerticalPull:     0.3,
		AnchorOffsetY:       -0.5,
	}

	Ability = AbilityConfig{
		IgniteFireTicks:     100,
		ExplodePower:        2.0,
		FireballSpeed:       0,
		PotionDurationTicks: 100,
		PotionAmplifier:     0,
	}

	Particles = ParticleConfig{
		Count:           15,
		Spread:          0.25,
		Speed:           0.1,
		DefaultMaterial: "stone",
	}

	Knockback = KnockbackConfig{
		DegenerateVelocitySq: 1e-6,
	}

	Sim = SimConfig{
		LivingGravity:    0.08,
		LivingDrag:       0.98,
		GroundFriction:   0.6,
		FireDamage:       1,
		FireDamageTicks:  20,
		FireballDamage:   5,
		FireballBurn:     100,
		PlayerHealth:     20,
		PlayerWidth:      0.6,
		PlayerHeight:     1.8,
		MobHealth:        20,
		CellSize:         2,
		DefaultArenaW:    256,
		DefaultArenaD:    256,
		ItemDespawnTicks: 20 * 60 * 5,
		VoidY:            -64,
		PoisonInterval:   25,
		MaxAmplifier:     255,
	}

	Server = ServerConfig{
		Port:            7373,
		TickRate:        20,
		FeedbackTTL:     2,
		StarterMaterial: "cobblestone",
		StarterAmount:   16,
		CommandBuffer:   256,
		ClientCommands:  8,
		MaxPlayers:      16,
		WalkSpeed:       0.2,
		JumpVelocity:    0.42,
		RespawnTicks:    60,
	}
}
