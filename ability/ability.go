// Package ability holds the behaviors a throwable can run when it lands.
package ability

import (
	"strings"

	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/definitions"
	"github.com/automoto/yeetables/feedback"
	"github.com/automoto/yeetables/sim"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Kind is the closed set of known abilities.
type Kind int

const (
	KindNone Kind = iota
	KindBounce
	KindIgnite
	KindExplode
	KindFireball
	KindPotion
	KindSwap
	KindGrapple
)

var kindNames = map[string]Kind{
	"bounce":   KindBounce,
	"ignite":   KindIgnite,
	"explode":  KindExplode,
	"fireball": KindFireball,
	"potion":   KindPotion,
	"swap":     KindSwap,
	"grapple":  KindGrapple,
}

// ParseKind maps an ability name to its kind. Empty and unknown names are
// KindNone.
func ParseKind(name string) Kind {
	return kindNames[strings.ToLower(strings.TrimSpace(name))]
}

func (k Kind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return "none"
}

// UsesBounces reports whether projectiles of this kind carry a bounce budget.
func (k Kind) UsesBounces() bool {
	return k == KindBounce || k == KindIgnite
}

// Host is what abilities need from the dispatcher that owns them.
type Host interface {
	World() *sim.World
	Settings() cfg.Settings
	Feedback() feedback.Sink
	SpawnBouncedProjectile(shooter *donburi.Entry, at, vel mgl64.Vec3, def *definitions.Definition, remaining int) *donburi.Entry
}

// Hit is one impact of a tagged projectile.
type Hit struct {
	Event *sim.HitEvent
	Def   *definitions.Definition

	// Remaining bounce budget carried by the projectile.
	Bounces int
}

// Dispatch runs the ability's hit behavior and reports whether the projectile
// is destroyed, which makes the caller apply the standard impact effects.
func Dispatch(k Kind, h Host, hit Hit) bool {
	switch k {
	case KindBounce:
		return bounce(h, hit, false)
	case KindIgnite:
		return bounce(h, hit, true)
	case KindExplode:
		return explode(h, hit)
	case KindFireball:
		return fireball(h, hit)
	case KindPotion:
		return potion(h, hit)
	case KindSwap:
		return swap(h, hit)
	case KindGrapple:
		// Hooks resolve through Grapples.OnHookHit.
		return true
	}
	return true
}

// direction is the projectile's travel direction at impact, falling back to
// where it faces when the velocity is too small to trust.
func direction(w *sim.World, ev *sim.HitEvent) mgl64.Vec3 {
	if ev.Velocity.LenSqr() >= cfg.Bounce.MinVelocitySq {
		return ev.Velocity
	}
	if dir, ok := w.Direction(ev.Projectile); ok {
		return dir
	}
	return mgl64.Vec3{0, 0, 1}
}
