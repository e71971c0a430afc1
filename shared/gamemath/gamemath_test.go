package gamemath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vecNear(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-9)
}

func TestReflect(t *testing.T) {
	v := mgl64.Vec3{1, 2, 3}
	tests := []struct {
		face BlockFace
		want mgl64.Vec3
	}{
		{North, mgl64.Vec3{1, 2, -3}},
		{South, mgl64.Vec3{1, 2, -3}},
		{East, mgl64.Vec3{-1, 2, 3}},
		{West, mgl64.Vec3{-1, 2, 3}},
		{Up, mgl64.Vec3{1, -2, 3}},
		{Down, mgl64.Vec3{1, -2, 3}},
		{NorthEast, mgl64.Vec3{-1, -2, -3}},
		{FaceSelf, mgl64.Vec3{-1, -2, -3}},
	}
	for _, tt := range tests {
		t.Run(tt.face.String(), func(t *testing.T) {
			if got := Reflect(v, tt.face); !vecNear(got, tt.want) {
				t.Fatalf("Reflect(%v, %s) = %v, want %v", v, tt.face, got, tt.want)
			}
		})
	}
}

func TestPerturbDirection(t *testing.T) {
	dir := mgl64.Vec3{0, 0, 1}

	calls := 0
	rnd := func() float64 { calls++; return 0.9 }
	if got := PerturbDirection(dir, 0, rnd); got != dir {
		t.Fatalf("zero offset changed direction: %v", got)
	}
	if calls != 0 {
		t.Fatalf("zero offset drew %d random values", calls)
	}

	got := PerturbDirection(dir, 0.5, rnd)
	if math.Abs(got.Len()-1) > 1e-9 {
		t.Fatalf("perturbed direction not normalized: len=%v", got.Len())
	}
	want := mgl64.Vec3{0.2, 0.2, 1.2}.Normalize()
	if !vecNear(got, want) {
		t.Fatalf("PerturbDirection = %v, want %v", got, want)
	}
}

func TestYawPitch(t *testing.T) {
	tests := []struct {
		dir        mgl64.Vec3
		yaw, pitch float64
	}{
		{mgl64.Vec3{0, 0, 1}, 0, 0},
		{mgl64.Vec3{-1, 0, 0}, 90, 0},
		{mgl64.Vec3{0, 0, -1}, 180, 0},
		{mgl64.Vec3{0, -1, 0}, 0, 90},
		{mgl64.Vec3{0, 1, 0}, 0, -90},
	}
	for _, tt := range tests {
		yaw, pitch := YawPitch(tt.dir)
		if math.Abs(math.Abs(yaw)-math.Abs(tt.yaw)) > 1e-9 || math.Abs(pitch-tt.pitch) > 1e-9 {
			t.Fatalf("YawPitch(%v) = (%v, %v), want (%v, %v)", tt.dir, yaw, pitch, tt.yaw, tt.pitch)
		}
	}
}

func TestPullVelocity(t *testing.T) {
	// 16 blocks straight ahead: 0.5*sqrt(16) = 2
	v := PullVelocity(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 16}, 0.5, 3, 0.3)
	if !vecNear(v, mgl64.Vec3{0, 0.3, 2}) {
		t.Fatalf("PullVelocity = %v", v)
	}

	// Far target is capped
	v = PullVelocity(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 100, 0}, 1, 3, 0.3)
	if !vecNear(v, mgl64.Vec3{0, 3, 0}) {
		t.Fatalf("PullVelocity far = %v", v)
	}

	// Downward pull keeps the vertical floor
	v = PullVelocity(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{0, 6, 0}, 0.5, 3, 0.3)
	if v.Y() != 0.3 {
		t.Fatalf("vertical floor not applied: %v", v)
	}
}

func TestKnockbackVerticalIsFloor(t *testing.T) {
	tests := []struct {
		name     string
		vel      mgl64.Vec3
		vertical float64
		wantY    float64
	}{
		{"floor raises flat shot", mgl64.Vec3{1, 0, 0}, 0.4, 0.4},
		{"steep shot keeps its own vertical", mgl64.Vec3{0, 1, 0}, 0.4, 2},
		{"downward shot floored", mgl64.Vec3{0, -1, 0}, 0.1, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := Knockback(tt.vel, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 2, tt.vertical, 1e-6)
			if math.Abs(kb.Y()-tt.wantY) > 1e-9 {
				t.Fatalf("kb.Y = %v, want %v", kb.Y(), tt.wantY)
			}
		})
	}
}

func TestKnockbackDegenerateVelocity(t *testing.T) {
	kb := Knockback(mgl64.Vec3{}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 2}, 1, 0, 1e-6)
	if !vecNear(kb, mgl64.Vec3{0, 0, 1}) {
		t.Fatalf("fallback knockback = %v", kb)
	}
}

func TestMatrixFromRowMajor(t *testing.T) {
	m := MatrixFromRowMajor([16]float64{
		1, 0, 0, 5,
		0, 1, 0, 6,
		0, 0, 1, 7,
		0, 0, 0, 1,
	})
	p := m.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	if !p.ApproxEqual(mgl64.Vec4{5, 6, 7, 1}) {
		t.Fatalf("translation lost: %v", p)
	}
}
