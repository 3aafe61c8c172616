package game

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"pgregory.net/rapid"
)

func TestPlayer_MoveAndArrive(t *testing.T) {
	sim, _ := newTestSim(testTuning())
	p := NewPlayer(sim)

	if !p.IssueMove(mgl64.Vec3{3, 7, 4}) {
		t.Fatal("IssueMove() = false, want true")
	}
	dest, ok := p.Destination()
	if !ok || dest != (mgl64.Vec3{3, 0.5, 4}) {
		t.Fatalf("Destination() = %v %v, want [3 0.5 4] true", dest, ok)
	}

	// 5 单位距离，速度 5，半秒走一半
	p.Update(sim, 500*time.Millisecond)
	if !p.Position.ApproxEqual(mgl64.Vec3{1.5, 0.5, 2}) {
		t.Errorf("Position after 0.5s = %v, want [1.5 0.5 2]", p.Position)
	}

	// 步长不超过剩余距离
	p.Update(sim, 2*time.Second)
	if !p.Position.ApproxEqual(mgl64.Vec3{3, 0.5, 4}) {
		t.Errorf("Position after arrival = %v, want [3 0.5 4]", p.Position)
	}
	if _, ok := p.Destination(); ok {
		t.Error("destination should be cleared after arrival")
	}
}

func TestPlayer_WithinEpsilonClears(t *testing.T) {
	sim, _ := newTestSim(testTuning())
	p := NewPlayer(sim)
	p.IssueMove(mgl64.Vec3{0.05, 0, 0})

	p.Update(sim, tick)
	if p.Position != (mgl64.Vec3{0, 0.5, 0}) {
		t.Errorf("Position = %v, want unchanged inside arrival epsilon", p.Position)
	}
	if _, ok := p.Destination(); ok {
		t.Error("destination should be cleared inside arrival epsilon")
	}
}

func TestPlayer_IssueMoveRejectsNonFinite(t *testing.T) {
	sim, _ := newTestSim(testTuning())
	p := NewPlayer(sim)

	if p.IssueMove(mgl64.Vec3{math.NaN(), 0, 0}) {
		t.Error("IssueMove(NaN) = true, want false")
	}
	if _, ok := p.Destination(); ok {
		t.Error("destination set from non-finite target")
	}
}

// 同样的总时长，无论如何切分帧，位移都相同
func TestPlayer_FrameRateIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		steps := rapid.SliceOfN(rapid.IntRange(1, 50), 1, 80).Draw(t, "steps")

		sim, _ := newTestSim(testTuning())
		p := NewPlayer(sim)
		p.IssueMove(mgl64.Vec3{100, 0, 0})

		var total time.Duration
		for _, ms := range steps {
			dt := time.Duration(ms) * time.Millisecond
			total += dt
			p.Update(sim, dt)
		}

		want := 5 * total.Seconds()
		if math.Abs(p.Position.X()-want) > 1e-9 {
			t.Fatalf("Position.X = %v, want %v after %v", p.Position.X(), want, total)
		}
		if p.Position.Y() != 0.5 {
			t.Fatalf("Position.Y = %v, want 0.5", p.Position.Y())
		}
	})
}

func TestProjectile_FrameRateIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		steps := rapid.SliceOfN(rapid.IntRange(1, 40), 1, 30).Draw(t, "steps")

		sim, clock := newTestSim(testTuning())
		spec := NewProjectileSpec("bolt", sim.Tuning.Bolt)
		p := NewProjectile(spec, mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, 0, -1}, 0)

		var total time.Duration
		for _, ms := range steps {
			dt := time.Duration(ms) * time.Millisecond
			total += dt
			clock.Advance(dt)
			if !p.Update(sim, dt) {
				t.Fatalf("projectile stopped at %v", total)
			}
		}

		want := -spec.Speed * total.Seconds()
		if math.Abs(p.Position.Z()-want) > 1e-9 || p.Position.X() != 0 {
			t.Fatalf("Position = %v, want z=%v after %v", p.Position, want, total)
		}
	})
}
