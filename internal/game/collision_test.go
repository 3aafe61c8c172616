package game

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
)

func countEvents(events []models.CombatEvent, typ models.CombatEventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

// 同一帧内多个骷髅都在命中范围时，只有最先加入的骷髅受伤
func TestResolver_BoltHitsFirstHostileOnly(t *testing.T) {
	w, clock := newTestWorld(t)
	first := w.SpawnSkeleton(mgl64.Vec3{1, 1, 0})
	second := w.SpawnSkeleton(mgl64.Vec3{1, 1, 0.5})

	w.CastAbility(models.AbilityBolt, mgl64.Vec3{5, 0, 0})
	step(t, w, clock, tick)

	if first.Health != 50 {
		t.Errorf("first.Health = %v, want 50", first.Health)
	}
	if second.Health != 100 {
		t.Errorf("second.Health = %v, want 100", second.Health)
	}
	if len(w.Projectiles()) != 0 {
		t.Errorf("len(Projectiles()) = %d, want 0", len(w.Projectiles()))
	}
	explosions := w.Explosions()
	if len(explosions) != 1 || explosions[0].StartedAt != clock.Now() {
		t.Errorf("Explosions() = %+v, want one started at %v", explosions, clock.Now())
	}

	// 下一帧不会再次命中
	step(t, w, clock, tick)
	if first.Health != 50 || second.Health != 100 {
		t.Errorf("health after next tick = %v/%v, want 50/100", first.Health, second.Health)
	}
}

func TestResolver_SkipsDeadHostile(t *testing.T) {
	w, clock := newTestWorld(t)
	dead := w.SpawnSkeleton(mgl64.Vec3{1, 1, 0})
	dead.TakeDamage(100, 0)
	alive := w.SpawnSkeleton(mgl64.Vec3{1, 1, 0.5})

	w.CastAbility(models.AbilityBolt, mgl64.Vec3{5, 0, 0})
	step(t, w, clock, tick)

	if alive.Health != 50 {
		t.Errorf("alive.Health = %v, want 50", alive.Health)
	}
}

func TestResolver_EachProjectileHitsOnce(t *testing.T) {
	w, clock := newTestWorld(t)
	s := w.SpawnSkeleton(mgl64.Vec3{1, 1, 0})

	w.CastAbility(models.AbilityBolt, mgl64.Vec3{5, 0, 0})
	w.CastAbility(models.AbilityPulse, mgl64.Vec3{5, 0, 0})
	step(t, w, clock, tick)

	if s.Health != 20 {
		t.Errorf("Health = %v, want 20 after bolt and pulse", s.Health)
	}
	events := w.DrainEvents()
	if got := countEvents(events, models.EventHit); got != 2 {
		t.Errorf("hit events = %d, want 2", got)
	}
	if got := countEvents(events, models.EventFreeze); got != 1 {
		t.Errorf("freeze events = %d, want 1", got)
	}
}

func TestResolver_PulseDamagesAndFreezes(t *testing.T) {
	w, clock := newTestWorld(t)
	s := w.SpawnSkeleton(mgl64.Vec3{3, 1, 0})

	if _, outcome := w.CastAbility(models.AbilityPulse, mgl64.Vec3{10, 0, 0}); outcome != CastOK {
		t.Fatalf("cast outcome = %v, want ok", outcome)
	}
	step(t, w, clock, tick)
	if s.Health != 100 {
		t.Fatalf("hit too early: health = %v", s.Health)
	}

	// 100ms 后弧顶前沿越过骷髅包围盒
	step(t, w, clock, 100*time.Millisecond)
	if s.Health != 70 {
		t.Errorf("Health = %v, want 70", s.Health)
	}
	if !s.IsFrozen() || s.Frozen.Until != clock.Now()+time.Second {
		t.Errorf("Frozen = %+v, want active until %v", s.Frozen, clock.Now()+time.Second)
	}
	if len(w.Projectiles()) != 0 || len(w.Explosions()) != 0 {
		t.Errorf("pulse should be removed without an explosion")
	}

	step(t, w, clock, time.Second)
	if s.IsFrozen() {
		t.Error("still frozen after freeze duration")
	}
}

func TestResolver_LethalPulseDoesNotFreeze(t *testing.T) {
	w, clock := newTestWorld(t)
	s := w.SpawnSkeleton(mgl64.Vec3{1, 1, 0})
	s.TakeDamage(80, 0)

	w.CastAbility(models.AbilityPulse, mgl64.Vec3{10, 0, 0})
	step(t, w, clock, tick)

	if s.State != models.SkeletonDead || s.IsFrozen() {
		t.Errorf("State = %v frozen = %v, want dead and not frozen", s.State, s.IsFrozen())
	}
	events := w.DrainEvents()
	if got := countEvents(events, models.EventKill); got != 1 {
		t.Errorf("kill events = %d, want 1", got)
	}
	if got := countEvents(events, models.EventFreeze); got != 0 {
		t.Errorf("freeze events = %d, want 0", got)
	}
}

func TestResolver_KillClearsFreeze(t *testing.T) {
	w, clock := newTestWorld(t)
	s := w.SpawnSkeleton(mgl64.Vec3{1, 1, 0})
	s.Health = 40
	if !s.Freeze(time.Second, clock.Now()) {
		t.Fatal("Freeze() = false, want true")
	}

	w.CastAbility(models.AbilityBolt, mgl64.Vec3{5, 0, 0})
	step(t, w, clock, tick)

	if s.State != models.SkeletonDead {
		t.Fatalf("State = %v, want dead", s.State)
	}
	if s.IsFrozen() {
		t.Error("dead skeleton is still frozen")
	}
	snap := w.Snapshot()
	if len(snap.Skeletons) != 1 || snap.Skeletons[0].Frozen {
		t.Errorf("snapshot skeletons = %+v, want one unfrozen", snap.Skeletons)
	}
}

func TestResolver_InvalidDamageAborts(t *testing.T) {
	w, clock := newTestWorld(t)
	w.SpawnSkeleton(mgl64.Vec3{1, 1, 0})

	p, _ := w.CastAbility(models.AbilityBolt, mgl64.Vec3{5, 0, 0})
	p.Spec.Damage = -10

	clock.Advance(tick)
	if err := w.Update(tick); !errors.Is(err, ErrInvalidDamage) {
		t.Errorf("Update() error = %v, want ErrInvalidDamage", err)
	}
}
