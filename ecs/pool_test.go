package ecs

import (
	"testing"

	"github.com/mossfell/bossrush/ecs/component"
)

func TestProjectilePoolReuse(t *testing.T) {
	pool := NewProjectilePool(4)

	a := pool.Acquire()
	b := pool.Acquire()
	a.Damage = 10
	b.Damage = 20
	if pool.LiveCount() != 2 {
		t.Fatalf("expected 2 live, got %d", pool.LiveCount())
	}

	a.Live = false
	pool.Compact()
	if pool.LiveCount() != 1 {
		t.Fatalf("expected 1 live after compact, got %d", pool.LiveCount())
	}

	c := pool.Acquire()
	if c.Damage != 0 || c.Lob != nil || !c.Live {
		t.Fatalf("recycled projectile not reset: %+v", c)
	}
}

func TestProjectilePoolCompactKeepsLive(t *testing.T) {
	pool := NewProjectilePool(0)
	var kept *component.Projectile
	for i := 0; i < 5; i++ {
		p := pool.Acquire()
		if i == 2 {
			p.Damage = 42
			kept = p
		} else {
			p.Live = false
		}
	}
	pool.Compact()

	live := pool.Live()
	if len(live) != 1 || live[0] != kept || live[0].Damage != 42 {
		t.Fatalf("compact lost the live projectile")
	}
	if pool.FreeCount() != 4 {
		t.Fatalf("expected 4 free, got %d", pool.FreeCount())
	}
}
