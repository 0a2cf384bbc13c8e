package ecs

import "github.com/mossfell/bossrush/ecs/component"

// ProjectilePool is a reused set of projectile records shared by boss and
// player attacks, bounding per-frame allocation. Acquire hands out a reset
// record; release is implicit: records whose Live flag dropped are returned
// to the free list by Compact during the projectile system's tick.
type ProjectilePool struct {
	live []*component.Projectile
	free []*component.Projectile
}

// NewProjectilePool pre-allocates capacity records.
func NewProjectilePool(capacity int) *ProjectilePool {
	p := &ProjectilePool{}
	for i := 0; i < capacity; i++ {
		p.free = append(p.free, &component.Projectile{})
	}
	return p
}

// Acquire returns a zeroed live record, reusing a freed one when available.
func (p *ProjectilePool) Acquire() *component.Projectile {
	var rec *component.Projectile
	if n := len(p.free); n > 0 {
		rec = p.free[n-1]
		p.free = p.free[:n-1]
		*rec = component.Projectile{}
	} else {
		rec = &component.Projectile{}
	}
	rec.Live = true
	p.live = append(p.live, rec)
	return rec
}

// Live returns the live records. Callers iterating while acquiring new
// records must bound iteration by the length captured before the loop.
func (p *ProjectilePool) Live() []*component.Projectile {
	return p.live
}

// Compact moves records whose Live flag dropped back to the free list.
// Called once per tick; the retain-if-live filter guarantees no entry is
// skipped or visited twice.
func (p *ProjectilePool) Compact() {
	kept := p.live[:0]
	for _, rec := range p.live {
		if rec.Live {
			kept = append(kept, rec)
		} else {
			p.free = append(p.free, rec)
		}
	}
	p.live = kept
}

// LiveCount returns the number of live records.
func (p *ProjectilePool) LiveCount() int { return len(p.live) }

// FreeCount returns the number of pooled idle records.
func (p *ProjectilePool) FreeCount() int { return len(p.free) }
