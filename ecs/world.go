package ecs

import (
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/mossfell/bossrush/ecs/component"
)

// Presenter is the visual-feedback collaborator. Calls are fire-and-forget;
// core logic never depends on their outcome.
type Presenter interface {
	HitFeedback(e Entity)
	ColorMarker(e Entity, color string)
}

// AudioPlayer triggers a sound by id. Fire-and-forget.
type AudioPlayer interface {
	Play(id string, volume float64)
}

// MinionSpawner builds a minion entity of the given kind at a position.
// Returns false when the kind is unknown or the spawn was refused.
type MinionSpawner interface {
	SpawnMinion(w *World, kind string, level int, pos cp.Vector) (Entity, bool)
}

// World owns entities, component storage, the event queue, and the shared
// simulation resources (timeline, projectile pool, rng, arena bounds,
// external collaborators). All access is single-threaded.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue

	timeline    *Timeline
	projectiles *ProjectilePool
	rng         *rand.Rand
	arena       cp.BB

	presenter Presenter
	audio     AudioPlayer
	spawner   MinionSpawner
	ids       *IDAllocator
}

// NewWorld creates an empty world with a fresh timeline and a zero arena.
func NewWorld() *World {
	return &World{
		stores:   map[component.ComponentID]*SparseSet{},
		timeline: NewTimeline(),
	}
}

func (w *World) store(id component.ComponentID) *SparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) lookup(id component.ComponentID) *SparseSet {
	return w.stores[id]
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Timeline returns the simulated clock and deferred-action queue.
func (w *World) Timeline() *Timeline {
	if w == nil {
		return nil
	}
	return w.timeline
}

// SetProjectiles attaches the shared projectile pool.
func (w *World) SetProjectiles(p *ProjectilePool) { w.projectiles = p }

// Projectiles returns the shared projectile pool, if attached.
func (w *World) Projectiles() *ProjectilePool { return w.projectiles }

// SetRand attaches the seeded random source used by attack selection,
// relocation, and spawn scatter.
func (w *World) SetRand(r *rand.Rand) { w.rng = r }

// Rand returns the world random source, creating an unseeded one on demand.
func (w *World) Rand() *rand.Rand {
	if w.rng == nil {
		w.rng = rand.New(rand.NewPCG(0, 0))
	}
	return w.rng
}

// SetArena sets the playable horizontal bounds.
func (w *World) SetArena(bb cp.BB) { w.arena = bb }

// Arena returns the playable horizontal bounds.
func (w *World) Arena() cp.BB { return w.arena }

// SetPresenter attaches the visual-feedback collaborator.
func (w *World) SetPresenter(p Presenter) { w.presenter = p }

// Presenter returns the visual-feedback collaborator, possibly nil.
func (w *World) Presenter() Presenter { return w.presenter }

// SetAudio attaches the audio collaborator.
func (w *World) SetAudio(a AudioPlayer) { w.audio = a }

// PlaySound triggers a sound if an audio collaborator is attached.
func (w *World) PlaySound(id string, volume float64) {
	if w.audio != nil {
		w.audio.Play(id, volume)
	}
}

// SetSpawner attaches the minion spawner collaborator.
func (w *World) SetSpawner(s MinionSpawner) { w.spawner = s }

// Spawner returns the minion spawner collaborator, possibly nil.
func (w *World) Spawner() MinionSpawner { return w.spawner }

// SetIDs attaches the stable-ID allocator used for boss identities.
func (w *World) SetIDs(a *IDAllocator) { w.ids = a }

// IDs returns the stable-ID allocator, creating one starting at 1 on demand.
func (w *World) IDs() *IDAllocator {
	if w.ids == nil {
		w.ids = NewIDAllocator(1)
	}
	return w.ids
}
