package ecs

// entityStore allocates entity handles, recycling destroyed slots with a
// bumped generation.
type entityStore struct {
	nextID entityID
	gen    []generation
	free   []entityID
}

func (s *entityStore) create() Entity {
	var id entityID
	if len(s.free) > 0 {
		id = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		s.nextID++
		id = s.nextID
		if int(id) >= len(s.gen)+1 {
			s.gen = append(s.gen, 0)
		}
	}
	return makeEntity(id, s.gen[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	if s.gen[id-1] != e.generation() {
		return false
	}
	s.gen[id-1]++
	s.free = append(s.free, id)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.gen[id-1] == e.generation()
}

func (s *entityStore) alive() []Entity {
	out := make([]Entity, 0, len(s.gen))
	for i, g := range s.gen {
		e := makeEntity(entityID(i+1), g)
		if s.isAlive(e) && !s.isFree(entityID(i+1)) {
			out = append(out, e)
		}
	}
	return out
}

func (s *entityStore) isFree(id entityID) bool {
	for _, f := range s.free {
		if f == id {
			return true
		}
	}
	return false
}
