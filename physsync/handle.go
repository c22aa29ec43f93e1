package physsync

import "strconv"

// Handle identifies a registered body. The low 32 bits are a slot id
// starting at 1; the high 32 bits are the slot's generation, so a handle to
// a removed body never aliases a later one.
type Handle uint64

type slotID uint32
type generation uint32

const slotIDBits = 32

func makeHandle(id slotID, gen generation) Handle {
	return Handle(uint64(gen)<<slotIDBits | uint64(id))
}

func (h Handle) id() slotID {
	return slotID(uint32(h))
}

func (h Handle) generation() generation {
	return generation(uint32(uint64(h) >> slotIDBits))
}

func (h Handle) String() string {
	return strconv.FormatUint(uint64(h.id()), 10) + "v" + strconv.FormatUint(uint64(h.generation()), 10)
}

func (h Handle) Valid() bool {
	return h.id() > 0
}

// handleStore tracks slot generations and free slots.
type handleStore struct {
	gen  []generation
	free []slotID
}

func (s *handleStore) create() Handle {
	var id slotID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		id = slotID(len(s.gen))
	}
	return makeHandle(id, s.gen[id-1])
}

func (s *handleStore) destroy(h Handle) bool {
	if !s.alive(h) {
		return false
	}
	s.gen[h.id()-1]++
	s.free = append(s.free, h.id())
	return true
}

func (s *handleStore) alive(h Handle) bool {
	id := h.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.gen[id-1] == h.generation()
}
