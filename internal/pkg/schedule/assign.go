package schedule

import (
	"math/rand/v2"
)

// Unassigned marks a slot with no faculty member.
const Unassigned int64 = 0

// Slot is one (room, invigilator position) pair needing one faculty member.
type Slot struct {
	Room     string `json:"room"`
	Position int    `json:"position"`
}

// Assignment maps a faculty member to a room.
type Assignment struct {
	FacultyID int64  `json:"facultyId"`
	Room      string `json:"room"`
}

// BuildSlots lists perRoom slots for every room, room by room.
func BuildSlots(rooms []string, perRoom int) []Slot {
	if perRoom < 0 {
		perRoom = 0
	}
	slots := make([]Slot, 0, len(rooms)*perRoom)
	for _, room := range rooms {
		for p := 1; p <= perRoom; p++ {
			slots = append(slots, Slot{Room: room, Position: p})
		}
	}
	return slots
}

// Shuffler is a seedable Fisher-Yates shuffler. Equal seeds give equal
// permutations.
type Shuffler struct {
	rng *rand.Rand
}

// NewShuffler returns a shuffler driven by a PCG source seeded with seed.
func NewShuffler(seed uint64) *Shuffler {
	return &Shuffler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Shuffle returns a permuted copy of ids.
func (s *Shuffler) Shuffle(ids []int64) []int64 {
	out := append([]int64(nil), ids...)
	for i := len(out) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// AutoAssign shuffles the faculty pool and pops one member per slot until
// either runs out. Slots past the end of the pool stay Unassigned.
func AutoAssign(s *Shuffler, facultyIDs []int64, slots []Slot) []Assignment {
	pool := s.Shuffle(facultyIDs)
	out := make([]Assignment, len(slots))
	for i, slot := range slots {
		out[i] = Assignment{FacultyID: Unassigned, Room: slot.Room}
		if len(pool) == 0 {
			continue
		}
		out[i].FacultyID = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return out
}

// CountUnassigned returns how many assignments still carry the sentinel.
func CountUnassigned(assignments []Assignment) int {
	n := 0
	for _, a := range assignments {
		if a.FacultyID == Unassigned {
			n++
		}
	}
	return n
}
