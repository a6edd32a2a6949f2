package timetable

// Entry is one scheduled class period. Names are the working identity here;
// the repository layer owns the mapping to database ids.
type Entry struct {
	ID       string
	Section  string
	Day      string
	TimeSlot string
	Course   string
	Teacher  string
	Room     string
}

// Index answers "is this resource busy at day/slot" in O(1). It is the single
// source of truth for double-booking checks in both the generator and the
// adjustment engine.
type Index struct {
	teachers map[string]struct{}
	rooms    map[string]struct{}
	sections map[string]struct{}
}

func NewIndex() *Index {
	return &Index{
		teachers: make(map[string]struct{}),
		rooms:    make(map[string]struct{}),
		sections: make(map[string]struct{}),
	}
}

// NewIndexFromEntries builds an index preloaded with every entry's
// reservations.
func NewIndexFromEntries(entries []Entry) *Index {
	idx := NewIndex()
	for _, e := range entries {
		idx.Reserve(e)
	}
	return idx
}

func key(day, slot, name string) string {
	return day + "|" + slot + "|" + name
}

func (ix *Index) TeacherBusy(day, slot, teacher string) bool {
	_, ok := ix.teachers[key(day, slot, teacher)]
	return ok
}

func (ix *Index) RoomBusy(day, slot, room string) bool {
	_, ok := ix.rooms[key(day, slot, room)]
	return ok
}

func (ix *Index) SectionBusy(day, slot, section string) bool {
	_, ok := ix.sections[key(day, slot, section)]
	return ok
}

// Reserve marks the entry's teacher, room and section as busy at its slot.
func (ix *Index) Reserve(e Entry) {
	ix.teachers[key(e.Day, e.TimeSlot, e.Teacher)] = struct{}{}
	ix.rooms[key(e.Day, e.TimeSlot, e.Room)] = struct{}{}
	ix.sections[key(e.Day, e.TimeSlot, e.Section)] = struct{}{}
}

// Release frees the entry's reservations, used when the adjustment engine
// tries out moves for a class that is being taken off its original slot.
func (ix *Index) Release(e Entry) {
	delete(ix.teachers, key(e.Day, e.TimeSlot, e.Teacher))
	delete(ix.rooms, key(e.Day, e.TimeSlot, e.Room))
	delete(ix.sections, key(e.Day, e.TimeSlot, e.Section))
}
