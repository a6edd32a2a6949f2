package timetable

import (
	"math/rand"
	"sync"

	"github.com/samber/lo"

	appErrors "github.com/classsync/classsync-api/pkg/errors"
)

// CourseSpec is one course to place: its weekly hour load and the teacher
// who delivers it.
type CourseSpec struct {
	Name    string
	Hours   int
	Faculty string
}

// GenerateInput is everything the generator needs for one section's week.
// Existing carries the committed entries of other sections so the run never
// double-books a teacher or room that is already claimed.
type GenerateInput struct {
	Section           string
	Courses           []CourseSpec
	Rooms             []string
	IncludeLunchBreak bool
	Existing          []Entry
}

// Placement is one filled cell of the weekly grid.
type Placement struct {
	Course  string
	Teacher string
	Room    string
}

// GenerateResult is the weekly grid keyed day then time slot, plus the
// courses that could not be fully placed. UnplacedCount is the raw number of
// dropped hours; Unplaced lists each short-changed course once.
type GenerateResult struct {
	Grid          map[string]map[string]Placement
	Unplaced      []string
	UnplacedCount int
}

// Generator builds a section timetable with a randomized greedy pass. The
// random source is injected so callers can seed it for reproducible output.
// Each Build derives its own source from it, so one Generator serves
// concurrent requests.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

func (g *Generator) newRun() *rand.Rand {
	g.mu.Lock()
	seed := g.rng.Int63()
	g.mu.Unlock()
	return rand.New(rand.NewSource(seed))
}

type slotRef struct {
	day  string
	slot string
}

// Build places every requested course hour into a free (day, slot, room)
// cell, honoring teacher, room and section exclusivity. Hours that find no
// feasible cell are reported, never silently dropped: placed + UnplacedCount
// always equals the total requested hours.
func (g *Generator) Build(in GenerateInput) (*GenerateResult, error) {
	if len(in.Courses) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one course is required")
	}
	if len(in.Rooms) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one room is required")
	}

	days := Days()
	slots := TimeSlots(in.IncludeLunchBreak)

	cells := make([]slotRef, 0, len(days)*len(slots))
	for _, d := range days {
		for _, s := range slots {
			cells = append(cells, slotRef{day: d, slot: s})
		}
	}

	rng := g.newRun()

	// One unit per requested hour. Shuffling the units keeps any single
	// course from monopolising the best slots on every run.
	units := make([]CourseSpec, 0)
	for _, c := range in.Courses {
		for i := 0; i < c.Hours; i++ {
			units = append(units, c)
		}
	}
	rng.Shuffle(len(units), func(i, j int) { units[i], units[j] = units[j], units[i] })

	idx := NewIndexFromEntries(in.Existing)
	grid := make(map[string]map[string]Placement, len(days))
	for _, d := range days {
		grid[d] = make(map[string]Placement, len(slots))
	}

	var unplaced []string
	unplacedCount := 0

	for _, unit := range units {
		order := rng.Perm(len(cells))
		rooms := append([]string(nil), in.Rooms...)
		rng.Shuffle(len(rooms), func(i, j int) { rooms[i], rooms[j] = rooms[j], rooms[i] })

		placed := false
		for _, ci := range order {
			cell := cells[ci]
			if idx.SectionBusy(cell.day, cell.slot, in.Section) {
				continue
			}
			if idx.TeacherBusy(cell.day, cell.slot, unit.Faculty) {
				continue
			}
			for _, room := range rooms {
				if idx.RoomBusy(cell.day, cell.slot, room) {
					continue
				}
				e := Entry{
					Section:  in.Section,
					Day:      cell.day,
					TimeSlot: cell.slot,
					Course:   unit.Name,
					Teacher:  unit.Faculty,
					Room:     room,
				}
				idx.Reserve(e)
				grid[cell.day][cell.slot] = Placement{Course: unit.Name, Teacher: unit.Faculty, Room: room}
				placed = true
				break
			}
			if placed {
				break
			}
		}
		if !placed {
			unplaced = append(unplaced, unit.Name)
			unplacedCount++
		}
	}

	return &GenerateResult{
		Grid:          grid,
		Unplaced:      lo.Uniq(unplaced),
		UnplacedCount: unplacedCount,
	}, nil
}
