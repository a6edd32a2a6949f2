package timetable

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

const (
	SolutionSubstitute = "SUBSTITUTE"
	SolutionReschedule = "RESCHEDULE"
)

// Solution is one way to repair a class that lost its teacher. A substitute
// hands the period to another qualified teacher in place; a reschedule moves
// the class, original teacher and all, to a free cell.
type Solution struct {
	Type        string
	Details     string
	NewTeacher  string
	NewDay      string
	NewTimeSlot string
	NewRoom     string
}

// Conflict is one affected class period together with its candidate repairs.
// An empty Solutions slice means the engine found no way out and the class
// has to be cancelled or handled manually.
type Conflict struct {
	EntryID       string
	OriginalClass string
	Solutions     []Solution
}

// Adjuster finds repairs for an absent teacher's classes against the full
// published schedule. rescheduleLimit caps how many move options are offered
// per conflict so the response stays reviewable. Each Remediate derives its
// own random source, so one Adjuster serves concurrent requests.
type Adjuster struct {
	mu              sync.Mutex
	rng             *rand.Rand
	rescheduleLimit int
}

func NewAdjuster(rng *rand.Rand, rescheduleLimit int) *Adjuster {
	return &Adjuster{rng: rng, rescheduleLimit: rescheduleLimit}
}

func (a *Adjuster) newRun() *rand.Rand {
	a.mu.Lock()
	seed := a.rng.Int63()
	a.mu.Unlock()
	return rand.New(rand.NewSource(seed))
}

// Remediate walks every published entry taught by the absent teacher and
// collects substitute and reschedule options for each. entries must be the
// complete published schedule across all sections, qualified maps a course
// name to the teachers able to cover it.
func (a *Adjuster) Remediate(absentTeacher string, entries []Entry, qualified map[string][]string, rooms []string) []Conflict {
	idx := NewIndexFromEntries(entries)
	rng := a.newRun()

	var conflicts []Conflict
	for _, e := range entries {
		if e.Teacher != absentTeacher {
			continue
		}
		c := Conflict{
			EntryID: e.ID,
			OriginalClass: fmt.Sprintf("%s for %s on %s at %s in %s",
				e.Course, e.Section, e.Day, e.TimeSlot, e.Room),
		}
		c.Solutions = append(c.Solutions, a.substitutes(e, idx, qualified)...)
		c.Solutions = append(c.Solutions, a.reschedules(rng, e, idx, rooms)...)
		conflicts = append(conflicts, c)
	}
	return conflicts
}

func (a *Adjuster) substitutes(e Entry, idx *Index, qualified map[string][]string) []Solution {
	candidates := append([]string(nil), qualified[e.Course]...)
	sort.Strings(candidates)

	var out []Solution
	for _, t := range candidates {
		if t == e.Teacher {
			continue
		}
		if idx.TeacherBusy(e.Day, e.TimeSlot, t) {
			continue
		}
		out = append(out, Solution{
			Type:       SolutionSubstitute,
			Details:    "Assign " + t,
			NewTeacher: t,
		})
	}
	return out
}

// reschedules scans every free (day, slot) pair of the full week for the
// class with its original teacher, attaching one free room to each accepted
// pair. The entry's own reservations are lifted during the scan so the
// vacated slot counts as free for other resources.
func (a *Adjuster) reschedules(rng *rand.Rand, e Entry, idx *Index, rooms []string) []Solution {
	idx.Release(e)
	defer idx.Reserve(e)

	roomOrder := append([]string(nil), rooms...)
	rng.Shuffle(len(roomOrder), func(i, j int) { roomOrder[i], roomOrder[j] = roomOrder[j], roomOrder[i] })

	type move struct {
		day, slot, room string
	}
	var candidates []move
	for _, d := range Days() {
		for _, s := range AllTimeSlots() {
			if d == e.Day && s == e.TimeSlot {
				continue
			}
			if idx.SectionBusy(d, s, e.Section) {
				continue
			}
			if idx.TeacherBusy(d, s, e.Teacher) {
				continue
			}
			for _, r := range roomOrder {
				if idx.RoomBusy(d, s, r) {
					continue
				}
				candidates = append(candidates, move{day: d, slot: s, room: r})
				break
			}
		}
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > a.rescheduleLimit {
		candidates = candidates[:a.rescheduleLimit]
	}

	var out []Solution
	for _, m := range candidates {
		out = append(out, Solution{
			Type:        SolutionReschedule,
			Details:     fmt.Sprintf("Move to %s, %s in %s", m.day, m.slot, m.room),
			NewDay:      m.day,
			NewTimeSlot: m.slot,
			NewRoom:     m.room,
		})
	}
	return out
}
