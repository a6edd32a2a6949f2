package timetable

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdjuster() *Adjuster {
	return NewAdjuster(rand.New(rand.NewSource(7)), 3)
}

func TestAdjusterIdleTeacherHasNoConflicts(t *testing.T) {
	entries := []Entry{
		{ID: "e1", Section: "CS-A", Day: "Monday", TimeSlot: "9:00 AM", Course: "Maths", Teacher: "Rao", Room: "R1"},
	}
	conflicts := newTestAdjuster().Remediate("Iyer", entries, nil, []string{"R1"})
	assert.Empty(t, conflicts)
}

func TestAdjusterOffersFreeSubstitutes(t *testing.T) {
	entries := []Entry{
		{ID: "e1", Section: "CS-A", Day: "Monday", TimeSlot: "9:00 AM", Course: "Maths", Teacher: "Rao", Room: "R1"},
		// Iyer already teaches at the same slot, so only Menon can cover.
		{ID: "e2", Section: "CS-B", Day: "Monday", TimeSlot: "9:00 AM", Course: "Physics", Teacher: "Iyer", Room: "R2"},
	}
	qualified := map[string][]string{"Maths": {"Rao", "Iyer", "Menon"}}

	conflicts := newTestAdjuster().Remediate("Rao", entries, qualified, nil)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "e1", conflicts[0].EntryID)
	assert.Contains(t, conflicts[0].OriginalClass, "Maths")
	assert.Contains(t, conflicts[0].OriginalClass, "Monday")

	require.Len(t, conflicts[0].Solutions, 1)
	s := conflicts[0].Solutions[0]
	assert.Equal(t, SolutionSubstitute, s.Type)
	assert.Equal(t, "Menon", s.NewTeacher)
	assert.Equal(t, "Assign Menon", s.Details)
}

func TestAdjusterCapsRescheduleOptions(t *testing.T) {
	entries := []Entry{
		{ID: "e1", Section: "CS-A", Day: "Monday", TimeSlot: "9:00 AM", Course: "Maths", Teacher: "Rao", Room: "R1"},
	}

	conflicts := newTestAdjuster().Remediate("Rao", entries, nil, []string{"R1", "R2"})
	require.Len(t, conflicts, 1)

	reschedules := 0
	for _, s := range conflicts[0].Solutions {
		if s.Type != SolutionReschedule {
			continue
		}
		reschedules++
		assert.NotEmpty(t, s.NewDay)
		assert.NotEmpty(t, s.NewTimeSlot)
		assert.NotEmpty(t, s.NewRoom)
		assert.Contains(t, s.Details, "Move to ")
		assert.False(t, s.NewDay == "Monday" && s.NewTimeSlot == "9:00 AM",
			"a reschedule must leave the original cell")
	}
	assert.Equal(t, 3, reschedules)
}

func TestAdjusterRescheduleAvoidsBusyResources(t *testing.T) {
	// Every cell except Tuesday 9:00 AM in R1 is blocked for the section.
	entries := []Entry{
		{ID: "e1", Section: "CS-A", Day: "Monday", TimeSlot: "9:00 AM", Course: "Maths", Teacher: "Rao", Room: "R1"},
	}
	for _, d := range Days() {
		for _, s := range AllTimeSlots() {
			if d == "Monday" && s == "9:00 AM" {
				continue
			}
			if d == "Tuesday" && s == "9:00 AM" {
				continue
			}
			entries = append(entries, Entry{
				Section: "CS-A", Day: d, TimeSlot: s, Course: "Filler", Teacher: "Iyer", Room: "R9",
			})
		}
	}

	conflicts := newTestAdjuster().Remediate("Rao", entries, nil, []string{"R1"})
	require.Len(t, conflicts, 1)
	require.Len(t, conflicts[0].Solutions, 1)

	s := conflicts[0].Solutions[0]
	assert.Equal(t, SolutionReschedule, s.Type)
	assert.Equal(t, "Tuesday", s.NewDay)
	assert.Equal(t, "9:00 AM", s.NewTimeSlot)
	assert.Equal(t, "R1", s.NewRoom)
}

func TestAdjusterRescheduleOptionsAreSlotDiverse(t *testing.T) {
	// With the whole week open and several free rooms, each offered move
	// must claim its own (day, slot) pair instead of spending the cap on
	// room variants of a single pair.
	entries := []Entry{
		{ID: "e1", Section: "CS-A", Day: "Monday", TimeSlot: "9:00 AM", Course: "Maths", Teacher: "Rao", Room: "R1"},
	}

	conflicts := newTestAdjuster().Remediate("Rao", entries, nil, []string{"R1", "R2", "R3", "R4", "R5"})
	require.Len(t, conflicts, 1)

	seen := map[string]bool{}
	reschedules := 0
	for _, s := range conflicts[0].Solutions {
		if s.Type != SolutionReschedule {
			continue
		}
		reschedules++
		k := s.NewDay + "|" + s.NewTimeSlot
		assert.False(t, seen[k], "duplicate slot offered: %s", k)
		seen[k] = true
	}
	assert.Equal(t, 3, reschedules)
}

func TestAdjusterConcurrentRemediations(t *testing.T) {
	adj := newTestAdjuster()

	var entries []Entry
	for i := 0; i < 4; i++ {
		entries = append(entries, Entry{
			ID:       fmt.Sprintf("e%d", i),
			Section:  fmt.Sprintf("CS-%d", i),
			Day:      "Monday",
			TimeSlot: "9:00 AM",
			Course:   "Maths",
			Teacher:  fmt.Sprintf("T%d", i),
			Room:     fmt.Sprintf("R%d", i),
		})
	}

	const runs = 8
	var wg sync.WaitGroup
	results := make([][]Conflict, runs)
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = adj.Remediate(fmt.Sprintf("T%d", i%4), entries, nil, []string{"R1", "R2"})
		}(i)
	}
	wg.Wait()

	for i, conflicts := range results {
		require.Len(t, conflicts, 1, "run %d", i)
		assert.NotEmpty(t, conflicts[0].Solutions, "run %d", i)
	}
}

func TestAdjusterNoSolutions(t *testing.T) {
	// Sole qualified teacher is the absent one and there are no rooms to
	// move into, so the conflict surfaces with an empty solution list.
	entries := []Entry{
		{ID: "e1", Section: "CS-A", Day: "Monday", TimeSlot: "9:00 AM", Course: "Maths", Teacher: "Rao", Room: "R1"},
	}
	qualified := map[string][]string{"Maths": {"Rao"}}

	conflicts := newTestAdjuster().Remediate("Rao", entries, qualified, nil)
	require.Len(t, conflicts, 1)
	assert.Empty(t, conflicts[0].Solutions)
}
