// Package timetable holds the scheduling engines: the conflict index, the
// randomized greedy generator, and the adjustment engine that repairs a
// published schedule around teacher absences.
package timetable

// Days returns the teaching week in order.
func Days() []string {
	return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
}

// TimeSlots returns the hourly periods for a generated timetable. When no
// lunch break is reserved the 1:00 PM period joins the pool, otherwise it is
// left empty for every section.
func TimeSlots(includeLunchBreak bool) []string {
	slots := []string{"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM"}
	if !includeLunchBreak {
		slots = append(slots[:4], append([]string{"1:00 PM"}, slots[4:]...)...)
	}
	return slots
}

// AllTimeSlots returns every period of the day including 1:00 PM. The
// adjustment engine searches the full grid regardless of how the original
// timetable treated lunch.
func AllTimeSlots() []string {
	return TimeSlots(false)
}
