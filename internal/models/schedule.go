package models

import "time"

// Teacher is an instructor identified by a unique display name.
type Teacher struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Course is a taught subject identified by a unique display name.
type Course struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Room is a physical classroom used by the timetable.
type Room struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Section is a student cohort owning one weekly timetable.
type Section struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ScheduleEntry is one committed timetable cell. For a fixed (day, time_slot)
// no teacher and no room may appear twice, and a section holds at most one
// entry per (day, time_slot).
type ScheduleEntry struct {
	ID        string    `db:"id" json:"id"`
	SectionID string    `db:"section_id" json:"section_id"`
	Day       string    `db:"day" json:"day"`
	TimeSlot  string    `db:"time_slot" json:"time_slot"`
	CourseID  string    `db:"course_id" json:"course_id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	RoomID    string    `db:"room_id" json:"room_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ScheduleEntryDetail is the denormalised read model joining entity names.
type ScheduleEntryDetail struct {
	ID          string `db:"id" json:"entry_id"`
	SectionID   string `db:"section_id" json:"-"`
	SectionName string `db:"section_name" json:"section_name"`
	Day         string `db:"day" json:"day"`
	TimeSlot    string `db:"time_slot" json:"time_slot"`
	CourseID    string `db:"course_id" json:"-"`
	CourseName  string `db:"course_name" json:"course_name"`
	TeacherID   string `db:"teacher_id" json:"-"`
	TeacherName string `db:"teacher_name" json:"faculty_name"`
	RoomID      string `db:"room_id" json:"-"`
	RoomName    string `db:"room_name" json:"room_name"`
}

// Override change types.
const (
	OverrideSubstitute = "SUBSTITUTE"
	OverrideReschedule = "RESCHEDULE"
)

// ScheduleOverride is a dated exception layered on one ScheduleEntry. The
// base entry is never mutated; overrides only apply when rendering the
// matching calendar date.
type ScheduleOverride struct {
	ID              string    `db:"id" json:"id"`
	OriginalEntryID string    `db:"original_entry_id" json:"original_entry_id"`
	OverrideDate    time.Time `db:"override_date" json:"override_date"`
	ChangeType      string    `db:"change_type" json:"change_type"`
	NewTeacherID    *string   `db:"new_teacher_id" json:"new_teacher_id,omitempty"`
	NewRoomID       *string   `db:"new_room_id" json:"new_room_id,omitempty"`
	NewDay          *string   `db:"new_day" json:"new_day,omitempty"`
	NewTimeSlot     *string   `db:"new_time_slot" json:"new_time_slot,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// ScheduleOverrideDetail joins an override with the names needed to render a
// daily view.
type ScheduleOverrideDetail struct {
	OriginalEntryID  string  `db:"original_entry_id" json:"original_entry_id"`
	ChangeType       string  `db:"change_type" json:"change_type"`
	NewTeacherName   *string `db:"new_teacher_name" json:"new_teacher,omitempty"`
	NewRoomName      *string `db:"new_room_name" json:"new_room,omitempty"`
	NewDay           *string `db:"new_day" json:"new_day,omitempty"`
	NewTimeSlot      *string `db:"new_time_slot" json:"new_time_slot,omitempty"`
	OriginalCourse   string  `db:"original_course" json:"original_course"`
	OriginalDay      string  `db:"original_day" json:"original_day"`
	OriginalTimeSlot string  `db:"original_time_slot" json:"original_time_slot"`
}
