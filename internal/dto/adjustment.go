package dto

// TeacherLeaveRequest asks for remediation options for every class the named
// teacher would miss. Dates use YYYY-MM-DD.
type TeacherLeaveRequest struct {
	TeacherName string `json:"teacherName" validate:"required"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
}

// SolutionOption is one proposed remediation: either a substitute teacher or
// a relocation to a free (day, slot, room).
type SolutionOption struct {
	Type        string `json:"type" validate:"required,oneof=SUBSTITUTE RESCHEDULE"`
	Details     string `json:"details"`
	NewTeacher  string `json:"newTeacher,omitempty"`
	NewDay      string `json:"newDay,omitempty"`
	NewTimeSlot string `json:"newTimeSlot,omitempty"`
	NewRoom     string `json:"newRoom,omitempty"`
}

// ConflictReport groups the solutions found for one affected entry. An empty
// Solutions list is a legitimate "no remediation found" outcome.
type ConflictReport struct {
	ConflictEntryID string           `json:"conflict_entry_id"`
	OriginalClass   string           `json:"original_class"`
	Solutions       []SolutionOption `json:"solutions"`
}

// FindSolutionsResponse wraps the per-conflict reports.
type FindSolutionsResponse struct {
	Solutions []ConflictReport `json:"solutions"`
}

// ApplySolutionRequest turns one chosen solution into a dated override.
// Date is optional and defaults to today.
type ApplySolutionRequest struct {
	EntryID  string         `json:"entryId" validate:"required"`
	Solution SolutionOption `json:"solution" validate:"required"`
	Date     string         `json:"date"`
}

// DailyViewResponse lists the overrides active for a section on one date.
type DailyViewResponse struct {
	Overrides []OverrideView `json:"overrides"`
}

// OverrideView is a daily-view override joined with its base entry context.
type OverrideView struct {
	OriginalEntryID string         `json:"original_entry_id"`
	ChangeType      string         `json:"change_type"`
	NewTeacher      *string        `json:"new_teacher,omitempty"`
	NewRoom         *string        `json:"new_room,omitempty"`
	NewDay          *string        `json:"new_day,omitempty"`
	NewTimeSlot     *string        `json:"new_time_slot,omitempty"`
	OriginalClass   OriginalDetail `json:"original_class"`
}

// OriginalDetail describes the base entry an override shadows.
type OriginalDetail struct {
	CourseName string `json:"course_name"`
	Day        string `json:"day"`
	TimeSlot   string `json:"time_slot"`
}
