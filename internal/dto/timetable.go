package dto

// CourseInput captures weekly demand for one course-faculty pair.
type CourseInput struct {
	Name    string `json:"name" validate:"required"`
	Hours   int    `json:"hours" validate:"required,min=1,max=40"`
	Faculty string `json:"faculty" validate:"required"`
}

// GenerateTimetableRequest instructs the generator to build a weekly grid.
// SectionName is optional: when regenerating an existing section its own
// committed entries are excluded from the conflict snapshot.
type GenerateTimetableRequest struct {
	Courses           []CourseInput `json:"courses" validate:"required,min=1,dive"`
	Rooms             []string      `json:"rooms" validate:"required,min=1,dive,required"`
	IncludeLunchBreak bool          `json:"includeLunchBreak"`
	SectionName       string        `json:"sectionName"`
}

// PlacementDetail is one occupied grid cell.
type PlacementDetail struct {
	CourseName  string `json:"courseName" validate:"required"`
	FacultyName string `json:"facultyName" validate:"required"`
	RoomName    string `json:"roomName" validate:"required"`
}

// GenerateTimetableResponse returns the generated grid plus the deduplicated
// names of courses whose hours could not all be placed.
type GenerateTimetableResponse struct {
	Schedule map[string]map[string]PlacementDetail `json:"schedule"`
	Unplaced []string                              `json:"unplaced"`
}

// SaveScheduleRequest commits a grid for a section, replacing any previous
// entries for that section atomically.
type SaveScheduleRequest struct {
	SectionName string                                 `json:"sectionName" validate:"required"`
	Schedule    map[string]map[string]*PlacementDetail `json:"schedule" validate:"required"`
}

// DeleteScheduleRequest removes a section's committed timetable.
type DeleteScheduleRequest struct {
	SectionName string `json:"sectionName" validate:"required"`
}

// SavedEntry is one committed timetable cell in the grouped listing.
type SavedEntry struct {
	EntryID     string `json:"entry_id"`
	Day         string `json:"day"`
	TimeSlot    string `json:"time_slot"`
	CourseName  string `json:"course_name"`
	FacultyName string `json:"faculty_name"`
	RoomName    string `json:"room_name"`
}
