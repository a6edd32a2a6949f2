package dto

// StudentInput is one roster row. Branch is the anti-collusion group tag.
type StudentInput struct {
	Name   string `json:"name" validate:"required"`
	RollNo string `json:"rollNo"`
	Branch string `json:"branch" validate:"required"`
}

// RoomDimensionInput describes one exam room's uniform seat grid.
type RoomDimensionInput struct {
	Name string `json:"name" validate:"required"`
	Rows int    `json:"rows" validate:"required,min=1"`
	Cols int    `json:"cols" validate:"required,min=1"`
}

// ExamSeatingRequest carries the roster and room inventory for one solve.
type ExamSeatingRequest struct {
	Students []StudentInput       `json:"students" validate:"required,min=1,dive"`
	Rooms    []RoomDimensionInput `json:"rooms" validate:"required,min=1,dive"`
}

// SeatAssignmentView binds one student to a seat. Row and Col are 1-based.
type SeatAssignmentView struct {
	Student  StudentInput `json:"student"`
	RoomName string       `json:"room_name"`
	Row      int          `json:"row"`
	Col      int          `json:"col"`
}

// ExamSeatingResponse returns the computed arrangement. Unplaced students are
// a first-class field, never silently dropped.
type ExamSeatingResponse struct {
	Assignments []SeatAssignmentView `json:"assignments"`
	Unplaced    []StudentInput       `json:"unplaced"`
	Penalty     int                  `json:"penalty"`
	Optimal     bool                 `json:"optimal"`
}

// SeatingExportRequest renders a previously computed arrangement as a chart.
type SeatingExportRequest struct {
	Title       string               `json:"title"`
	Rooms       []RoomDimensionInput `json:"rooms" validate:"required,min=1,dive"`
	Assignments []SeatAssignmentView `json:"assignments" validate:"required,min=1"`
}
