package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/classsync/classsync-api/internal/dto"
	appErrors "github.com/classsync/classsync-api/pkg/errors"
)

type seatingArrangerMock struct {
	received dto.ExamSeatingRequest
	err      error
}

func (m *seatingArrangerMock) Arrange(_ context.Context, req dto.ExamSeatingRequest) (*dto.ExamSeatingResponse, error) {
	m.received = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.ExamSeatingResponse{
		Assignments: []dto.SeatAssignmentView{
			{Student: dto.StudentInput{Name: "Asha", Branch: "CSE"}, RoomName: "Hall A", Row: 1, Col: 1},
			{Student: dto.StudentInput{Name: "Ravi", Branch: "ECE"}, RoomName: "Hall A", Row: 1, Col: 2},
		},
		Unplaced: []dto.StudentInput{},
		Penalty:  0,
		Optimal:  true,
	}, nil
}

func TestSeatingHandlerGenerate(t *testing.T) {
	mockSvc := &seatingArrangerMock{}
	handler := &SeatingHandler{service: mockSvc}

	w := postJSON(t, handler.Generate, "/generate_exam_seating", dto.ExamSeatingRequest{
		Students: []dto.StudentInput{
			{Name: "Asha", Branch: "CSE"},
			{Name: "Ravi", Branch: "ECE"},
		},
		Rooms: []dto.RoomDimensionInput{{Name: "Hall A", Rows: 1, Cols: 2}},
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mockSvc.received.Students, 2)
	require.Contains(t, w.Body.String(), "Hall A")
	require.Contains(t, w.Body.String(), `"optimal":true`)
}

func TestSeatingHandlerGenerateInsufficientCapacity(t *testing.T) {
	mockSvc := &seatingArrangerMock{err: appErrors.Clone(appErrors.ErrInsufficientCapacity, "not enough seats for the roster")}
	handler := &SeatingHandler{service: mockSvc}

	w := postJSON(t, handler.Generate, "/generate_exam_seating", dto.ExamSeatingRequest{
		Students: []dto.StudentInput{{Name: "Asha", Branch: "CSE"}},
		Rooms:    []dto.RoomDimensionInput{{Name: "Hall A", Rows: 1, Cols: 1}},
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), appErrors.ErrInsufficientCapacity.Code)
}

func TestSeatingHandlerGenerateBadJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &SeatingHandler{service: &seatingArrangerMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/generate_exam_seating", bytes.NewReader([]byte("[")))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
