package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classsync/classsync-api/internal/dto"
	"github.com/classsync/classsync-api/internal/seating"
	appErrors "github.com/classsync/classsync-api/pkg/errors"
)

func newSeatingFixture() *SeatingService {
	solver := seating.NewSolver(seating.DefaultWeights(), rand.New(rand.NewSource(13)))
	return NewSeatingService(solver, nil, nil, SeatingConfig{SolverTimeout: 5 * time.Second})
}

func TestSeatingServiceArrange(t *testing.T) {
	svc := newSeatingFixture()

	resp, err := svc.Arrange(context.Background(), dto.ExamSeatingRequest{
		Students: []dto.StudentInput{
			{Name: "Asha", RollNo: "CSE001", Branch: "CSE"},
			{Name: "Vikram", RollNo: "ECE001", Branch: "ECE"},
		},
		Rooms: []dto.RoomDimensionInput{{Name: "Hall-1", Rows: 1, Cols: 2}},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Assignments, 2)
	assert.Empty(t, resp.Unplaced)
	assert.Zero(t, resp.Penalty)
	assert.True(t, resp.Optimal)
	for _, a := range resp.Assignments {
		assert.Equal(t, "Hall-1", a.RoomName)
		assert.Equal(t, 1, a.Row)
	}
}

func TestSeatingServiceArrangeValidatesRoster(t *testing.T) {
	svc := newSeatingFixture()

	_, err := svc.Arrange(context.Background(), dto.ExamSeatingRequest{
		Rooms: []dto.RoomDimensionInput{{Name: "Hall-1", Rows: 1, Cols: 2}},
	})
	assertErrorCode(t, err, appErrors.ErrValidation.Code)
}

func TestSeatingServiceArrangeCapacityError(t *testing.T) {
	svc := newSeatingFixture()

	_, err := svc.Arrange(context.Background(), dto.ExamSeatingRequest{
		Students: []dto.StudentInput{
			{Name: "Asha", Branch: "CSE"},
			{Name: "Vikram", Branch: "ECE"},
			{Name: "Meera", Branch: "CSE"},
		},
		Rooms: []dto.RoomDimensionInput{{Name: "Hall-1", Rows: 1, Cols: 2}},
	})
	assertErrorCode(t, err, appErrors.ErrInsufficientCapacity.Code)
}

func TestSeatingServiceArrangeInfeasibleBalance(t *testing.T) {
	svc := newSeatingFixture()

	students := make([]dto.StudentInput, 0, 30)
	for i := 0; i < 15; i++ {
		students = append(students,
			dto.StudentInput{Name: "c", Branch: "CSE"},
			dto.StudentInput{Name: "e", Branch: "ECE"})
	}
	_, err := svc.Arrange(context.Background(), dto.ExamSeatingRequest{
		Students: students,
		Rooms: []dto.RoomDimensionInput{
			{Name: "Closet", Rows: 1, Cols: 1},
			{Name: "Hall-1", Rows: 10, Cols: 10},
		},
	})
	assertErrorCode(t, err, appErrors.ErrNoArrangement.Code)
}
