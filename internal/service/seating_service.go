package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/classsync/classsync-api/internal/dto"
	"github.com/classsync/classsync-api/internal/seating"
	appErrors "github.com/classsync/classsync-api/pkg/errors"
)

// SeatingConfig tunes the seating solve.
type SeatingConfig struct {
	SolverTimeout time.Duration
	Metrics       *MetricsService
}

// SeatingService validates seating requests and runs the solver under a
// bounded deadline.
type SeatingService struct {
	solver    *seating.Solver
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	cfg       SeatingConfig
}

// NewSeatingService wires the seating solver.
func NewSeatingService(solver *seating.Solver, validate *validator.Validate, logger *zap.Logger, cfg SeatingConfig) *SeatingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SolverTimeout <= 0 {
		cfg.SolverTimeout = 15 * time.Second
	}
	return &SeatingService{solver: solver, validator: validate, logger: logger, metrics: cfg.Metrics, cfg: cfg}
}

// Arrange computes a seating chart for the roster. Infeasible inputs map to
// the capacity and no-arrangement errors; a deadline hit with an incumbent in
// hand returns that arrangement with Optimal false.
func (s *SeatingService) Arrange(ctx context.Context, req dto.ExamSeatingRequest) (*dto.ExamSeatingResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	students := make([]seating.Student, 0, len(req.Students))
	for _, st := range req.Students {
		students = append(students, seating.Student{Name: st.Name, RollNo: st.RollNo, Branch: st.Branch})
	}
	rooms := make([]seating.Room, 0, len(req.Rooms))
	for _, r := range req.Rooms {
		rooms = append(rooms, seating.Room{Name: r.Name, Rows: r.Rows, Cols: r.Cols})
	}

	solveCtx, cancel := context.WithTimeout(ctx, s.cfg.SolverTimeout)
	defer cancel()

	started := time.Now()
	res, err := s.solver.Solve(solveCtx, students, rooms)
	if err != nil {
		switch {
		case errors.Is(err, seating.ErrInsufficientCapacity):
			return nil, appErrors.Wrap(err, appErrors.ErrInsufficientCapacity.Code, appErrors.ErrInsufficientCapacity.Status, appErrors.ErrInsufficientCapacity.Message)
		case errors.Is(err, seating.ErrNoArrangement):
			return nil, appErrors.Wrap(err, appErrors.ErrNoArrangement.Code, appErrors.ErrNoArrangement.Status, appErrors.ErrNoArrangement.Message)
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "seating solve failed")
		}
	}

	s.metrics.ObserveEngineRun("seating", time.Since(started))
	s.metrics.ObserveSeatingPenalty(res.Penalty)

	resp := &dto.ExamSeatingResponse{
		Assignments: make([]dto.SeatAssignmentView, 0, len(res.Assignments)),
		Unplaced:    make([]dto.StudentInput, 0, len(res.Unplaced)),
		Penalty:     res.Penalty,
		Optimal:     res.Optimal,
	}
	for _, a := range res.Assignments {
		resp.Assignments = append(resp.Assignments, dto.SeatAssignmentView{
			Student:  dto.StudentInput{Name: a.Student.Name, RollNo: a.Student.RollNo, Branch: a.Student.Branch},
			RoomName: a.Room,
			Row:      a.Row,
			Col:      a.Col,
		})
	}
	for _, st := range res.Unplaced {
		resp.Unplaced = append(resp.Unplaced, dto.StudentInput{Name: st.Name, RollNo: st.RollNo, Branch: st.Branch})
	}

	s.logger.Info("seating arranged",
		zap.Int("students", len(students)),
		zap.Int("rooms", len(rooms)),
		zap.Int("penalty", res.Penalty),
		zap.Bool("optimal", res.Optimal),
		zap.Duration("took", time.Since(started)))
	return resp, nil
}
