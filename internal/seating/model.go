// Package seating computes exam seat arrangements that keep students of the
// same branch apart. The solver works over an integer model of the seat grid
// and minimizes a weighted adjacency objective.
package seating

import "errors"

var (
	// ErrInsufficientCapacity means the roster is larger than the total
	// seats across all rooms. Nothing is assigned.
	ErrInsufficientCapacity = errors.New("seating: not enough seats for the roster")

	// ErrNoArrangement means raw capacity suffices but no assignment can
	// satisfy the per-room balance constraints.
	ErrNoArrangement = errors.New("seating: no valid arrangement exists")
)

// Student is one roster row. Branch is the group tag the adjacency and
// balance constraints operate on.
type Student struct {
	Name   string
	RollNo string
	Branch string
}

// Room is a uniform rows x cols grid of seats.
type Room struct {
	Name string
	Rows int
	Cols int
}

func (r Room) capacity() int { return r.Rows * r.Cols }

// Assignment seats one student. Row and Col are 1-based.
type Assignment struct {
	Student Student
	Room    string
	Row     int
	Col     int
}

// Result is a complete arrangement. Unplaced is a soundness check and stays
// empty on every expected path; Optimal reports whether the search ran to
// exhaustion or was cut off by its deadline with the best incumbent so far.
type Result struct {
	Assignments []Assignment
	Unplaced    []Student
	Penalty     int
	Optimal     bool
}

// Weights prices same-group adjacency. Side-by-side neighbours can see each
// other's papers, so the horizontal weight dominates the vertical one.
type Weights struct {
	Horizontal int
	Vertical   int
}

// DefaultWeights matches the configured defaults.
func DefaultWeights() Weights {
	return Weights{Horizontal: 1000, Vertical: 10}
}
