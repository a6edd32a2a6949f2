package seating

import (
	"context"
	"math/rand"
	"sort"
	"sync"
)

// Solver assigns seats in two phases. Phase one is a branch and bound search
// over group placement: each seat takes a value of "empty" or one of the
// distinct branches, so the search space depends on the number of branches,
// not the roster size. Phase two binds the individual students of each branch
// onto that branch's seats at random. Each Solve derives its own random
// source, so one Solver serves concurrent requests.
type Solver struct {
	weights Weights
	mu      sync.Mutex
	rng     *rand.Rand
}

func NewSolver(weights Weights, rng *rand.Rand) *Solver {
	return &Solver{weights: weights, rng: rng}
}

func (s *Solver) newRun() *rand.Rand {
	s.mu.Lock()
	seed := s.rng.Int63()
	s.mu.Unlock()
	return rand.New(rand.NewSource(seed))
}

type seatPos struct {
	room int
	row  int
	col  int
}

type search struct {
	weights Weights
	seats   []seatPos
	rooms   []Room
	roomEnd []int // index one past the last seat of each room

	// remaining[0] counts empty seats still to place, remaining[g] the
	// seats still owed to group g.
	remaining []int
	roomOcc   []int
	assign    []int
	occLo     int
	occHi     int

	best       int
	bestAssign []int

	ctx     context.Context
	nodes   int
	aborted bool
}

// Solve computes a minimum-penalty arrangement for the roster. Rooms must
// each hold at least the floor of an even student split and at most the
// ceiling; capacity shortfalls fail with ErrInsufficientCapacity before any
// search, band infeasibility with ErrNoArrangement.
func (s *Solver) Solve(ctx context.Context, students []Student, rooms []Room) (*Result, error) {
	totalSeats := 0
	for _, r := range rooms {
		totalSeats += r.capacity()
	}
	if totalSeats < len(students) {
		return nil, ErrInsufficientCapacity
	}

	groups, counts := groupRoster(students)

	lo := len(students) / len(rooms)
	hi := (len(students) + len(rooms) - 1) / len(rooms)
	reachable := 0
	for _, r := range rooms {
		if r.capacity() < lo {
			return nil, ErrNoArrangement
		}
		if c := r.capacity(); c < hi {
			reachable += c
		} else {
			reachable += hi
		}
	}
	if reachable < len(students) {
		return nil, ErrNoArrangement
	}

	st := &search{
		weights:   s.weights,
		rooms:     rooms,
		remaining: make([]int, len(groups)+1),
		roomOcc:   make([]int, len(rooms)),
		occLo:     lo,
		occHi:     hi,
		best:      -1,
		ctx:       ctx,
	}
	st.remaining[0] = totalSeats - len(students)
	for g, c := range counts {
		st.remaining[g+1] = c
	}
	for ri, r := range rooms {
		for row := 0; row < r.Rows; row++ {
			for col := 0; col < r.Cols; col++ {
				st.seats = append(st.seats, seatPos{room: ri, row: row, col: col})
			}
		}
		st.roomEnd = append(st.roomEnd, len(st.seats))
	}
	st.assign = make([]int, len(st.seats))

	st.dfs(0, 0)

	if st.best < 0 {
		if st.aborted {
			return nil, ctx.Err()
		}
		return nil, ErrNoArrangement
	}

	res := s.bind(s.newRun(), st, groups, students)
	res.Penalty = st.best
	res.Optimal = !st.aborted
	return res, nil
}

func groupRoster(students []Student) ([]string, []int) {
	var groups []string
	index := make(map[string]int)
	var counts []int
	for _, s := range students {
		g, ok := index[s.Branch]
		if !ok {
			g = len(groups)
			index[s.Branch] = g
			groups = append(groups, s.Branch)
			counts = append(counts, 0)
		}
		counts[g]++
	}
	return groups, counts
}

func (st *search) dfs(i, pen int) {
	if st.aborted {
		return
	}
	st.nodes++
	if st.nodes%4096 == 0 {
		select {
		case <-st.ctx.Done():
			st.aborted = true
			return
		default:
		}
	}

	if i == len(st.seats) {
		if st.best < 0 || pen < st.best {
			st.best = pen
			st.bestAssign = append(st.bestAssign[:0], st.assign...)
		}
		return
	}

	seat := st.seats[i]
	room := seat.room

	type choice struct{ val, inc int }
	var choices []choice
	if st.remaining[0] > 0 {
		choices = append(choices, choice{val: 0})
	}
	for v := 1; v < len(st.remaining); v++ {
		if st.remaining[v] == 0 {
			continue
		}
		choices = append(choices, choice{val: v, inc: st.increment(i, v)})
	}
	// Cheapest moves first so the initial descent doubles as a greedy
	// incumbent, with the bigger groups ahead on ties.
	sort.Slice(choices, func(a, b int) bool {
		if choices[a].inc != choices[b].inc {
			return choices[a].inc < choices[b].inc
		}
		return st.remaining[choices[a].val] > st.remaining[choices[b].val]
	})

	seatsLeftInRoom := st.roomEnd[room] - i - 1
	for _, c := range choices {
		if st.best >= 0 && pen+c.inc >= st.best {
			continue
		}
		occ := st.roomOcc[room]
		if c.val > 0 {
			occ++
		}
		if occ > st.occHi || occ+seatsLeftInRoom < st.occLo {
			continue
		}

		st.assign[i] = c.val
		st.remaining[c.val]--
		if c.val > 0 {
			st.roomOcc[room]++
		}

		st.dfs(i+1, pen+c.inc)

		if c.val > 0 {
			st.roomOcc[room]--
		}
		st.remaining[c.val]++
		st.assign[i] = 0
	}
}

// increment is the penalty added by putting group v on seat i, from the two
// already-decided neighbours: the seat to the left and the seat in front.
func (st *search) increment(i, v int) int {
	seat := st.seats[i]
	inc := 0
	if seat.col > 0 && st.assign[i-1] == v {
		inc += st.weights.Horizontal
	}
	if seat.row > 0 && st.assign[i-st.rooms[seat.room].Cols] == v {
		inc += st.weights.Vertical
	}
	return inc
}

// bind shuffles each branch's students and deals them onto the branch's
// seats in grid order.
func (s *Solver) bind(rng *rand.Rand, st *search, groups []string, students []Student) *Result {
	byGroup := make([][]Student, len(groups))
	index := make(map[string]int, len(groups))
	for g, name := range groups {
		index[name] = g
	}
	for _, stu := range students {
		g := index[stu.Branch]
		byGroup[g] = append(byGroup[g], stu)
	}
	for g := range byGroup {
		rng.Shuffle(len(byGroup[g]), func(i, j int) {
			byGroup[g][i], byGroup[g][j] = byGroup[g][j], byGroup[g][i]
		})
	}

	res := &Result{}
	next := make([]int, len(groups))
	for i, val := range st.bestAssign {
		if val == 0 {
			continue
		}
		g := val - 1
		if next[g] >= len(byGroup[g]) {
			continue
		}
		seat := st.seats[i]
		res.Assignments = append(res.Assignments, Assignment{
			Student: byGroup[g][next[g]],
			Room:    st.rooms[seat.room].Name,
			Row:     seat.row + 1,
			Col:     seat.col + 1,
		})
		next[g]++
	}
	for g := range byGroup {
		res.Unplaced = append(res.Unplaced, byGroup[g][next[g]:]...)
	}
	return res
}
