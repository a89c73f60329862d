// Package gamestate holds the mutable, per-room board: cone placements,
// the player-to-color assignment, move history, and the path validation
// and mutation rules cones move under.
package gamestate

import (
	"starboard/pkg/board"
	"starboard/pkg/gameerr"
)

// historyCap bounds the recent-move ring; oldest entries are evicted.
const historyCap = 10

// Move records one applied path, for the move-history ring.
type Move struct {
	Color board.Color
	Path  []board.Point
}

// State is the mutable board belonging to a single room.
type State struct {
	Cones         map[board.Point]board.Color
	PlayersColors map[uint64]board.Color
	moves         []Move
}

// New returns an empty board.
func New() *State {
	return &State{
		Cones:         make(map[board.Point]board.Color),
		PlayersColors: make(map[uint64]board.Color),
	}
}

// Moves returns the bounded move history, oldest first.
func (s *State) Moves() []Move {
	return append([]Move(nil), s.moves...)
}

func (s *State) pushMove(m Move) {
	s.moves = append(s.moves, m)
	if len(s.moves) > historyCap {
		s.moves = s.moves[len(s.moves)-historyCap:]
	}
}

// IsOccupied reports whether (row, col) currently holds a cone.
func (s *State) IsOccupied(p board.Point) (bool, error) {
	if !board.InBounds(p.Row, p.Col) {
		return false, gameerr.New(gameerr.OutOfBounds, p.String())
	}
	_, ok := s.Cones[p]
	return ok, nil
}

// AddCones assigns color to userID and places a cone on every cell whose
// home color equals color. Fails if the color is taken by another user
// or if any target cell is already occupied by someone else's cone; is
// a no-op success if userID already owns color.
func (s *State) AddCones(userID uint64, color board.Color) error {
	if !color.Valid() {
		return gameerr.New(gameerr.OutOfBounds, "invalid color")
	}
	if existing, ok := s.PlayersColors[userID]; ok && existing == color {
		return nil
	}
	for owner, c := range s.PlayersColors {
		if c == color && owner != userID {
			return gameerr.New(gameerr.ColorTaken, color.String())
		}
	}
	cells := board.HomeCells(color)
	for _, p := range cells {
		if existing, ok := s.Cones[p]; ok && existing != color {
			return gameerr.New(gameerr.ColorTaken, "home cell occupied")
		}
	}
	for _, p := range cells {
		s.Cones[p] = color
	}
	s.PlayersColors[userID] = color
	return nil
}

// RemoveCones deletes every cone owned by userID's color and drops the
// user's color assignment.
func (s *State) RemoveCones(userID uint64) {
	color, ok := s.PlayersColors[userID]
	if !ok {
		return
	}
	for p, c := range s.Cones {
		if c == color {
			delete(s.Cones, p)
		}
	}
	delete(s.PlayersColors, userID)
}

// ColorOf returns the color assigned to userID, if any.
func (s *State) ColorOf(userID uint64) (board.Color, bool) {
	c, ok := s.PlayersColors[userID]
	return c, ok
}

// CanJump reports whether a single jump from `from` to `to` is legal: not
// adjacent, the destination empty, and the two cells have exactly one
// common neighbor, which is occupied.
func (s *State) CanJump(from, to board.Point) (bool, error) {
	if !board.InBounds(from.Row, from.Col) || !board.InBounds(to.Row, to.Col) {
		return false, gameerr.New(gameerr.OutOfBounds, "jump endpoint")
	}
	fromNeighbors, err := board.Neighbors(from.Row, from.Col)
	if err != nil {
		return false, gameerr.Wrap(gameerr.OutOfBounds, "neighbors", err)
	}
	for _, n := range fromNeighbors {
		if n == to {
			return false, nil
		}
	}
	occupied, err := s.IsOccupied(to)
	if err != nil {
		return false, err
	}
	if occupied {
		return false, nil
	}
	var common []board.Point
	for _, x := range fromNeighbors {
		xn, err := board.Neighbors(x.Row, x.Col)
		if err != nil {
			return false, gameerr.Wrap(gameerr.OutOfBounds, "neighbors", err)
		}
		hasFrom, hasTo := false, false
		for _, c := range xn {
			if c == from {
				hasFrom = true
			}
			if c == to {
				hasTo = true
			}
		}
		if hasFrom && hasTo {
			common = append(common, x)
		}
	}
	if len(common) != 1 {
		return false, nil
	}
	mid := common[0]
	occ, err := s.IsOccupied(mid)
	if err != nil {
		return false, err
	}
	return occ, nil
}

// ValidatePath checks a proposed sequence of cells: length 2 is either a
// direct step to an empty neighbor or a single legal jump; length > 2 is
// a chain of legal jumps over successively empty destinations.
func (s *State) ValidatePath(path []board.Point) error {
	if len(path) < 2 {
		return gameerr.New(gameerr.InvalidPath, "path too short")
	}
	if len(path) == 2 {
		from, to := path[0], path[1]
		occupied, err := s.IsOccupied(to)
		if err != nil {
			return err
		}
		if occupied {
			return gameerr.New(gameerr.InvalidPath, "destination occupied")
		}
		neighbors, err := board.Neighbors(from.Row, from.Col)
		if err != nil {
			return gameerr.Wrap(gameerr.OutOfBounds, "neighbors", err)
		}
		for _, n := range neighbors {
			if n == to {
				return nil
			}
		}
		ok, err := s.CanJump(from, to)
		if err != nil {
			return err
		}
		if !ok {
			return gameerr.New(gameerr.InvalidPath, "not a legal step or jump")
		}
		return nil
	}
	for i := 1; i < len(path); i++ {
		occupied, err := s.IsOccupied(path[i])
		if err != nil {
			return err
		}
		if occupied {
			return gameerr.New(gameerr.InvalidPath, "destination occupied")
		}
		ok, err := s.CanJump(path[i-1], path[i])
		if err != nil {
			return err
		}
		if !ok {
			return gameerr.New(gameerr.InvalidPath, "not a legal jump")
		}
	}
	return nil
}

// UpdateCones validates and applies path for the given user's color,
// moving the cone from path[0] to the last cell, recording the move, and
// reporting whether the player has now filled their complement home (a
// win).
func (s *State) UpdateCones(userID uint64, path []board.Point) (bool, error) {
	color, ok := s.PlayersColors[userID]
	if !ok {
		return false, gameerr.New(gameerr.NotYourCone, "no color assigned")
	}
	from := path[0]
	if c, occupied := s.Cones[from]; !occupied || c != color {
		return false, gameerr.New(gameerr.NotYourCone, "origin cell not yours")
	}
	if err := s.ValidatePath(path); err != nil {
		return false, err
	}
	to := path[len(path)-1]
	delete(s.Cones, from)
	s.Cones[to] = color
	s.pushMove(Move{Color: color, Path: append([]board.Point(nil), path...)})
	return s.hasWon(userID, color), nil
}

func (s *State) hasWon(userID uint64, color board.Color) bool {
	target := color.Complement()
	if !target.Valid() {
		return false
	}
	for _, p := range board.HomeCells(target) {
		if c, ok := s.Cones[p]; !ok || c != color {
			return false
		}
	}
	return true
}
