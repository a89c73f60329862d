package gamestate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"starboard/pkg/board"
)

func pt(r, c int) board.Point { return board.Point{Row: r, Col: c} }

func TestAddConesPlacesFullHomeTriangle(t *testing.T) {
	s := New()
	require.NoError(t, s.AddCones(1, board.Yellow))
	require.Len(t, board.HomeCells(board.Yellow), 15)
	for _, p := range board.HomeCells(board.Yellow) {
		require.Equal(t, board.Yellow, s.Cones[p])
	}
	color, ok := s.ColorOf(1)
	require.True(t, ok)
	require.Equal(t, board.Yellow, color)
}

func TestAddConesRejectsTakenColor(t *testing.T) {
	s := New()
	require.NoError(t, s.AddCones(1, board.Yellow))
	err := s.AddCones(2, board.Yellow)
	require.Error(t, err)
}

func TestAddConesIdempotentForSameOwner(t *testing.T) {
	s := New()
	require.NoError(t, s.AddCones(1, board.Yellow))
	require.NoError(t, s.AddCones(1, board.Yellow))
}

func TestRemoveConesFreesColor(t *testing.T) {
	s := New()
	require.NoError(t, s.AddCones(1, board.Yellow))
	s.RemoveCones(1)
	_, ok := s.ColorOf(1)
	require.False(t, ok)
	require.NoError(t, s.AddCones(2, board.Yellow))
}

// Transcribed from the original implementation's test_can_jump.
func TestCanJump(t *testing.T) {
	s := New()
	s.Cones[pt(4, 0)] = board.Yellow

	ok, err := s.CanJump(pt(3, 0), pt(5, 5))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.CanJump(pt(3, 0), pt(3, 1))
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = s.CanJump(pt(3, 0), pt(3, 2))
	require.NoError(t, err)
	require.False(t, ok)

	s.Cones[pt(3, 1)] = board.Yellow

	ok, err = s.CanJump(pt(3, 0), pt(3, 2))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.CanJump(pt(3, 0), pt(5, 6))
	require.NoError(t, err)
	require.False(t, ok)
}

// Transcribed from the original implementation's test_validate_path.
func TestValidatePath(t *testing.T) {
	s := New()
	s.Cones[pt(4, 0)] = board.Yellow

	require.NoError(t, s.ValidatePath([]board.Point{pt(3, 0), pt(5, 5)}))
	require.Error(t, s.ValidatePath([]board.Point{pt(3, 0), pt(5, 5), pt(5, 6)}))
	require.NoError(t, s.ValidatePath([]board.Point{pt(3, 0), pt(3, 1)}))
	require.Error(t, s.ValidatePath([]board.Point{pt(3, 1), pt(3, 0), pt(5, 5)}))
	require.Error(t, s.ValidatePath([]board.Point{pt(3, 1)}))
	require.Error(t, s.ValidatePath([]board.Point{pt(3, 1), pt(3, 1)}))
}

// Transcribed from the original implementation's test_validate_path_regression.
func TestValidatePathRegressionFullPurpleHome(t *testing.T) {
	s := New()
	require.NoError(t, s.AddCones(123, board.Purple))
	require.NoError(t, s.ValidatePath([]board.Point{pt(3, 3), pt(5, 10)}))
}

func TestUpdateConesMovesOriginToDestination(t *testing.T) {
	s := New()
	s.Cones[pt(4, 0)] = board.Yellow
	s.PlayersColors[1] = board.Yellow

	finished, err := s.UpdateCones(1, []board.Point{pt(4, 0), pt(3, 0)})
	require.NoError(t, err)
	require.False(t, finished)
	_, stillThere := s.Cones[pt(4, 0)]
	require.False(t, stillThere)
	require.Equal(t, board.Yellow, s.Cones[pt(3, 0)])
}

func TestUpdateConesRejectsMovingSomeoneElsesCone(t *testing.T) {
	s := New()
	s.Cones[pt(4, 0)] = board.Yellow
	s.PlayersColors[1] = board.Blue

	_, err := s.UpdateCones(1, []board.Point{pt(4, 0), pt(3, 0)})
	require.Error(t, err)
}

func TestUpdateConesDetectsWin(t *testing.T) {
	s := New()
	s.PlayersColors[1] = board.Purple

	// Occupy 14 of yellow's 15 home cells with purple cones, and park the
	// 15th purple cone one step outside yellow's home at (15,5), which is
	// a direct neighbor of the one remaining empty cell (16,0).
	target := pt(16, 0)
	for _, p := range board.HomeCells(board.Yellow) {
		if p != target {
			s.Cones[p] = board.Purple
		}
	}
	origin := pt(15, 5)
	s.Cones[origin] = board.Purple

	finished, err := s.UpdateCones(1, []board.Point{origin, target})
	require.NoError(t, err)
	require.True(t, finished)
}
