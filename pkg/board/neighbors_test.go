package board

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func sortedPoints(pts []Point) []Point {
	out := append([]Point(nil), pts...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func requireNeighbors(t *testing.T, row, col int, want ...Point) {
	t.Helper()
	got, err := Neighbors(row, col)
	require.NoError(t, err)
	require.ElementsMatch(t, want, got, "neighbors(%d,%d)", row, col)
}

// Literal vectors transcribed from the original implementation's
// test_get_neighbors.
func TestNeighborsLiteralVectors(t *testing.T) {
	requireNeighbors(t, 0, 0, Point{1, 0}, Point{1, 1})
	requireNeighbors(t, 12, 7, Point{12, 6}, Point{12, 8}, Point{11, 7}, Point{11, 6}, Point{13, 7}, Point{13, 8})
	requireNeighbors(t, 5, 0, Point{5, 1}, Point{6, 0})
	requireNeighbors(t, 5, 7, Point{5, 6}, Point{5, 8}, Point{4, 2}, Point{4, 1}, Point{6, 6}, Point{6, 7})
	requireNeighbors(t, 5, 5, Point{5, 4}, Point{5, 6}, Point{4, 0}, Point{6, 5}, Point{6, 4})
	requireNeighbors(t, 4, 4, Point{3, 3}, Point{4, 3}, Point{5, 9}, Point{5, 10})
	requireNeighbors(t, 4, 1, Point{3, 0}, Point{3, 1}, Point{4, 0}, Point{4, 2}, Point{5, 6}, Point{5, 7})
	requireNeighbors(t, 4, 3, Point{3, 2}, Point{3, 3}, Point{4, 2}, Point{4, 4}, Point{5, 9}, Point{5, 8})
	requireNeighbors(t, 15, 5, Point{14, 4}, Point{14, 5}, Point{15, 4}, Point{15, 6}, Point{16, 0})
	requireNeighbors(t, 15, 10, Point{14, 9}, Point{14, 10}, Point{15, 9}, Point{15, 11}, Point{16, 4})
	requireNeighbors(t, 10, 0, Point{9, 0}, Point{9, 1}, Point{11, 0}, Point{11, 1}, Point{10, 1})
}

func TestNeighborsOutOfBounds(t *testing.T) {
	_, err := Neighbors(-1, 0)
	require.Error(t, err)
	_, err = Neighbors(21, 0)
	require.Error(t, err)
	_, err = Neighbors(0, 5)
	require.Error(t, err)
}

func TestNeighborsAreSymmetric(t *testing.T) {
	for r := 0; r < len(RowCount); r++ {
		for c := 0; c < RowCount[r]; c++ {
			ns, err := Neighbors(r, c)
			require.NoError(t, err)
			for _, n := range ns {
				back, err := Neighbors(n.Row, n.Col)
				require.NoError(t, err)
				require.Contains(t, sortedPoints(back), Point{r, c}, "neighbor relation not symmetric for %v -> %v", Point{r, c}, n)
			}
		}
	}
}

func TestHomeCellsCountPerColor(t *testing.T) {
	for _, c := range []Color{Purple, Green, Orange, Yellow, Red, Blue} {
		require.Len(t, HomeCells(c), 15, "color %v", c)
	}
}

func TestComplementPairing(t *testing.T) {
	require.Equal(t, Yellow, Purple.Complement())
	require.Equal(t, Purple, Yellow.Complement())
	require.Equal(t, Red, Green.Complement())
	require.Equal(t, Green, Red.Complement())
	require.Equal(t, Blue, Orange.Complement())
	require.Equal(t, Orange, Blue.Complement())
}
