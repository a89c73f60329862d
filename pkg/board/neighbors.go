package board

// calculateShift mirrors the Rust original's calculate_shift: given the
// point-count delta between a row and the row above (or below) it, returns
// the pair of column offsets used to reach that row's two candidate
// neighbors. When the delta crosses the notch between a home triangle and
// the central hexagon, incr selects whether the second offset is one
// column right (shift+1) or one column left (shift-1) of the first.
func calculateShift(upShift int, incr bool) (int, int) {
	shift := upShift
	if abs(upShift) > 1 {
		shift = sign(upShift) * (abs(upShift) - 1) / 2
	}
	switch shift {
	case -1:
		return shift, shift + 1
	case 1:
		return shift, shift - 1
	case -5, 5:
		if incr {
			return shift, shift + 1
		}
		return shift, shift - 1
	default:
		return -1, -1
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

// Neighbors returns the set of cells directly adjacent to (row, col): up to
// two in the same row and up to two each in the rows above and below,
// filtered by board bounds and by the geometric continuity of the
// row-to-row transition (this is what prevents spurious neighbors across
// the notch where a home triangle meets the central hexagon).
func Neighbors(row, col int) ([]Point, error) {
	if !InBounds(row, col) {
		return nil, notInBounds(row, col)
	}
	lastRow := len(RowCount) - 1
	currentCount := RowCount[row]

	upperCount := -1
	if row < lastRow {
		upperCount = RowCount[row+1]
	}
	lowerCount := -1
	if row > 0 {
		lowerCount = RowCount[row-1]
	}

	upShift := 1
	if row < lastRow {
		upShift = upperCount - currentCount
	}
	downShift := 1
	if row > 0 {
		downShift = lowerCount - currentCount
	}

	us := [2]int{}
	us[0], us[1] = calculateShift(upShift, row <= 10)
	ds := [2]int{}
	ds[0], ds[1] = calculateShift(downShift, row >= 10)

	candidates := [6][2]int{
		{row, col - 1},
		{row, col + 1},
		{row - 1, col + ds[0]},
		{row - 1, col + ds[1]},
		{row + 1, col + us[0]},
		{row + 1, col + us[1]},
	}

	seen := make(map[Point]struct{}, 6)
	var out []Point
	for _, cand := range candidates {
		r, c := cand[0], cand[1]
		if !InBounds(r, c) {
			continue
		}
		sameCol := c == col
		continuous := (r < row && abs(downShift) <= 1) || (r > row && abs(upShift) <= 1)
		if sameCol && !continuous {
			continue
		}
		p := Point{Row: r, Col: c}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

func notInBounds(r, c int) error {
	return &outOfBoundsError{r: r, c: c}
}

type outOfBoundsError struct{ r, c int }

func (e *outOfBoundsError) Error() string {
	return Point{Row: e.r, Col: e.c}.String() + " is out of bounds"
}
