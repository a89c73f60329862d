// Package board defines the static star-shaped grid the game is played on:
// row/column coordinates, each cell's home color, and the adjacency rules
// used by move and jump validation.
package board

import (
	"encoding/json"
	"fmt"
)

// Color identifies a home triangle, or Neutral for the central hexagon.
type Color int

const (
	Neutral Color = iota
	Purple
	Green
	Orange
	Yellow
	Red
	Blue
)

func (c Color) String() string {
	switch c {
	case Neutral:
		return "neutral"
	case Purple:
		return "purple"
	case Green:
		return "green"
	case Orange:
		return "orange"
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

// Complement returns the home color a player of c must fill to win.
// Purple<->Yellow, Green<->Red, Orange<->Blue.
func (c Color) Complement() Color {
	if c < Purple || c > Blue {
		return Neutral
	}
	return Color((int(c)-1+3)%6 + 1)
}

// Valid reports whether c is one of the six playable colors (excludes Neutral).
func (c Color) Valid() bool {
	return c >= Purple && c <= Blue
}

// Point is a single cell's coordinate.
type Point struct {
	Row, Col int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// MarshalJSON renders a point as the wire-format [row,col] tuple rather
// than a {"Row":...,"Col":...} object.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.Row, p.Col})
}

// UnmarshalJSON parses a [row,col] tuple back into a Point.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("board: point must be a [row,col] tuple: %w", err)
	}
	p.Row, p.Col = pair[0], pair[1]
	return nil
}

// RowCount is the number of cells in each of the 21 rows, top to bottom.
var RowCount = [21]int{1, 2, 3, 4, 5, 16, 15, 14, 13, 12, 11, 12, 13, 14, 15, 16, 5, 4, 3, 2, 1}

// homeColors[row][col] gives the fixed home color of that cell.
var homeColors = [21][]Color{
	row(Purple),
	row(Purple, Purple),
	row(Purple, Purple, Purple),
	row(Purple, Purple, Purple, Purple),
	row(Purple, Purple, Purple, Purple, Purple),
	row(Blue, Blue, Blue, Blue, Blue, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Green, Green, Green, Green, Green),
	row(Blue, Blue, Blue, Blue, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Green, Green, Green, Green),
	row(Blue, Blue, Blue, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Green, Green, Green),
	row(Blue, Blue, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Green, Green),
	row(Blue, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Green),
	row(Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral),
	row(Red, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Orange),
	row(Red, Red, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Orange, Orange),
	row(Red, Red, Red, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Orange, Orange, Orange),
	row(Red, Red, Red, Red, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Orange, Orange, Orange, Orange),
	row(Red, Red, Red, Red, Red, Neutral, Neutral, Neutral, Neutral, Neutral, Neutral, Orange, Orange, Orange, Orange, Orange),
	row(Yellow, Yellow, Yellow, Yellow, Yellow),
	row(Yellow, Yellow, Yellow, Yellow),
	row(Yellow, Yellow, Yellow),
	row(Yellow, Yellow),
	row(Yellow),
}

func row(colors ...Color) []Color { return colors }

// InBounds reports whether (row, col) addresses a real cell.
func InBounds(r, c int) bool {
	if r < 0 || r > 20 {
		return false
	}
	return c >= 0 && c < RowCount[r]
}

// HomeColor returns the fixed home color of (row, col).
func HomeColor(r, c int) (Color, error) {
	if !InBounds(r, c) {
		return Neutral, fmt.Errorf("board: out of bounds (%d,%d)", r, c)
	}
	return homeColors[r][c], nil
}

// HomeCells returns every cell whose home color is c.
func HomeCells(c Color) []Point {
	var out []Point
	for r, cols := range homeColors {
		for col, hc := range cols {
			if hc == c {
				out = append(out, Point{Row: r, Col: col})
			}
		}
	}
	return out
}
