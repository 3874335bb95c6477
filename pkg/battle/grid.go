package battle

import "fmt"

// GridSize is the width and height of the deployment grid.
const GridSize = 5

// Coord is a cell position on the grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InBounds reports whether c lies on the grid.
func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X < GridSize && c.Y >= 0 && c.Y < GridSize
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// CoordSet is a set of occupied cells.
type CoordSet map[Coord]bool

// Clone returns an independent copy of s. A nil set clones to an empty set.
func (s CoordSet) Clone() CoordSet {
	out := make(CoordSet, len(s))
	for c := range s {
		out[c] = true
	}
	return out
}

// Cells returns the cells occupied by the given deployments.
// Zero-count deployments occupy nothing.
func Cells(lists ...[]Deployment) CoordSet {
	s := make(CoordSet)
	for _, list := range lists {
		for _, d := range list {
			if d.Count > 0 {
				s[d.Coord()] = true
			}
		}
	}
	return s
}

// Cell is an occupied grid cell.
type Cell struct {
	Owner    Owner    `json:"owner"`
	UnitType UnitType `json:"unit_type"`
	Count    int      `json:"count"`
}

// Grid is the 5x5 map indexed as grid[y][x]. Empty cells are nil.
type Grid [GridSize][GridSize]*Cell

// At returns the cell at c, or nil when c is empty or off the grid.
func (g *Grid) At(c Coord) *Cell {
	if !c.InBounds() {
		return nil
	}
	return g[c.Y][c.X]
}

// Occupied returns the number of non-empty cells.
func (g *Grid) Occupied() int {
	n := 0
	for y := range g {
		for x := range g[y] {
			if g[y][x] != nil {
				n++
			}
		}
	}
	return n
}

// Compose builds a grid from deployment lists applied in order.
// Zero-count deployments place nothing. Off-grid deployments are skipped.
// A write to an already occupied cell replaces it and is reported in the
// returned collisions so the caller can log it.
func Compose(lists ...[]Deployment) (Grid, []Coord) {
	var g Grid
	var collisions []Coord
	for _, list := range lists {
		for _, d := range list {
			c := d.Coord()
			if d.Count <= 0 || !c.InBounds() {
				continue
			}
			if g[c.Y][c.X] != nil {
				collisions = append(collisions, c)
			}
			g[c.Y][c.X] = &Cell{Owner: d.Owner, UnitType: d.UnitType, Count: d.Count}
		}
	}
	return g, collisions
}
