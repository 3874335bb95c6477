package battle

// FreeCells returns the cells not in occupied, in row-major order.
func FreeCells(occupied CoordSet) []Coord {
	free := make([]Coord, 0, GridSize*GridSize)
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			c := Coord{X: x, Y: y}
			if !occupied[c] {
				free = append(free, c)
			}
		}
	}
	return free
}

// Allocate spreads total troops of one type over distinct free cells picked
// in a random order drawn from rng. It uses min(total, free) cells; every
// cell but the last gets total/cells troops and the last absorbs the
// remainder, so the whole count is placed whenever a cell is free.
//
// It returns the deployments and the occupied set extended with the cells
// used. When no cell is free it returns no deployments and occupied is
// unchanged; the troops are not placed and the caller decides how to report
// it. occupied itself is never mutated.
func Allocate(rng Source, total int, unitType UnitType, owner Owner, occupied CoordSet) ([]Deployment, CoordSet) {
	next := occupied.Clone()
	if total <= 0 {
		return nil, next
	}
	free := FreeCells(occupied)
	if len(free) == 0 {
		return nil, next
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	cells := min(total, len(free))
	per := total / cells
	deployments := make([]Deployment, 0, cells)
	for i, c := range free[:cells] {
		n := per
		if i == cells-1 {
			n = total - per*(cells-1)
		}
		deployments = append(deployments, Deployment{
			Owner:    owner,
			UnitType: unitType,
			Count:    n,
			X:        c.X,
			Y:        c.Y,
		})
		next[c] = true
	}
	return deployments, next
}

// Placed sums the troop counts of deployments.
func Placed(deployments []Deployment) int {
	n := 0
	for _, d := range deployments {
		n += d.Count
	}
	return n
}
