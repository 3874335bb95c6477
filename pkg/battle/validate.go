package battle

import "math"

const (
	// RoundOneBudget is the troop budget each side gets in round 1.
	RoundOneBudget = 10
	// BaseRecruits is the flat part of every side's round-2 pool.
	BaseRecruits = 10
	// MaxRoundTwoPool bounds a carried round-2 pool. DerivePools never
	// produces more than BaseRecruits + RoundOneBudget plus a bonus below
	// 1.25 * RoundOneBudget.
	MaxRoundTwoPool = 2 * (BaseRecruits + RoundOneBudget)
)

// RoundRules is the count policy a submission is validated against.
type RoundRules struct {
	Round     int
	Owner     Owner
	Budget    int
	MinTotal  int
	AllowZero bool
}

// RoundOneRules returns the player's round-1 policy: 1..10 troops, every
// stack strictly positive.
func RoundOneRules() RoundRules {
	return RoundRules{Round: 1, Owner: Player, Budget: RoundOneBudget, MinTotal: 1}
}

// RoundTwoRules returns the player's round-2 policy for the given pool.
// Zero-count stacks are allowed and the player may deploy nothing.
func RoundTwoRules(pool int) RoundRules {
	return RoundRules{Round: 2, Owner: Player, Budget: pool, MinTotal: 0, AllowZero: true}
}

func (r RoundRules) ownerLabel() string {
	if r.Owner == Opponent {
		return "AI"
	}
	return "Player"
}

// Validate checks a submission and returns the owner-tagged deployments and
// the total troop count. Checks run one at a time over the whole submission
// so the first failing rule decides the reported error: unit types,
// coordinates, duplicate cells, forbidden cells, counts, then the total.
func Validate(inputs []DeploymentInput, rules RoundRules, forbidden CoordSet) ([]Deployment, int, error) {
	who := rules.ownerLabel()

	types := make([]UnitType, len(inputs))
	for i, in := range inputs {
		ut, ok := parseUnitTypeRaw(in.UnitType)
		if !ok {
			return nil, 0, newError(InvalidUnitType,
				"Invalid unit_type in deployment %d. Must be one of %v.", i, AllUnitTypes())
		}
		types[i] = ut
	}

	coords := make([]Coord, len(inputs))
	for i, in := range inputs {
		x, okX := parseInt(in.X)
		y, okY := parseInt(in.Y)
		c := Coord{X: x, Y: y}
		if !okX || !okY || !c.InBounds() {
			return nil, 0, newError(InvalidCoordinate,
				"Invalid coordinates in deployment %d. x and y must be integers from 0 to %d.", i, GridSize-1)
		}
		coords[i] = c
	}

	seen := make(CoordSet, len(coords))
	for _, c := range coords {
		if seen[c] {
			return nil, 0, newError(DuplicateCellInSubmission,
				"%s cannot deploy to the same cell %s twice in R%d.", who, c, rules.Round)
		}
		seen[c] = true
	}

	for _, c := range coords {
		if forbidden[c] {
			return nil, 0, newError(CellAlreadyOccupied,
				"Cell %s is already occupied from a previous round.", c)
		}
	}

	counts := make([]int, len(inputs))
	for i, in := range inputs {
		n, ok := parseInt(in.UnitCount)
		switch {
		case !ok:
			return nil, 0, newError(InvalidCount, "Invalid unit_count in deployment %d. Must be an integer.", i)
		case n < 0:
			return nil, 0, newError(InvalidCount, "Invalid unit_count in deployment %d. Must not be negative.", i)
		case n == 0 && !rules.AllowZero:
			return nil, 0, newError(InvalidCount, "Invalid unit_count in deployment %d. Must be a positive integer in R%d.", i, rules.Round)
		}
		counts[i] = n
	}

	total := 0
	for _, n := range counts {
		if total > math.MaxInt-n {
			total = math.MaxInt
			break
		}
		total += n
	}
	if total > rules.Budget {
		return nil, 0, newError(BudgetExceeded,
			"%s R%d deployment exceeds budget of %d (deployed %d).", who, rules.Round, rules.Budget, total)
	}
	if total < rules.MinTotal {
		return nil, 0, newError(BelowMinimumCommitment,
			"%s must deploy at least %d unit in Round %d.", who, rules.MinTotal, rules.Round)
	}

	deployments := make([]Deployment, len(inputs))
	for i := range inputs {
		deployments[i] = Deployment{
			Owner:    rules.Owner,
			UnitType: types[i],
			Count:    counts[i],
			X:        coords[i].X,
			Y:        coords[i].Y,
		}
	}
	return deployments, total, nil
}
