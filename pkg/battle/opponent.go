package battle

// ArmyChoice is the opponent's pick for a round before it is placed.
type ArmyChoice struct {
	Type  UnitType `json:"type"`
	Count int      `json:"count"`
}

// ChooseRoundOne picks the opponent's round-1 army: a uniform type and a
// count uniform in [1, RoundOneBudget].
func ChooseRoundOne(rng Source) ArmyChoice {
	return ArmyChoice{Type: randomType(rng), Count: 1 + rng.Intn(RoundOneBudget)}
}

// ChooseRoundTwo picks the opponent's round-2 army: a uniform type and a
// count uniform in [0, pool].
func ChooseRoundTwo(rng Source, pool int) ArmyChoice {
	choice := ArmyChoice{Type: randomType(rng)}
	if pool > 0 {
		choice.Count = rng.Intn(pool + 1)
	}
	return choice
}

func randomType(rng Source) UnitType {
	types := AllUnitTypes()
	return types[rng.Intn(len(types))]
}
