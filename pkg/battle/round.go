package battle

import "math"

// Army is one side's force for a round as reported to the client.
type Army struct {
	Type     UnitType `json:"type"`
	Count    int      `json:"count"`
	Strength float64  `json:"strength"`
}

// RoundOutcome is the result of one round of combat.
type RoundOutcome struct {
	PlayerArmy   Army   `json:"player_army"`
	OpponentArmy Army   `json:"ai_army"`
	Winner       Winner `json:"round_winner"`
}

// ResolveRound scores two armies against each other. Effective strength is
// count times the type multiplier, and zero troops are always worth zero.
// The strictly stronger side wins; equal strength is a Draw.
func ResolveRound(playerType UnitType, playerCount int, opponentType UnitType, opponentCount int) RoundOutcome {
	pMul, oMul := Multipliers(playerType, opponentType)
	out := RoundOutcome{
		PlayerArmy:   Army{Type: playerType, Count: playerCount, Strength: effective(playerCount, pMul)},
		OpponentArmy: Army{Type: opponentType, Count: opponentCount, Strength: effective(opponentCount, oMul)},
		Winner:       Draw,
	}
	switch {
	case out.PlayerArmy.Strength > out.OpponentArmy.Strength:
		out.Winner = WinnerPlayer
	case out.OpponentArmy.Strength > out.PlayerArmy.Strength:
		out.Winner = WinnerOpponent
	}
	return out
}

func effective(count int, multiplier float64) float64 {
	if count <= 0 {
		return 0
	}
	return float64(count) * multiplier
}

// SummarizeArmy reduces a submission to one army: the dominant type (largest
// summed count, ties to the type seen first) and the total count. Zero-count
// stacks do not contribute a type.
func SummarizeArmy(deployments []Deployment) (UnitType, int) {
	totals := make(map[UnitType]int, 3)
	var order []UnitType
	count := 0
	for _, d := range deployments {
		if d.Count <= 0 {
			continue
		}
		if _, ok := totals[d.UnitType]; !ok {
			order = append(order, d.UnitType)
		}
		totals[d.UnitType] += d.Count
		count += d.Count
	}
	var dominant UnitType
	best := 0
	for _, t := range order {
		if totals[t] > best {
			dominant, best = t, totals[t]
		}
	}
	return dominant, count
}

// RecruitmentPool is a side's round-2 budget.
type RecruitmentPool struct {
	BaseRecruits int `json:"base_recruits"`
	Bonus        int `json:"bonus"`
	Total        int `json:"total_r2_pool"`
}

// DerivePools computes both sides' round-2 pools from the round-1 outcome.
// Base recruits reward committing fewer troops in round 1; the winner also
// gets the floored strength difference as a bonus.
func DerivePools(r1 RoundOutcome) (player, opponent RecruitmentPool) {
	bonus := int(math.Floor(math.Abs(r1.PlayerArmy.Strength - r1.OpponentArmy.Strength)))
	player = RecruitmentPool{BaseRecruits: baseRecruits(r1.PlayerArmy.Count)}
	opponent = RecruitmentPool{BaseRecruits: baseRecruits(r1.OpponentArmy.Count)}
	switch r1.Winner {
	case WinnerPlayer:
		player.Bonus = bonus
	case WinnerOpponent:
		opponent.Bonus = bonus
	}
	player.Total = max(0, player.BaseRecruits+player.Bonus)
	opponent.Total = max(0, opponent.BaseRecruits+opponent.Bonus)
	return player, opponent
}

func baseRecruits(r1Count int) int {
	return BaseRecruits + (RoundOneBudget - r1Count)
}
