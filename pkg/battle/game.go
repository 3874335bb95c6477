package battle

// Phase names where a game stands. Nothing persists it: the phase is implied
// by which round is being resolved and what carried state the caller sends.
type Phase string

const (
	RoundOneAwaited  Phase = "round_one_awaited"
	RoundOneResolved Phase = "round_one_resolved"
	RoundTwoAwaited  Phase = "round_two_awaited"
	RoundTwoResolved Phase = "round_two_resolved"
)

// RoundOneResult is everything round 1 produces. The deployment lists and
// pools must be echoed back by the caller for round 2.
type RoundOneResult struct {
	Results             RoundOutcome    `json:"round_1_results"`
	PlayerDeployments   []Deployment    `json:"player_r1_deployments"`
	OpponentDeployments []Deployment    `json:"ai_r1_deployments"`
	Map                 Grid            `json:"current_map_state"`
	PlayerPool          RecruitmentPool `json:"player_r2_data"`
	OpponentPool        RecruitmentPool `json:"ai_r2_data_for_r2"`
	OpponentChoice      ArmyChoice      `json:"ai_r1_army_details_for_r2"`
	Unplaced            int             `json:"unplaced,omitempty"`
	Collisions          []Coord         `json:"-"`
}

// Carried extracts the state round 2 needs from a round-1 result.
func (r *RoundOneResult) Carried() CarriedState {
	playerPool, opponentPool := r.PlayerPool.Total, r.OpponentPool.Total
	return CarriedState{
		PlayerR1:     r.PlayerDeployments,
		OpponentR1:   r.OpponentDeployments,
		PlayerPool:   &playerPool,
		OpponentPool: &opponentPool,
	}
}

// RoundTwoResult is the final round's outcome and the game winner.
type RoundTwoResult struct {
	Results             RoundOutcome `json:"round_2_results"`
	PlayerDeployments   []Deployment `json:"player_r2_deployments"`
	OpponentDeployments []Deployment `json:"ai_r2_deployments"`
	Map                 Grid         `json:"final_map_state"`
	GameWinner          Winner       `json:"game_winner"`
	Unplaced            int          `json:"unplaced,omitempty"`
	Collisions          []Coord      `json:"-"`
}

// CarriedState is the round-1 state supplied by the caller for round 2.
// A nil field means the caller did not send it.
type CarriedState struct {
	PlayerR1     []Deployment `json:"player_r1_deployments"`
	OpponentR1   []Deployment `json:"ai_r1_deployments"`
	PlayerPool   *int         `json:"player_r2_total_pool"`
	OpponentPool *int         `json:"ai_r2_total_pool"`
}

// Check verifies the carried state is present and internally sane.
// It does not recompute anything: the values are taken as given.
func (c CarriedState) Check() error {
	if c.PlayerR1 == nil || c.OpponentR1 == nil {
		return newError(MissingCarriedState, "Missing R1 deployment data from client.")
	}
	if c.OpponentPool == nil {
		return newError(MissingCarriedState, "Missing AI R2 data from client.")
	}
	if c.PlayerPool == nil {
		return newError(MissingCarriedState, "Missing player R2 pool from client.")
	}
	if *c.OpponentPool < 0 || *c.PlayerPool < 0 {
		return newError(MalformedRequest, "R2 pools must not be negative.")
	}
	if *c.OpponentPool > MaxRoundTwoPool || *c.PlayerPool > MaxRoundTwoPool {
		return newError(MalformedRequest, "R2 pools must be at most %d.", MaxRoundTwoPool)
	}
	for _, list := range [][]Deployment{c.PlayerR1, c.OpponentR1} {
		for _, d := range list {
			if !d.UnitType.Valid() || !d.Coord().InBounds() || d.Count <= 0 {
				return newError(MalformedRequest, "Invalid R1 deployment %dx %s at %s in carried state.",
					d.Count, d.UnitType, d.Coord())
			}
		}
	}
	return nil
}

// Game resolves rounds for one request. It holds no state between rounds.
type Game struct {
	rng Source
}

// NewGame creates a Game drawing opponent choices from rng.
// A nil rng uses DefaultSource.
func NewGame(rng Source) *Game {
	if rng == nil {
		rng = DefaultSource()
	}
	return &Game{rng: rng}
}

// PlayRoundOne validates the player's round-1 submission, deploys the
// opponent, scores the round and derives both round-2 pools.
func (g *Game) PlayRoundOne(inputs []DeploymentInput) (*RoundOneResult, error) {
	player, _, err := Validate(inputs, RoundOneRules(), nil)
	if err != nil {
		return nil, err
	}

	choice := ChooseRoundOne(g.rng)
	opponent, _ := Allocate(g.rng, choice.Count, choice.Type, Opponent, Cells(player))
	placed := Placed(opponent)

	pType, pCount := SummarizeArmy(player)
	outcome := ResolveRound(pType, pCount, choice.Type, placed)
	playerPool, opponentPool := DerivePools(outcome)
	grid, collisions := Compose(player, opponent)

	return &RoundOneResult{
		Results:             outcome,
		PlayerDeployments:   player,
		OpponentDeployments: nonNil(opponent),
		Map:                 grid,
		PlayerPool:          playerPool,
		OpponentPool:        opponentPool,
		OpponentChoice:      ArmyChoice{Type: choice.Type, Count: placed},
		Unplaced:            choice.Count - placed,
		Collisions:          collisions,
	}, nil
}

// PlayRoundTwo resolves the final round on top of the carried round-1 map.
// Round-1 cells are off limits to both sides. The round-2 winner wins the game.
func (g *Game) PlayRoundTwo(inputs []DeploymentInput, carried CarriedState) (*RoundTwoResult, error) {
	if err := carried.Check(); err != nil {
		return nil, err
	}
	playerR1 := withOwner(carried.PlayerR1, Player)
	opponentR1 := withOwner(carried.OpponentR1, Opponent)

	player, _, err := Validate(inputs, RoundTwoRules(*carried.PlayerPool), Cells(playerR1, opponentR1))
	if err != nil {
		return nil, err
	}

	choice := ChooseRoundTwo(g.rng, *carried.OpponentPool)
	opponent, _ := Allocate(g.rng, choice.Count, choice.Type, Opponent, Cells(playerR1, opponentR1, player))
	placed := Placed(opponent)

	pType, pCount := SummarizeArmy(player)
	outcome := ResolveRound(pType, pCount, choice.Type, placed)
	grid, collisions := Compose(playerR1, opponentR1, player, opponent)

	return &RoundTwoResult{
		Results:             outcome,
		PlayerDeployments:   player,
		OpponentDeployments: nonNil(opponent),
		Map:                 grid,
		GameWinner:          outcome.Winner,
		Unplaced:            choice.Count - placed,
		Collisions:          collisions,
	}, nil
}

func withOwner(list []Deployment, owner Owner) []Deployment {
	out := make([]Deployment, len(list))
	for i, d := range list {
		d.Owner = owner
		out[i] = d
	}
	return out
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil(list []Deployment) []Deployment {
	if list == nil {
		return []Deployment{}
	}
	return list
}

// Equal reports whether two carried states describe the same round-1 board
// and pools. Owner tags and nil-versus-empty lists are not significant.
func (c CarriedState) Equal(o CarriedState) bool {
	return sameDeployments(withOwner(c.PlayerR1, Player), withOwner(o.PlayerR1, Player)) &&
		sameDeployments(withOwner(c.OpponentR1, Opponent), withOwner(o.OpponentR1, Opponent)) &&
		samePool(c.PlayerPool, o.PlayerPool) &&
		samePool(c.OpponentPool, o.OpponentPool)
}

func sameDeployments(a, b []Deployment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func samePool(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
