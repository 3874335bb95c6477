package battle

// UnitType is one of the three troop types that can be deployed.
type UnitType string

const (
	Infantry UnitType = "infantry"
	Archers  UnitType = "archers"
	Cavalry  UnitType = "cavalry"
)

// AdvantageMultiplier is applied to the side whose type beats the other.
const AdvantageMultiplier = 1.25

// AllUnitTypes returns the deployable unit types in canonical order.
func AllUnitTypes() []UnitType {
	return []UnitType{Infantry, Archers, Cavalry}
}

// ParseUnitType returns the UnitType named by s and whether it is valid.
func ParseUnitType(s string) (UnitType, bool) {
	switch UnitType(s) {
	case Infantry, Archers, Cavalry:
		return UnitType(s), true
	}
	return "", false
}

// Valid reports whether u is one of the three deployable types.
func (u UnitType) Valid() bool {
	_, ok := ParseUnitType(string(u))
	return ok
}

// Beats reports whether u holds the type advantage over other.
// Infantry beats Archers, Archers beat Cavalry, Cavalry beats Infantry.
func (u UnitType) Beats(other UnitType) bool {
	switch u {
	case Infantry:
		return other == Archers
	case Archers:
		return other == Cavalry
	case Cavalry:
		return other == Infantry
	}
	return false
}

// Multipliers returns the strength multipliers for an attacker and a defender.
// At most one side gets AdvantageMultiplier; unknown types never do.
func Multipliers(attacker, defender UnitType) (float64, float64) {
	switch {
	case attacker.Beats(defender):
		return AdvantageMultiplier, 1.0
	case defender.Beats(attacker):
		return 1.0, AdvantageMultiplier
	default:
		return 1.0, 1.0
	}
}

// Owner identifies which side a deployment or grid cell belongs to.
type Owner string

const (
	Player   Owner = "P1"
	Opponent Owner = "AI"
)

// Winner is the outcome label for a round or a game.
type Winner string

const (
	WinnerPlayer   Winner = "Player"
	WinnerOpponent Winner = "AI"
	Draw           Winner = "Draw"
)
