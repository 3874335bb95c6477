package battle

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposePlacesByYThenX(t *testing.T) {
	g, collisions := Compose([]Deployment{
		{Owner: Player, UnitType: Infantry, Count: 5, X: 0, Y: 0},
		{Owner: Player, UnitType: Archers, Count: 5, X: 0, Y: 1},
	})
	assert.Empty(t, collisions)
	require.NotNil(t, g[0][0])
	require.NotNil(t, g[1][0])
	assert.Nil(t, g[0][1])
	assert.Equal(t, Cell{Owner: Player, UnitType: Archers, Count: 5}, *g[1][0])
	assert.Equal(t, 2, g.Occupied())
}

func TestComposeCollisionLastWriteWins(t *testing.T) {
	g, collisions := Compose(
		[]Deployment{{Owner: Player, UnitType: Infantry, Count: 3, X: 2, Y: 2}},
		[]Deployment{{Owner: Opponent, UnitType: Cavalry, Count: 4, X: 2, Y: 2}},
	)
	assert.Equal(t, []Coord{{X: 2, Y: 2}}, collisions)
	assert.Equal(t, Opponent, g.At(Coord{X: 2, Y: 2}).Owner)
	assert.Equal(t, 4, g.At(Coord{X: 2, Y: 2}).Count)
}

func TestComposeSkipsZeroAndOffGrid(t *testing.T) {
	g, collisions := Compose([]Deployment{
		{Owner: Player, UnitType: Infantry, Count: 0, X: 1, Y: 1},
		{Owner: Player, UnitType: Infantry, Count: 2, X: 5, Y: 1},
	})
	assert.Empty(t, collisions)
	assert.Equal(t, 0, g.Occupied())
	assert.Nil(t, g.At(Coord{X: 5, Y: 1}))
}

func TestGridJSONShape(t *testing.T) {
	g, _ := Compose([]Deployment{{Owner: Opponent, UnitType: Cavalry, Count: 1, X: 4, Y: 3}})
	data, err := json.Marshal(g)
	require.NoError(t, err)

	var rows [][]*Cell
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, GridSize)
	for _, row := range rows {
		assert.Len(t, row, GridSize)
	}
	require.NotNil(t, rows[3][4])
	assert.Equal(t, Opponent, rows[3][4].Owner)
	assert.Nil(t, rows[4][3])
}

func TestCellsIgnoresZeroCount(t *testing.T) {
	s := Cells(
		[]Deployment{{Count: 1, X: 0, Y: 0}, {Count: 0, X: 1, Y: 0}},
		[]Deployment{{Count: 2, X: 4, Y: 4}},
	)
	assert.Equal(t, CoordSet{{X: 0, Y: 0}: true, {X: 4, Y: 4}: true}, s)
}
