package brackets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct{ a, b int }

func key(x, y int) pair {
	if x > y {
		x, y = y, x
	}
	return pair{x, y}
}

func checkAllPlayAll(t *testing.T, players []int, rounds []*PairedRound) {
	t.Helper()
	met := make(map[pair]int)
	for _, r := range rounds {
		inRound := make(map[int]bool)
		for _, p := range r.Pairings {
			assert.False(t, inRound[p.WhiteID], "player %d twice in round %d", p.WhiteID, r.Number)
			assert.False(t, inRound[p.BlackID], "player %d twice in round %d", p.BlackID, r.Number)
			inRound[p.WhiteID], inRound[p.BlackID] = true, true
			met[key(p.WhiteID, p.BlackID)]++
		}
	}
	for i := range players {
		for j := i + 1; j < len(players); j++ {
			assert.Equal(t, 1, met[key(players[i], players[j])], "pair %d-%d", players[i], players[j])
		}
	}
}

func TestRoundRobin_EvenPlayers(t *testing.T) {
	players := []int{11, 12, 13, 14, 15, 16}

	rounds, err := NewRoundRobinGenerator().GeneratePairings(context.Background(), GeneratePairingsParams{PlayerIDs: players, FirstRoundNumber: 1})

	require.NoError(t, err)
	require.Len(t, rounds, 5)
	for i, r := range rounds {
		assert.Equal(t, i+1, r.Number)
		assert.Len(t, r.Pairings, 3)
	}
	checkAllPlayAll(t, players, rounds)
}

func TestRoundRobin_OddPlayersGetBye(t *testing.T) {
	players := []int{1, 2, 3, 4, 5}

	rounds, err := NewRoundRobinGenerator().GeneratePairings(context.Background(), GeneratePairingsParams{PlayerIDs: players, FirstRoundNumber: 4})

	require.NoError(t, err)
	require.Len(t, rounds, 5)
	assert.Equal(t, 4, rounds[0].Number)
	for _, r := range rounds {
		assert.Len(t, r.Pairings, 2)
	}
	checkAllPlayAll(t, players, rounds)
}

func TestRoundRobin_DoubleSwapsColours(t *testing.T) {
	players := []int{1, 2, 3, 4}

	rounds, err := NewRoundRobinGenerator().GeneratePairings(context.Background(), GeneratePairingsParams{PlayerIDs: players, Double: true})

	require.NoError(t, err)
	require.Len(t, rounds, 6)
	assert.Equal(t, 1, rounds[0].Number)
	assert.Equal(t, 4, rounds[3].Number)
	for i := 0; i < 3; i++ {
		for j, p := range rounds[i].Pairings {
			q := rounds[i+3].Pairings[j]
			assert.Equal(t, p.WhiteID, q.BlackID)
			assert.Equal(t, p.BlackID, q.WhiteID)
		}
	}
}

func TestRoundRobin_InvalidInput(t *testing.T) {
	gen := NewRoundRobinGenerator()
	ctx := context.Background()

	_, err := gen.GeneratePairings(ctx, GeneratePairingsParams{PlayerIDs: []int{1}})
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)

	_, err = gen.GeneratePairings(ctx, GeneratePairingsParams{PlayerIDs: []int{1, 0}})
	assert.ErrorIs(t, err, ErrInvalidPlayerID)

	_, err = gen.GeneratePairings(ctx, GeneratePairingsParams{PlayerIDs: []int{1, 2, 1}})
	assert.ErrorIs(t, err, ErrDuplicatePlayer)
}

func TestRoundRobin_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRoundRobinGenerator().GeneratePairings(ctx, GeneratePairingsParams{PlayerIDs: []int{1, 2, 3}})
	assert.ErrorIs(t, err, context.Canceled)
}
