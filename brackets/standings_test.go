package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointsByID(t *testing.T, players []StandingPlayer, matches []StandingMatch) map[int]float64 {
	t.Helper()
	out := make(map[int]float64)
	for _, s := range ComputeStandings(players, matches) {
		out[s.PlayerID] = s.Points
	}
	return out
}

var threePlayers = []StandingPlayer{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bruno"}, {ID: 3, Name: "Carla"}}

func TestComputeStandings_ExampleScenario(t *testing.T) {
	players := []StandingPlayer{{ID: 1, Name: "P1"}, {ID: 2, Name: "P2"}}
	matches := []StandingMatch{{Player1ID: 1, Player2ID: 2, Result: "1-0"}}

	got := ComputeStandings(players, matches)

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].PlayerID)
	assert.Equal(t, 1.0, got[0].Points)
	assert.Equal(t, 2, got[1].PlayerID)
	assert.Equal(t, 0.0, got[1].Points)
}

func TestComputeStandings_NoMatchesEveryoneZero(t *testing.T) {
	got := ComputeStandings(threePlayers, nil)

	require.Len(t, got, 3)
	for i, s := range got {
		assert.Equal(t, threePlayers[i].ID, s.PlayerID, "ties keep input order")
		assert.Zero(t, s.Points)
	}
}

func TestComputeStandings_Scoring(t *testing.T) {
	tests := []struct {
		name   string
		result string
		want   map[int]float64
	}{
		{"white wins", "1-0", map[int]float64{1: 1, 2: 0, 3: 0}},
		{"black wins", "0-1", map[int]float64{1: 0, 2: 1, 3: 0}},
		{"draw", "1/2-1/2", map[int]float64{1: 0.5, 2: 0.5, 3: 0}},
		{"not played", "", map[int]float64{1: 0, 2: 0, 3: 0}},
		{"forfeit", "forfeit", map[int]float64{1: 0, 2: 0, 3: 0}},
		{"asterisk", "*", map[int]float64{1: 0, 2: 0, 3: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pointsByID(t, threePlayers, []StandingMatch{{Player1ID: 1, Player2ID: 2, Result: tt.result}})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeStandings_DrawIndependentOfSeat(t *testing.T) {
	a := pointsByID(t, threePlayers, []StandingMatch{{Player1ID: 1, Player2ID: 2, Result: "1/2-1/2"}})
	b := pointsByID(t, threePlayers, []StandingMatch{{Player1ID: 2, Player2ID: 1, Result: "1/2-1/2"}})
	assert.Equal(t, a, b)
}

func TestComputeStandings_OrderedByPoints(t *testing.T) {
	matches := []StandingMatch{
		{Player1ID: 3, Player2ID: 1, Result: "1-0"},
		{Player1ID: 2, Player2ID: 3, Result: "1/2-1/2"},
		{Player1ID: 1, Player2ID: 2, Result: "0-1"},
	}

	got := ComputeStandings(threePlayers, matches)

	require.Len(t, got, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{got[0].PlayerID, got[1].PlayerID, got[2].PlayerID})
	assert.Equal(t, []float64{1.5, 1.5, 0}, []float64{got[0].Points, got[1].Points, got[2].Points})
	assert.Equal(t, "Bruno", got[0].PlayerName)
}

func TestComputeStandings_UnknownPlayerAppended(t *testing.T) {
	got := ComputeStandings(threePlayers, []StandingMatch{{Player1ID: 1, Player2ID: 99, Result: "0-1"}})

	require.Len(t, got, 4)
	assert.Equal(t, 99, got[0].PlayerID)
	assert.Equal(t, 1.0, got[0].Points)
	assert.Empty(t, got[0].PlayerName)
}

func TestComputeStandings_UnrecognisedResultIsNoOp(t *testing.T) {
	base := []StandingMatch{{Player1ID: 1, Player2ID: 2, Result: "1-0"}}
	withJunk := append(append([]StandingMatch(nil), base...), StandingMatch{Player1ID: 2, Player2ID: 3, Result: "forfeit"})

	assert.Equal(t, ComputeStandings(threePlayers, base), ComputeStandings(threePlayers, withJunk))
}

func TestPointsFor_NonParticipant(t *testing.T) {
	m := StandingMatch{Player1ID: 1, Player2ID: 2, Result: "1/2-1/2"}
	assert.Zero(t, PointsFor(3, m))
}
