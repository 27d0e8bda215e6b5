package brackets

import (
	"sort"

	"github.com/Dosada05/chess-federation/models"
)

type StandingPlayer struct {
	ID   int
	Name string
}

type StandingMatch struct {
	Player1ID int
	Player2ID int
	Result    string
}

// PointsFor returns what playerID scored in m: 1 for a win, 0.5 for a draw
// regardless of colour, 0 otherwise (including unknown or empty results).
func PointsFor(playerID int, m StandingMatch) float64 {
	switch {
	case m.Result == models.ResultWhiteWins && m.Player1ID == playerID:
		return 1
	case m.Result == models.ResultBlackWins && m.Player2ID == playerID:
		return 1
	case m.Result == models.ResultDraw && (m.Player1ID == playerID || m.Player2ID == playerID):
		return 0.5
	default:
		return 0
	}
}

// ComputeStandings aggregates match results into points per player.
//
// Every registered player gets a row, even without a single game. Player ids that
// only show up in matches are appended after the registered ones with an empty name.
// The result is ordered by points descending; equal points keep the input order.
func ComputeStandings(players []StandingPlayer, matches []StandingMatch) []models.Standing {
	standings := make([]models.Standing, 0, len(players))
	index := make(map[int]int, len(players))

	entry := func(id int, name string) int {
		if i, ok := index[id]; ok {
			return i
		}
		standings = append(standings, models.Standing{PlayerID: id, PlayerName: name})
		index[id] = len(standings) - 1
		return index[id]
	}

	for _, p := range players {
		entry(p.ID, p.Name)
	}

	for _, m := range matches {
		i := entry(m.Player1ID, "")
		standings[i].Points += PointsFor(m.Player1ID, m)
		if m.Player2ID == m.Player1ID {
			continue
		}
		j := entry(m.Player2ID, "")
		standings[j].Points += PointsFor(m.Player2ID, m)
	}

	sort.SliceStable(standings, func(a, b int) bool {
		return standings[a].Points > standings[b].Points
	})

	return standings
}
