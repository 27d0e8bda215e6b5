package brackets

import (
	"time"

	"github.com/Dosada05/chess-federation/models"
)

// HistoryRow is one match of a player joined with tournament, round and both player names.
type HistoryRow struct {
	MatchID             int
	TournamentName      string
	RoundNumber         int
	Player1ID           int
	Player2ID           int
	Player1Name         string
	Player2Name         string
	Result              string
	PGN                 *string
	Link                *string
	TournamentStartDate time.Time
	TournamentEndDate   *time.Time
}

// ClassifyOutcome tells whether the game was won, lost or drawn by playerID.
// At most one of the three is true; unrecognised results yield all false.
func ClassifyOutcome(playerID int, player1ID, player2ID int, result string) (victory, defeat, draw bool) {
	switch result {
	case models.ResultWhiteWins:
		victory = player1ID == playerID
		defeat = !victory && player2ID == playerID
	case models.ResultBlackWins:
		victory = player2ID == playerID
		defeat = !victory && player1ID == playerID
	case models.ResultDraw:
		draw = player1ID == playerID || player2ID == playerID
	}
	return victory, defeat, draw
}

// BuildPlayerHistory keeps the row order (the query sorts by tournament start
// date, then round number) and sums up the outcomes.
func BuildPlayerHistory(playerID int, rows []HistoryRow) *models.PlayerHistory {
	history := &models.PlayerHistory{
		PlayerID: playerID,
		Matches:  make([]models.PlayerMatch, 0, len(rows)),
	}

	for _, row := range rows {
		victory, defeat, draw := ClassifyOutcome(playerID, row.Player1ID, row.Player2ID, row.Result)

		opponent := row.Player1Name
		if row.Player1ID == playerID {
			opponent = row.Player2Name
		}

		history.Matches = append(history.Matches, models.PlayerMatch{
			MatchID:             row.MatchID,
			TournamentName:      row.TournamentName,
			RoundNumber:         row.RoundNumber,
			Player1ID:           row.Player1ID,
			Player2ID:           row.Player2ID,
			Player1Name:         row.Player1Name,
			Player2Name:         row.Player2Name,
			OpponentName:        opponent,
			Result:              row.Result,
			PGN:                 row.PGN,
			Link:                row.Link,
			TournamentStartDate: row.TournamentStartDate,
			TournamentEndDate:   row.TournamentEndDate,
			Victory:             victory,
			Defeat:              defeat,
			Draw:                draw,
		})

		if victory {
			history.TotalVictories++
		}
		if defeat {
			history.TotalDefeats++
		}
		if draw {
			history.TotalDraws++
		}
	}

	return history
}
