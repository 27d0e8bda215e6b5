package brackets

import (
	"time"

	"github.com/Dosada05/chess-federation/models"
)

// TreeRow is one row of the tournaments LEFT JOIN rounds LEFT JOIN matches query.
// Round and match columns are nil when the outer join found nothing.
type TreeRow struct {
	TournamentID       int
	TournamentName     string
	TournamentLocation string
	TournamentMode     *string
	TournamentStart    time.Time
	TournamentEnd      *time.Time

	RoundID     *int
	RoundNumber *int

	MatchID   *int
	Player1ID *int
	Player2ID *int
	Result    *string
	PGN       *string
	Link      *string
}

type tournamentNode struct {
	tree   *models.TournamentTree
	rounds map[int]*models.RoundTree // by round_number
}

// BuildTournamentTree folds flat join rows into tournaments -> rounds -> matches.
// Tournaments and rounds keep the order of their first appearance in rows.
// A round without matches gets an empty match list, a tournament without rounds
// an empty round list.
func BuildTournamentTree(rows []TreeRow) []*models.TournamentTree {
	trees := make([]*models.TournamentTree, 0)
	nodes := make(map[int]*tournamentNode)

	for _, row := range rows {
		node, ok := nodes[row.TournamentID]
		if !ok {
			node = &tournamentNode{
				tree: &models.TournamentTree{
					ID:        row.TournamentID,
					Name:      row.TournamentName,
					Location:  row.TournamentLocation,
					Mode:      row.TournamentMode,
					StartDate: row.TournamentStart,
					EndDate:   row.TournamentEnd,
					Rounds:    []*models.RoundTree{},
				},
				rounds: make(map[int]*models.RoundTree),
			}
			nodes[row.TournamentID] = node
			trees = append(trees, node.tree)
		}

		if row.RoundNumber == nil {
			continue
		}

		round, ok := node.rounds[*row.RoundNumber]
		if !ok {
			round = &models.RoundTree{
				ID:      row.RoundID,
				Number:  *row.RoundNumber,
				Matches: []*models.MatchLeaf{},
			}
			node.rounds[*row.RoundNumber] = round
			node.tree.Rounds = append(node.tree.Rounds, round)
		}

		// LEFT JOIN отдаёт строку раунда без партий: player1_id == NULL.
		if row.Player1ID == nil {
			continue
		}

		round.Matches = append(round.Matches, &models.MatchLeaf{
			ID:        row.MatchID,
			Player1ID: *row.Player1ID,
			Player2ID: derefInt(row.Player2ID),
			Result:    derefString(row.Result),
			PGN:       row.PGN,
			Link:      row.Link,
		})
	}

	return trees
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
