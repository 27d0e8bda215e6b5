package brackets

import (
	"context"
	"fmt"
)

// bye marks the empty slot added when the number of players is odd.
const bye = 0

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() PairingGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "round-robin"
}

// GeneratePairings builds an all-play-all schedule with the circle method.
// For n players there are n-1 rounds (n rounds when n is odd, everybody sits out once);
// each pair of players meets exactly once per cycle.
func (g *RoundRobinGenerator) GeneratePairings(ctx context.Context, params GeneratePairingsParams) ([]*PairedRound, error) {
	if len(params.PlayerIDs) < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: %w (got %d)", ErrNotEnoughPlayers, len(params.PlayerIDs))
	}

	seen := make(map[int]struct{}, len(params.PlayerIDs))
	for _, id := range params.PlayerIDs {
		if id <= 0 {
			return nil, fmt.Errorf("RoundRobinGenerator: %w: %d", ErrInvalidPlayerID, id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("RoundRobinGenerator: %w: %d", ErrDuplicatePlayer, id)
		}
		seen[id] = struct{}{}
	}

	slots := append([]int(nil), params.PlayerIDs...)
	if len(slots)%2 == 1 {
		slots = append(slots, bye)
	}
	n := len(slots)

	firstNumber := params.FirstRoundNumber
	if firstNumber < 1 {
		firstNumber = 1
	}

	cycle := make([]*PairedRound, 0, n-1)
	for r := 0; r < n-1; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		round := &PairedRound{Number: firstNumber + r, Pairings: make([]Pairing, 0, n/2)}
		board := 0
		for i := 0; i < n/2; i++ {
			white, black := slots[i], slots[n-1-i]
			// Цвета чередуются по туру, чтобы у фиксированного игрока не было подряд одних белых.
			if (r+i)%2 == 1 {
				white, black = black, white
			}
			if white == bye || black == bye {
				continue
			}
			board++
			round.Pairings = append(round.Pairings, Pairing{Board: board, WhiteID: white, BlackID: black})
		}
		cycle = append(cycle, round)

		// slots[0] stays in place, the rest rotate clockwise.
		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}

	if !params.Double {
		return cycle, nil
	}

	rounds := make([]*PairedRound, 0, 2*len(cycle))
	rounds = append(rounds, cycle...)
	for i, first := range cycle {
		second := &PairedRound{Number: firstNumber + len(cycle) + i, Pairings: make([]Pairing, len(first.Pairings))}
		for j, p := range first.Pairings {
			second.Pairings[j] = Pairing{Board: p.Board, WhiteID: p.BlackID, BlackID: p.WhiteID}
		}
		rounds = append(rounds, second)
	}
	return rounds, nil
}
