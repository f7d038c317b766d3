package service

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-tally/internal/apperror"
)

// Board is the view of the game an opponent chooses from.
type Board interface {
	LegalMoves() []int
}

// Opponent picks the next cell for the computer player.
type Opponent interface {
	SelectMove(board Board) (int, error)
}

// RandomOpponent picks uniformly among the empty cells. It keeps no memory of
// past games.
type RandomOpponent struct {
	rnd *rand.Rand
}

func NewRandomOpponent(seed int64) *RandomOpponent {
	return &RandomOpponent{
		rnd: rand.New(rand.NewSource(seed)), //nolint: gosec // it's a game
	}
}

func (that *RandomOpponent) SelectMove(board Board) (int, error) {
	availableCells := board.LegalMoves()
	if len(availableCells) == 0 {
		return 0, fmt.Errorf("random opponent: %w", apperror.ErrNoLegalMoves)
	}

	return availableCells[that.rnd.Intn(len(availableCells))], nil
}
