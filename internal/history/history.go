package history

import "github.com/rocketscienceinc/tictactoe-tally/internal/entity"

// Scores aggregates the results kept in a MatchHistory.
type Scores struct {
	X    int `json:"X"`
	O    int `json:"O"`
	Draw int `json:"draw"`
}

// MatchHistory is an append-only log of finished matches.
type MatchHistory struct {
	results []entity.MatchResult
}

func New() *MatchHistory {
	return &MatchHistory{}
}

func (that *MatchHistory) Append(result entity.MatchResult) {
	that.results = append(that.results, result)
}

// All returns the results in the order they were appended.
func (that *MatchHistory) All() []entity.MatchResult {
	results := make([]entity.MatchResult, len(that.results))
	copy(results, that.results)

	return results
}

func (that *MatchHistory) Len() int {
	return len(that.results)
}

func (that *MatchHistory) Tally() Scores {
	var scores Scores
	for _, result := range that.results {
		switch result.Winner {
		case entity.PlayerX:
			scores.X++
		case entity.PlayerO:
			scores.O++
		default:
			scores.Draw++
		}
	}

	return scores
}

// Leader returns the player with the most wins. Draws never lead and a tie
// goes to X. ok is false while nobody has won.
func (that *MatchHistory) Leader() (entity.Cell, int, bool) {
	scores := that.Tally()

	leader, best := entity.EmptyCell, 0
	for _, candidate := range []struct {
		player entity.Cell
		wins   int
	}{
		{entity.PlayerX, scores.X},
		{entity.PlayerO, scores.O},
	} {
		if candidate.wins > best {
			leader, best = candidate.player, candidate.wins
		}
	}

	return leader, best, leader != entity.EmptyCell
}
