package entity

import "strings"

const emptyCellSymbol = "_"

// Configuration is a value snapshot of all nine cells. Equal layouts compare
// equal, so it can key a map directly.
type Configuration [BoardSize]Cell

func (that Configuration) String() string {
	var sb strings.Builder
	sb.Grow(BoardSize)

	for _, cell := range that {
		if cell == EmptyCell {
			sb.WriteString(emptyCellSymbol)
			continue
		}
		sb.WriteString(string(cell))
	}

	return sb.String()
}

// MatchResult is the outcome of a finished game. An empty Winner is a draw.
type MatchResult struct {
	Winner Cell `json:"winner,omitempty"`
}

func Win(player Cell) MatchResult {
	return MatchResult{Winner: player}
}

func Draw() MatchResult {
	return MatchResult{}
}

func (that MatchResult) IsDraw() bool {
	return !that.Winner.IsPlayer()
}

func (that MatchResult) String() string {
	if that.IsDraw() {
		return "Draw"
	}

	return "Winner: " + string(that.Winner)
}
