package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-tally/internal/apperror"
)

const BoardSize = 9

const (
	PlayerX Cell = "X"
	PlayerO Cell = "O"

	EmptyCell Cell = ""
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Cell is the content of one square: EmptyCell, PlayerX or PlayerO.
type Cell string

func (that Cell) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player's mark. EmptyCell maps to itself.
func (that Cell) Opponent() Cell {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// Board holds the nine cells of a single game in row-major order.
type Board struct {
	cells  [BoardSize]Cell
	winner Cell
	line   []int
}

func NewBoard() *Board {
	return &Board{}
}

// Reset empties every cell and forgets the winner and its highlighted line.
func (that *Board) Reset() {
	that.cells = [BoardSize]Cell{}
	that.winner = EmptyCell
	that.line = nil
}

// ApplyMove places player on cell. A failed move leaves the board untouched.
// It does not look for a winner.
func (that *Board) ApplyMove(cell int, player Cell) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !player.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownPlayer, player)
	}

	if that.cells[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.cells[cell] = player

	return nil
}

// Undo empties cell and forgets the current winner. Out of range cells are
// ignored.
func (that *Board) Undo(cell int) {
	if cell < 0 || cell >= BoardSize {
		return
	}

	that.cells[cell] = EmptyCell
	that.winner = EmptyCell
	that.line = nil
}

// CheckWinner reports whether player owns a full line. On success the player
// becomes the current winner and the line is kept for highlighting.
func (that *Board) CheckWinner(player Cell) bool {
	if !player.IsPlayer() {
		return false
	}

	for _, combo := range WinCombos {
		if that.cells[combo[0]] == player && that.cells[combo[1]] == player && that.cells[combo[2]] == player {
			that.winner = player
			that.line = []int{combo[0], combo[1], combo[2]}
			return true
		}
	}

	return false
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// LegalMoves returns the empty cell indices in ascending order.
func (that *Board) LegalMoves() []int {
	moves := make([]int, 0, BoardSize)
	for i, cell := range that.cells {
		if cell == EmptyCell {
			moves = append(moves, i)
		}
	}

	return moves
}

func (that *Board) Winner() (Cell, bool) {
	return that.winner, that.winner != EmptyCell
}

// WinningLine returns the cells of the line found by the last successful
// CheckWinner, or nil.
func (that *Board) WinningLine() []int {
	if that.line == nil {
		return nil
	}

	line := make([]int, len(that.line))
	copy(line, that.line)

	return line
}

func (that *Board) Cell(cell int) Cell {
	if cell < 0 || cell >= BoardSize {
		return EmptyCell
	}

	return that.cells[cell]
}

func (that *Board) Snapshot() Configuration {
	return Configuration(that.cells)
}
