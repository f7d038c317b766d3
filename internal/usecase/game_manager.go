package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-tally/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tally/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tally/internal/service"
	"github.com/rocketscienceinc/tictactoe-tally/internal/tally"
)

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusDrawn      = "drawn"

	// HumanMark always opens the game.
	HumanMark    = entity.PlayerX
	OpponentMark = entity.PlayerO

	NoMove = -1
)

type outcomeTally interface {
	Record(board tally.Snapshotter, winner entity.Cell)
}

type matchHistory interface {
	Append(result entity.MatchResult)
}

// ResultPublisher is told about every finished match.
type ResultPublisher interface {
	Publish(ctx context.Context, result entity.MatchResult, config entity.Configuration) error
}

// Turn describes what happened during one call to MakeTurn.
type Turn struct {
	HumanCell    int
	OpponentCell int
	Status       string
}

// GameSession drives a single board through human and opponent moves and
// reports finished games to the tally, the history and the publisher. One
// session is meant to be used by one driver at a time.
type GameSession struct {
	logger *slog.Logger

	opponent  service.Opponent
	tally     outcomeTally
	history   matchHistory
	publisher ResultPublisher

	board  *entity.Board
	status string
	result entity.MatchResult
}

// NewGameSession builds a session in the not started state. publisher may be
// nil.
func NewGameSession(
	logger *slog.Logger,
	opponent service.Opponent,
	tally outcomeTally,
	history matchHistory,
	publisher ResultPublisher,
) *GameSession {
	return &GameSession{
		logger: logger.With("component", "game_session"),

		opponent:  opponent,
		tally:     tally,
		history:   history,
		publisher: publisher,

		board:  entity.NewBoard(),
		status: StatusNotStarted,
	}
}

// Start begins a new game. It is the same as Reset.
func (that *GameSession) Start() {
	that.Reset()
}

// Reset discards the current board and starts over, whatever the state.
func (that *GameSession) Reset() {
	that.board.Reset()
	that.result = entity.MatchResult{}
	that.status = StatusInProgress

	that.logger.Debug("game started")
}

// MakeTurn plays cell for the human and answers with the opponent's move
// unless the human move ended the game. If the opponent cannot answer, the
// human move is taken back so X and O keep alternating.
func (that *GameSession) MakeTurn(ctx context.Context, cell int) (Turn, error) {
	log := that.logger.With("method", "MakeTurn", "cell", cell)

	turn := Turn{HumanCell: cell, OpponentCell: NoMove, Status: that.status}

	if err := that.confirmInProgress(); err != nil {
		return turn, err
	}

	if err := that.board.ApplyMove(cell, HumanMark); err != nil {
		return turn, fmt.Errorf("failed to make turn: %w", err)
	}

	if that.settle(ctx, HumanMark) {
		turn.Status = that.status
		return turn, nil
	}

	opponentCell, err := that.opponent.SelectMove(that.board)
	if err != nil {
		that.board.Undo(cell)
		return turn, fmt.Errorf("opponent failed to select move: %w", err)
	}

	if err = that.board.ApplyMove(opponentCell, OpponentMark); err != nil {
		that.board.Undo(cell)
		return turn, fmt.Errorf("opponent failed to make turn: %w", err)
	}

	log.Debug("opponent moved", "opponent_cell", opponentCell)

	turn.OpponentCell = opponentCell
	that.settle(ctx, OpponentMark)
	turn.Status = that.status

	return turn, nil
}

func (that *GameSession) Status() string {
	return that.status
}

// Result returns the outcome once the game has ended.
func (that *GameSession) Result() (entity.MatchResult, bool) {
	return that.result, that.IsFinished()
}

func (that *GameSession) IsFinished() bool {
	return that.status == StatusWon || that.status == StatusDrawn
}

// Board exposes the live board for rendering. Callers must not move on it.
func (that *GameSession) Board() *entity.Board {
	return that.board
}

func (that *GameSession) confirmInProgress() error {
	switch that.status {
	case StatusNotStarted:
		return apperror.ErrGameIsNotStarted
	case StatusWon, StatusDrawn:
		return apperror.ErrGameFinished
	default:
		return nil
	}
}

// settle checks the mover's line first and fullness second, finishing the
// game if either holds.
func (that *GameSession) settle(ctx context.Context, mover entity.Cell) bool {
	switch {
	case that.board.CheckWinner(mover):
		that.finish(ctx, StatusWon, entity.Win(mover))
	case that.board.IsFull():
		that.finish(ctx, StatusDrawn, entity.Draw())
	default:
		return false
	}

	return true
}

func (that *GameSession) finish(ctx context.Context, status string, result entity.MatchResult) {
	log := that.logger.With("method", "finish")

	that.status = status
	that.result = result

	that.tally.Record(that.board, result.Winner)
	that.history.Append(result)

	config := that.board.Snapshot()
	log.Info("game finished", "result", result.String(), "board", config.String())

	if that.publisher == nil {
		return
	}

	if err := that.publisher.Publish(ctx, result, config); err != nil {
		log.Error("failed to publish match result", "error", err)
	}
}
