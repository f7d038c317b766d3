package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-tally/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tally/internal/diagram"
	"github.com/rocketscienceinc/tictactoe-tally/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tally/internal/history"
	"github.com/rocketscienceinc/tictactoe-tally/internal/tally"
	"github.com/rocketscienceinc/tictactoe-tally/internal/usecase"
)

const (
	colorX         = "12"
	colorO         = "9"
	colorHighlight = "10"
)

var errNotACell = errors.New("enter a number from 1 to 9")

type gameSession interface {
	Start()
	Reset()
	MakeTurn(ctx context.Context, cell int) (usecase.Turn, error)
	Board() *entity.Board
	Result() (entity.MatchResult, bool)
	IsFinished() bool
}

type matchHistory interface {
	All() []entity.MatchResult
	Tally() history.Scores
	Leader() (entity.Cell, int, bool)
}

type outcomeTally interface {
	Query() map[entity.Configuration]tally.WinCounts
	Len() int
}

// Console is a line-based terminal front end: a main menu, the board, the
// match history and the diagram export.
type Console struct {
	logger *slog.Logger

	in  io.Reader
	out *termenv.Output

	session     gameSession
	history     matchHistory
	tally       outcomeTally
	diagramPath string

	lines <-chan string
}

func New(
	logger *slog.Logger,
	in io.Reader,
	out *termenv.Output,
	session gameSession,
	history matchHistory,
	tally outcomeTally,
	diagramPath string,
) *Console {
	return &Console{
		logger: logger.With("component", "console"),

		in:  in,
		out: out,

		session:     session,
		history:     history,
		tally:       tally,
		diagramPath: diagramPath,
	}
}

// Run shows the main menu until the user quits, the input ends or ctx is
// canceled.
func (that *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	that.lines = that.readLines(ctx)

	for {
		that.printMenu()

		choice, ok := that.readLine(ctx)
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			if !that.play(ctx) {
				return nil
			}
		case "2":
			that.showHistory()
		case "3":
			if err := that.exportDiagram(); err != nil {
				that.printf("Could not export diagram: %v\n", err)
			}
		case "4", "q":
			return nil
		default:
			that.printf("Unknown option %q\n", choice)
		}
	}
}

// play runs games until the user goes back to the menu. It returns false if
// the input ended.
func (that *Console) play(ctx context.Context) bool {
	log := that.logger.With("method", "play")

	that.session.Start()

	for {
		that.printBoard()

		if that.session.IsFinished() {
			result, _ := that.session.Result()
			that.printf("Result: %s\n", result)
			that.printf("Play again? (y/n): ")

			answer, ok := that.readLine(ctx)
			if !ok {
				return false
			}

			if !strings.EqualFold(answer, "y") {
				return true
			}

			that.session.Reset()
			continue
		}

		that.printf("Your move (1-9, q to leave): ")

		line, ok := that.readLine(ctx)
		if !ok {
			return false
		}

		if line == "q" {
			return true
		}

		cell, err := parseCell(line)
		if err != nil {
			that.printf("%v\n", err)
			continue
		}

		turn, err := that.session.MakeTurn(ctx, cell)
		switch {
		case errors.Is(err, apperror.ErrCellOccupied):
			that.printf("Cell %d is already occupied, try again\n", cell+1)
			continue
		case errors.Is(err, apperror.ErrInvalidCell):
			that.printf("%v\n", errNotACell)
			continue
		case err != nil:
			log.Error("turn failed", "error", err)
			that.printf("Turn failed: %v\n", err)
			return true
		}

		if turn.OpponentCell != usecase.NoMove {
			that.printf("Opponent plays %d\n", turn.OpponentCell+1)
		}
	}
}

func (that *Console) showHistory() {
	that.printf("\nMatch history\n")

	results := that.history.All()
	if len(results) == 0 {
		that.printf("No matches played yet\n")
	}

	for i, result := range results {
		that.printf("%d. %s\n", i+1, result)
	}

	scores := that.history.Tally()
	that.printf("X: %d  O: %d  Draw: %d\n", scores.X, scores.O, scores.Draw)

	if leader, wins, ok := that.history.Leader(); ok {
		that.printf("Most wins: %s (%d)\n", leader, wins)
	} else {
		that.printf("No wins yet\n")
	}
}

func (that *Console) exportDiagram() error {
	if err := diagram.Export(that.diagramPath, that.tally.Query()); err != nil {
		return fmt.Errorf("failed to export tally: %w", err)
	}

	that.logger.Info("diagram exported", "path", that.diagramPath, "configurations", that.tally.Len())
	that.printf("Diagram written to %s (%d configurations)\n", that.diagramPath, that.tally.Len())

	return nil
}

func (that *Console) printMenu() {
	that.printf("\n%s\n", that.out.String("Tic Tac Toe").Bold())
	that.printf("1) Play\n2) History\n3) Export tally diagram\n4) Quit\n> ")
}

func (that *Console) printBoard() {
	board := that.session.Board()

	highlighted := make(map[int]bool)
	for _, cell := range board.WinningLine() {
		highlighted[cell] = true
	}

	var sb strings.Builder
	sb.WriteString("\n")

	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		for col := 0; col < 3; col++ {
			if col > 0 {
				sb.WriteString("|")
			}

			cell := row*3 + col
			sb.WriteString(that.renderCell(cell, board.Cell(cell), highlighted[cell]))
		}

		sb.WriteString("\n")
	}

	that.printf("%s", sb.String())
}

func (that *Console) renderCell(index int, cell entity.Cell, highlighted bool) string {
	var style termenv.Style

	switch cell {
	case entity.PlayerX:
		style = that.out.String(" X ").Foreground(that.out.Color(colorX)).Bold()
	case entity.PlayerO:
		style = that.out.String(" O ").Foreground(that.out.Color(colorO)).Bold()
	default:
		style = that.out.String(" " + strconv.Itoa(index+1) + " ").Faint()
	}

	if highlighted {
		style = style.Background(that.out.Color(colorHighlight))
	}

	return style.String()
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func (that *Console) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			that.logger.Error("failed to read input", "error", err)
		}
	}()

	return lines
}

func (that *Console) readLine(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-that.lines:
		return line, ok
	}
}

// parseCell maps the 1-9 keys shown on the board to cell indices.
func parseCell(line string) (int, error) {
	number, err := strconv.Atoi(line)
	if err != nil {
		return 0, errNotACell
	}

	return number - 1, nil
}
