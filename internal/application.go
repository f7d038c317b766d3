package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-tally/internal/config"
	"github.com/rocketscienceinc/tictactoe-tally/internal/history"
	"github.com/rocketscienceinc/tictactoe-tally/internal/service"
	"github.com/rocketscienceinc/tictactoe-tally/internal/tally"
	"github.com/rocketscienceinc/tictactoe-tally/internal/transport/redis"
	"github.com/rocketscienceinc/tictactoe-tally/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-tally/transport/console"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run wires the game on top of the given terminal streams and blocks until
// the user quits or ctx is canceled.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Debug("opponent seeded", "seed", seed)

	outcomes := tally.New()
	matches := history.New()
	opponent := service.NewRandomOpponent(seed)

	var publisher usecase.ResultPublisher
	if conf.Redis.Enabled {
		client, err := redis.Connect(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis: %w", err)
		}

		defer func() {
			if err = client.Close(); err != nil {
				log.Error("could not close redis client", "error", err)
			}
		}()

		matchPublisher := redis.NewPublisher(client, conf.Redis.Channel)
		publisher = matchPublisher

		log.Info("Publishing match results", "addr", conf.Redis.GetRedisAddr(), "channel", matchPublisher.Channel())
	}

	session := usecase.NewGameSession(logger, opponent, outcomes, matches, publisher)

	var options []termenv.OutputOption
	if conf.NoColor {
		options = append(options, termenv.WithProfile(termenv.Ascii))
	}

	terminal := console.New(logger, in, termenv.NewOutput(out, options...), session, matches, outcomes, conf.DiagramPath)

	if err := terminal.Run(ctx); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	log.Info("Application stopped", "matches", matches.Len(), "configurations", outcomes.Len())

	return nil
}
