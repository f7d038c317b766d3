package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-tally/internal/entity"
)

const DefaultChannel = "tictactoe:matches"

// MatchEvent is the message sent for every finished match.
type MatchEvent struct {
	ID         string    `json:"id"`
	Result     string    `json:"result"`
	Winner     string    `json:"winner,omitempty"`
	Board      string    `json:"board"`
	FinishedAt time.Time `json:"finished_at"`
}

// Publisher fans finished matches out over Redis pub/sub. Nothing is stored;
// subscribers that are not listening miss the event.
type Publisher struct {
	client  *redis.Client
	channel string
	now     func() time.Time
}

func NewPublisher(client *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}

	return &Publisher{
		client:  client,
		channel: channel,
		now:     time.Now,
	}
}

func (that *Publisher) Publish(ctx context.Context, result entity.MatchResult, config entity.Configuration) error {
	event := MatchEvent{
		ID:         uuid.NewString(),
		Result:     result.String(),
		Winner:     string(result.Winner),
		Board:      config.String(),
		FinishedAt: that.now().UTC(),
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal match event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish match event: %w", err)
	}

	return nil
}

func (that *Publisher) Channel() string {
	return that.channel
}
