package history

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-tally/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchHistory_Append(t *testing.T) {
	// Given: an empty history
	matches := New()

	// When: results are appended
	matches.Append(entity.Win(entity.PlayerO))
	matches.Append(entity.Draw())
	matches.Append(entity.Win(entity.PlayerX))

	// Then: All returns them in arrival order
	expected := []entity.MatchResult{
		entity.Win(entity.PlayerO),
		entity.Draw(),
		entity.Win(entity.PlayerX),
	}
	require.Equal(t, expected, matches.All())
	assert.Equal(t, 3, matches.Len())
}

func TestMatchHistory_All(t *testing.T) {
	// Given: a history with one result
	matches := New()
	matches.Append(entity.Win(entity.PlayerX))

	// When: the returned slice is modified
	results := matches.All()
	results[0] = entity.Draw()

	// Then: the history is unaffected
	assert.Equal(t, entity.Win(entity.PlayerX), matches.All()[0])
}

func TestMatchHistory_Tally(t *testing.T) {
	t.Run("Counts wins and draws", func(t *testing.T) {
		// Given: X, X, Draw, O
		matches := New()
		matches.Append(entity.Win(entity.PlayerX))
		matches.Append(entity.Win(entity.PlayerX))
		matches.Append(entity.Draw())
		matches.Append(entity.Win(entity.PlayerO))

		// When: tallying
		scores := matches.Tally()

		// Then: X leads with two wins
		assert.Equal(t, Scores{X: 2, O: 1, Draw: 1}, scores)

		leader, wins, ok := matches.Leader()
		require.True(t, ok)
		assert.Equal(t, entity.PlayerX, leader)
		assert.Equal(t, 2, wins)
	})

	t.Run("Empty history", func(t *testing.T) {
		matches := New()

		assert.Equal(t, Scores{}, matches.Tally())
		assert.Empty(t, matches.All())
	})
}

func TestMatchHistory_Leader(t *testing.T) {
	t.Run("O leads", func(t *testing.T) {
		// Given: O has more wins than X
		matches := New()
		matches.Append(entity.Win(entity.PlayerO))
		matches.Append(entity.Win(entity.PlayerX))
		matches.Append(entity.Win(entity.PlayerO))

		// When: asking for the leader
		leader, wins, ok := matches.Leader()

		// Then: O is returned
		require.True(t, ok)
		assert.Equal(t, entity.PlayerO, leader)
		assert.Equal(t, 2, wins)
	})

	t.Run("Tie goes to X", func(t *testing.T) {
		// Given: X and O have one win each
		matches := New()
		matches.Append(entity.Win(entity.PlayerO))
		matches.Append(entity.Win(entity.PlayerX))

		// When: asking for the leader
		leader, wins, ok := matches.Leader()

		// Then: X wins the tie-break
		require.True(t, ok)
		assert.Equal(t, entity.PlayerX, leader)
		assert.Equal(t, 1, wins)
	})

	t.Run("Draws never lead", func(t *testing.T) {
		// Given: only drawn games
		matches := New()
		matches.Append(entity.Draw())
		matches.Append(entity.Draw())

		// When: asking for the leader
		_, _, ok := matches.Leader()

		// Then: nobody leads
		assert.False(t, ok)
	})
}
