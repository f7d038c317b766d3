package tally

import "github.com/rocketscienceinc/tictactoe-tally/internal/entity"

// WinCounts holds how many times each player won from one configuration.
type WinCounts struct {
	X int `json:"X"`
	O int `json:"O"`
}

func (that WinCounts) For(player entity.Cell) int {
	switch player {
	case entity.PlayerX:
		return that.X
	case entity.PlayerO:
		return that.O
	default:
		return 0
	}
}

// Snapshotter is anything that can hand out its current configuration.
type Snapshotter interface {
	Snapshot() entity.Configuration
}

// OutcomeTally counts wins per terminal board configuration for the lifetime
// of the process. Counts never decrease. It is not safe for concurrent use.
type OutcomeTally struct {
	entries map[entity.Configuration]*WinCounts
}

func New() *OutcomeTally {
	return &OutcomeTally{
		entries: make(map[entity.Configuration]*WinCounts),
	}
}

// Record snapshots the board and credits winner for that layout. A draw
// (EmptyCell) creates the entry but credits nobody.
func (that *OutcomeTally) Record(board Snapshotter, winner entity.Cell) {
	config := board.Snapshot()

	counts, ok := that.entries[config]
	if !ok {
		counts = &WinCounts{}
		that.entries[config] = counts
	}

	switch winner {
	case entity.PlayerX:
		counts.X++
	case entity.PlayerO:
		counts.O++
	}
}

// Query returns a copy of every entry.
func (that *OutcomeTally) Query() map[entity.Configuration]WinCounts {
	result := make(map[entity.Configuration]WinCounts, len(that.entries))
	for config, counts := range that.entries {
		result[config] = *counts
	}

	return result
}

func (that *OutcomeTally) Len() int {
	return len(that.entries)
}
