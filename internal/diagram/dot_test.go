package diagram

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/rocketscienceinc/tictactoe-tally/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tally/internal/tally"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	xWins = entity.Configuration{
		entity.PlayerX, entity.PlayerX, entity.PlayerX,
		entity.PlayerO, entity.PlayerO,
	}
	oWins = entity.Configuration{
		entity.PlayerX, entity.PlayerX, entity.EmptyCell,
		entity.PlayerO, entity.PlayerO, entity.PlayerO,
		entity.EmptyCell, entity.EmptyCell, entity.PlayerX,
	}
)

var (
	nodeLine = regexp.MustCompile(`^\s*(\w+)\s*\[label="([^"]*)"\]`)
	edgeLine = regexp.MustCompile(`^\s*(\w+)\s*->\s*(\w+)\s*\[label="([^"]*)"\]`)
)

var defaultsBlock = map[string]bool{"graph": true, "node": true, "edge": true}

type edge struct {
	from, to, label string
}

// parseGraph returns the node labels and the edges between them.
func parseGraph(t *testing.T, out string) ([]string, []edge) {
	t.Helper()

	labels := make(map[string]string)
	var nodes []string
	var rawEdges [][]string

	for _, line := range strings.Split(out, "\n") {
		if match := edgeLine.FindStringSubmatch(line); match != nil {
			rawEdges = append(rawEdges, match[1:])
			continue
		}

		if match := nodeLine.FindStringSubmatch(line); match != nil && !defaultsBlock[match[1]] {
			labels[match[1]] = match[2]
			nodes = append(nodes, match[2])
		}
	}

	edges := make([]edge, 0, len(rawEdges))
	for _, raw := range rawEdges {
		edges = append(edges, edge{from: labels[raw[0]], to: labels[raw[1]], label: raw[2]})
	}

	return nodes, edges
}

func TestRender(t *testing.T) {
	t.Run("Nodes and labeled edges", func(t *testing.T) {
		// Given: a tally with two configurations
		outcomes := map[entity.Configuration]tally.WinCounts{
			xWins: {X: 2},
			oWins: {O: 1},
		}

		// When: rendering
		var buf bytes.Buffer
		err := Render(&buf, outcomes)

		// Then: the output is a labeled digraph
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(buf.String(), "digraph"))
		assert.Contains(t, buf.String(), `label="Outcome tally"`)

		// Then: every edge is kept, zero counts included
		nodes, edges := parseGraph(t, buf.String())
		assert.ElementsMatch(t, []string{"Winner: X", "Winner: O", "XXXOO____", "XX_OOO__X"}, nodes)
		assert.ElementsMatch(t, []edge{
			{from: "XXXOO____", to: "Winner: X", label: "2"},
			{from: "XXXOO____", to: "Winner: O", label: "0"},
			{from: "XX_OOO__X", to: "Winner: X", label: "0"},
			{from: "XX_OOO__X", to: "Winner: O", label: "1"},
		}, edges)
	})

	t.Run("Equal tallies give equal output", func(t *testing.T) {
		outcomes := map[entity.Configuration]tally.WinCounts{
			xWins: {X: 2},
			oWins: {O: 1},
		}

		var first, second bytes.Buffer
		require.NoError(t, Render(&first, outcomes))
		require.NoError(t, Render(&second, outcomes))

		assert.Equal(t, first.String(), second.String())
	})

	t.Run("Empty tally", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, Render(&buf, nil))

		nodes, edges := parseGraph(t, buf.String())
		assert.ElementsMatch(t, []string{"Winner: X", "Winner: O"}, nodes)
		assert.Empty(t, edges)
	})
}

func TestBuild(t *testing.T) {
	// Given: a tally with one configuration
	graph := Build(map[entity.Configuration]tally.WinCounts{xWins: {X: 3, O: 1}})

	// Then: the configuration has one edge per player
	state := graph.Node("XXXOO____")
	assert.Len(t, graph.FindEdges(state, graph.Node("Winner: X")), 1)
	assert.Len(t, graph.FindEdges(state, graph.Node("Winner: O")), 1)
}

func TestExport(t *testing.T) {
	// Given: a target inside a temp dir
	path := filepath.Join(t.TempDir(), "outcomes.gv")

	// When: exporting a tally
	err := Export(path, map[entity.Configuration]tally.WinCounts{xWins: {X: 1}})

	// Then: the file holds the rendered graph
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	_, edges := parseGraph(t, string(content))
	assert.Contains(t, edges, edge{from: "XXXOO____", to: "Winner: X", label: "1"})
}

func TestExport_BadPath(t *testing.T) {
	err := Export(filepath.Join(t.TempDir(), "missing", "outcomes.gv"), nil)

	assert.Error(t, err)
}
