// Package diagram renders the outcome tally as a Graphviz digraph: one node
// per terminal configuration and one edge per player, labeled with the
// number of wins.
package diagram

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/emicklei/dot"

	"github.com/rocketscienceinc/tictactoe-tally/internal/entity"
	"github.com/rocketscienceinc/tictactoe-tally/internal/tally"
)

const graphLabel = "Outcome tally"

var players = []entity.Cell{entity.PlayerX, entity.PlayerO}

// Build turns the tally into a graph. Outcome nodes come first, then the
// configurations in sorted order, so equal tallies always give equal graphs.
func Build(outcomes map[entity.Configuration]tally.WinCounts) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("label", graphLabel)

	targets := make(map[entity.Cell]dot.Node, len(players))
	for _, player := range players {
		targets[player] = graph.Node(entity.Win(player).String())
	}

	for _, config := range sortedConfigurations(outcomes) {
		state := graph.Node(config.String())

		for _, player := range players {
			graph.Edge(state, targets[player]).Label(strconv.Itoa(outcomes[config].For(player)))
		}
	}

	return graph
}

// Render writes the tally in DOT format.
func Render(w io.Writer, outcomes map[entity.Configuration]tally.WinCounts) error {
	if _, err := io.WriteString(w, Build(outcomes).String()); err != nil {
		return fmt.Errorf("failed to write diagram: %w", err)
	}

	return nil
}

// Export renders the tally into the file at path, replacing it.
func Export(path string, outcomes map[entity.Configuration]tally.WinCounts) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("can't create diagram file: %w", err)
	}

	if err = Render(file, outcomes); err != nil {
		_ = file.Close()
		return err
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("can't close diagram file: %w", err)
	}

	return nil
}

func sortedConfigurations(outcomes map[entity.Configuration]tally.WinCounts) []entity.Configuration {
	configs := make([]entity.Configuration, 0, len(outcomes))
	for config := range outcomes {
		configs = append(configs, config)
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].String() < configs[j].String()
	})

	return configs
}
