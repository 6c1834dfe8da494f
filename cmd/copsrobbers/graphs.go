package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/copsandrobbers/cmd/copsrobbers/shared"
	"github.com/lox/copsandrobbers/internal/config"
	"github.com/lox/copsandrobbers/internal/graph"
)

// GraphsCmd lists built-in and configured boards
type GraphsCmd struct {
	Edges bool `help:"Show every edge"`
}

func (c *GraphsCmd) Run(globals *Globals) error {
	logger := shared.SetupLogger(globals.Debug, globals.JSON)

	cfg, err := config.Load(globals.Config)
	if err != nil {
		return err
	}
	custom, err := cfg.CustomGraphs()
	if err != nil {
		return err
	}
	logger.Debug("Listing graphs", "templates", len(graph.Templates()), "custom", len(custom))

	fmt.Println(renderGraphs(graph.Templates(), custom, c.Edges))
	return nil
}

func renderGraphs(templates, custom []*graph.Graph, edges bool) string {
	headers := []string{"Name", "Slug", "Source", "Vertices", "Edges"}
	if edges {
		headers = append(headers, "Edge list")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))).
		Headers(headers...)

	add := func(g *graph.Graph, source string) {
		row := []string{
			g.Name(),
			graph.Slug(g.Name()),
			source,
			fmt.Sprint(g.NumVertices()),
			fmt.Sprint(len(g.Edges())),
		}
		if edges {
			pairs := make([]string, 0, len(g.Edges()))
			for _, e := range g.Edges() {
				pairs = append(pairs, fmt.Sprintf("%d-%d", e[0], e[1]))
			}
			row = append(row, strings.Join(pairs, " "))
		}
		t.Row(row...)
	}
	for _, g := range templates {
		add(g, "built-in")
	}
	for _, g := range custom {
		add(g, "config")
	}
	return t.Render()
}
