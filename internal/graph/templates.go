package graph

import (
	"fmt"
	"strings"
)

// Built-in boards offered by the collaborators.
var (
	TwoVertexPath = MustNew("2 vertex path", [][]int{{1}, {0}})

	FiveVertexPath = MustNew("5 vertex path", [][]int{{1}, {0, 2}, {1, 3}, {2, 4}, {3}})

	Hexagon = MustNew("Hexagon", [][]int{
		{5, 1},
		{0, 2},
		{1, 3},
		{2, 4},
		{3, 5},
		{4, 0},
	})
)

// Templates lists the built-in boards in display order.
func Templates() []*Graph {
	return []*Graph{TwoVertexPath, FiveVertexPath, Hexagon}
}

// Slug turns a display name into a lookup key: "5 vertex path" -> "5-vertex-path".
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// Lookup finds a graph by name or slug, checking extra graphs before the
// built-in templates.
func Lookup(name string, extra ...*Graph) (*Graph, error) {
	want := Slug(name)
	for _, g := range extra {
		if Slug(g.Name()) == want {
			return g, nil
		}
	}
	for _, g := range Templates() {
		if Slug(g.Name()) == want {
			return g, nil
		}
	}
	return nil, fmt.Errorf("unknown graph %q", name)
}
