package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("copies adjacency", func(t *testing.T) {
		adj := [][]int{{1}, {0}}
		g, err := New("pair", adj)
		require.NoError(t, err)

		adj[0][0] = 0
		assert.Equal(t, []Vertex{1}, g.Neighbors(0))
		assert.Equal(t, 2, g.NumVertices())
		assert.Equal(t, 1, g.Degree(1))
	})

	t.Run("rejects empty graph", func(t *testing.T) {
		_, err := New("empty", nil)
		assert.Error(t, err)
	})

	t.Run("rejects neighbor out of range", func(t *testing.T) {
		_, err := New("broken", [][]int{{1}, {2}})
		assert.ErrorContains(t, err, "outside 0..1")

		_, err = New("negative", [][]int{{-1}})
		assert.Error(t, err)
	})
}

func TestEdges(t *testing.T) {
	edges := Hexagon.Edges()
	assert.Len(t, edges, 6)
	assert.Contains(t, edges, [2]Vertex{0, 5})
	assert.Contains(t, edges, [2]Vertex{2, 3})
}

func TestAdjacencyRoundTrip(t *testing.T) {
	g, err := New("copy", FiveVertexPath.Adjacency())
	require.NoError(t, err)
	assert.Equal(t, FiveVertexPath.Adjacency(), g.Adjacency())
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want *Graph
	}{
		{"Hexagon", Hexagon},
		{"hexagon", Hexagon},
		{"2-vertex-path", TwoVertexPath},
		{"5 vertex path", FiveVertexPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Lookup(tt.name)
			require.NoError(t, err)
			assert.Same(t, tt.want, g)
		})
	}

	t.Run("extra graphs take precedence", func(t *testing.T) {
		custom := MustNew("Hexagon", [][]int{{0}})
		g, err := Lookup("hexagon", custom)
		require.NoError(t, err)
		assert.Same(t, custom, g)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Lookup("octagon")
		assert.ErrorContains(t, err, "octagon")
	})
}
