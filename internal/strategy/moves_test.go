package strategy

import (
	"testing"

	"github.com/lox/copsandrobbers/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	radixSets := [][]int{
		{2},
		{3, 3},
		{2, 4, 3},
		{6, 6, 6},
	}
	for _, radixes := range radixSets {
		size := JointSize(radixes)
		for id := 0; id < size; id++ {
			choices := Decode(id, radixes)
			for i, c := range choices {
				require.Less(t, c, radixes[i])
			}
			require.Equal(t, id, Encode(choices, radixes), "radixes %v id %d", radixes, id)
		}
	}
}

func TestDecodeLeastSignificantFirst(t *testing.T) {
	// id = 1 + 2*2 with radixes [2,3]
	assert.Equal(t, []int{1, 2}, Decode(5, []int{2, 3}))
}

func TestRadixes(t *testing.T) {
	g := graph.FiveVertexPath
	assert.Equal(t, []int{2, 3, 2}, Radixes(g, []graph.Vertex{0, 2, 4}))
	assert.Equal(t, 12, JointSize(Radixes(g, []graph.Vertex{0, 2, 4})))
	assert.Equal(t, []int{5, 5}, PlacementRadixes(g, 2))
	assert.Equal(t, 1, JointSize(nil))
}

func TestStep(t *testing.T) {
	g := graph.Hexagon
	assert.Equal(t, graph.Vertex(5), Step(g, 0, 0))
	assert.Equal(t, graph.Vertex(1), Step(g, 0, 1))
	assert.Equal(t, graph.Vertex(0), Step(g, 0, 2), "last choice stays")
}

func TestApply(t *testing.T) {
	g := graph.FiveVertexPath
	// cop 0 at vertex 2 (radix 3) picks 1 -> vertex 3; cop 1 at vertex 0 (radix 2) stays.
	id := Encode([]int{1, 1}, []int{3, 2})
	assert.Equal(t, []graph.Vertex{3, 0}, Apply(g, []graph.Vertex{2, 0}, id))
}

func TestPlace(t *testing.T) {
	g := graph.Hexagon
	assert.Equal(t, []graph.Vertex{4, 1}, Place(g, 2, 4+1*6))
}

func TestExpand(t *testing.T) {
	assert.Equal(t, []int{0}, expand(0, []int{5}))
	assert.Equal(t, []int{2}, expand(0.5, []int{5}))
	assert.Equal(t, []int{4}, expand(0.9999999, []int{5}))
	// 0.55 * 2 = 1.1 -> 1, remainder 0.1 * 10 = 1 -> 1 (allow float slop)
	got := expand(0.55, []int{2, 10})
	assert.Equal(t, 1, got[0])
	assert.InDelta(t, 1, got[1], 1)
}
