package menace

import (
	"strconv"
	"strings"

	"github.com/lox/copsandrobbers/internal/graph"
)

// StateKey identifies the game state a Bag was learned for. It is the
// comma-joined vertex tuple, so distinct tuples never share a key.
type StateKey string

// KeyOf encodes a vertex tuple. The empty tuple encodes to "".
func KeyOf(vertices ...graph.Vertex) StateKey {
	var b strings.Builder
	for i, v := range vertices {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(v)))
	}
	return StateKey(b.String())
}

// Vertices decodes the key back into its tuple.
func (k StateKey) Vertices() ([]graph.Vertex, error) {
	if k == "" {
		return nil, nil
	}
	parts := strings.Split(string(k), ",")
	out := make([]graph.Vertex, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out[i] = graph.Vertex(n)
	}
	return out, nil
}
