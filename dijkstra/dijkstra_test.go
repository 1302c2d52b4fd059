package dijkstra_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/roadnet/dijkstra"
	"github.com/katalvlaran/roadnet/geom"
	"github.com/katalvlaran/roadnet/network"
)

// lShape is A(0,0) - B(10,0) - C(10,10).
func lShape(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	require.NoError(t, n.AddNode("A", network.City, geom.Pt(0, 0)))
	require.NoError(t, n.AddNode("B", network.Waypoint, geom.Pt(10, 0)))
	require.NoError(t, n.AddNode("C", network.City, geom.Pt(10, 10)))
	require.NoError(t, n.AddEdge("A", "B"))
	require.NoError(t, n.AddEdge("B", "C"))

	return n
}

func TestShortestPath_LShape(t *testing.T) {
	n := lShape(t)

	p, err := dijkstra.ShortestPath(n, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, p)

	length, err := dijkstra.PathLength(n, p)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, length, 1e-12)

	rev, err := dijkstra.ShortestPath(n, "C", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, rev)
}

func TestShortestPath_PrefersShorterDetour(t *testing.T) {
	n := lShape(t)
	// Direct A-C is √200 ≈ 14.14 < 20.
	require.NoError(t, n.AddEdge("A", "C"))

	p, err := dijkstra.ShortestPath(n, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, p)

	// B on the diagonal: both routes now measure √200.
	require.NoError(t, n.MoveNode("B", geom.Pt(5, 5)))
	p, err = dijkstra.ShortestPath(n, "A", "C")
	require.NoError(t, err)
	length, err := dijkstra.PathLength(n, p)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(200), length, 1e-9)
}

func TestShortestPath_Errors(t *testing.T) {
	n := lShape(t)
	require.NoError(t, n.AddNode("island", network.Waypoint, geom.Pt(50, 50)))

	_, err := dijkstra.ShortestPath(n, "A", "nowhere")
	assert.ErrorIs(t, err, dijkstra.ErrUnknownNode)
	assert.ErrorIs(t, err, network.ErrUnknownNode)

	_, err = dijkstra.ShortestPath(n, "nowhere", "A")
	assert.ErrorIs(t, err, dijkstra.ErrUnknownNode)

	_, err = dijkstra.ShortestPath(n, "A", "island")
	assert.ErrorIs(t, err, dijkstra.ErrNoPath)

	_, err = dijkstra.ShortestPath(nil, "A", "B")
	assert.ErrorIs(t, err, dijkstra.ErrNilGraph)

	_, err = dijkstra.ShortestPath(n, "A", "C", dijkstra.WithMaxDistance(-1))
	assert.ErrorIs(t, err, dijkstra.ErrBadMaxDistance)
}

func TestShortestPath_StartEqualsEnd(t *testing.T) {
	n := lShape(t)
	require.NoError(t, n.AddNode("island", network.Waypoint, geom.Pt(50, 50)))

	p, err := dijkstra.ShortestPath(n, "island", "island")
	require.NoError(t, err)
	assert.Equal(t, []string{"island"}, p)

	length, err := dijkstra.PathLength(n, p)
	require.NoError(t, err)
	assert.Zero(t, length)
}

func TestShortestPath_MaxDistance(t *testing.T) {
	n := lShape(t)

	_, err := dijkstra.ShortestPath(n, "A", "C", dijkstra.WithMaxDistance(15))
	assert.ErrorIs(t, err, dijkstra.ErrNoPath)

	p, err := dijkstra.ShortestPath(n, "A", "C", dijkstra.WithMaxDistance(20))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, p)
}

func TestPathLength_RejectsNonEdge(t *testing.T) {
	n := lShape(t)

	_, err := dijkstra.PathLength(n, []string{"A", "C"})
	assert.ErrorIs(t, err, network.ErrEdgeNotFound)

	length, err := dijkstra.PathLength(n, nil)
	require.NoError(t, err)
	assert.Zero(t, length)
}

func TestRoute(t *testing.T) {
	n := lShape(t)

	res, err := dijkstra.Route(n, "A", "C", dijkstra.WithScale(7))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, res.Path)
	assert.Equal(t, []string{"A", "C"}, res.Cities, "waypoint B is not listed")
	assert.InDelta(t, 20.0, res.Length, 1e-12)
	assert.InDelta(t, 140.0, res.Scaled, 1e-9)
	assert.Equal(t, 1, res.Waypoints)
	assert.Equal(t, []dijkstra.Segment{
		{From: "A", To: "B", Length: 10, Scaled: 70},
		{From: "B", To: "C", Length: 10, Scaled: 70},
	}, res.Segments)

	_, err = dijkstra.Route(n, "A", "C", dijkstra.WithScale(0))
	assert.ErrorIs(t, err, dijkstra.ErrBadScale)

	same, err := dijkstra.Route(n, "B", "B")
	require.NoError(t, err)
	assert.Empty(t, same.Segments)
	assert.Zero(t, same.Waypoints, "endpoints are not intermediate")
}

// skewed reports a fixed weight for every edge of an embedded network.
type skewed struct {
	*network.Network
	weight float64
}

func (s skewed) EdgeWeight(a, b string) (float64, error) {
	if _, err := s.Network.EdgeWeight(a, b); err != nil {
		return 0, err
	}
	return s.weight, nil
}

func TestShortestPath_RejectsInvalidWeights(t *testing.T) {
	for _, w := range []float64{-1, math.NaN()} {
		t.Run(fmt.Sprint(w), func(t *testing.T) {
			_, err := dijkstra.ShortestPath(skewed{Network: lShape(t), weight: w}, "A", "C")
			assert.ErrorIs(t, err, dijkstra.ErrNegativeWeight)
		})
	}
}

// randomNetwork scatters size nodes on a 100×100 square and links each
// pair with probability density.
func randomNetwork(rng *rand.Rand, size int, density float64) *network.Network {
	n := network.New()
	for i := 0; i < size; i++ {
		_ = n.AddNode(fmt.Sprintf("n%02d", i), network.Waypoint,
			geom.Pt(float64(rng.Intn(100)), float64(rng.Intn(100))))
	}
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			if rng.Float64() < density {
				_ = n.AddEdge(fmt.Sprintf("n%02d", i), fmt.Sprintf("n%02d", j))
			}
		}
	}

	return n
}

// bruteForce enumerates every simple path from start to end.
func bruteForce(n *network.Network, start, end string) float64 {
	best := math.Inf(1)
	seen := map[string]bool{start: true}
	var walk func(at string, acc float64)
	walk = func(at string, acc float64) {
		if at == end {
			best = math.Min(best, acc)
			return
		}
		nb, _ := n.Neighbors(at)
		for _, v := range nb {
			if seen[v] {
				continue
			}
			w, _ := n.EdgeWeight(at, v)
			seen[v] = true
			walk(v, acc+w)
			seen[v] = false
		}
	}
	walk(start, 0)

	return best
}

func TestShortestPath_OptimalAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 25; round++ {
		n := randomNetwork(rng, 7, 0.4)
		ids := n.Nodes()
		for _, s := range ids {
			for _, e := range ids {
				want := bruteForce(n, s.ID, e.ID)
				p, err := dijkstra.ShortestPath(n, s.ID, e.ID)
				if math.IsInf(want, 1) {
					assert.ErrorIs(t, err, dijkstra.ErrNoPath, "round %d %s→%s", round, s.ID, e.ID)
					continue
				}
				require.NoError(t, err, "round %d %s→%s", round, s.ID, e.ID)
				assert.Equal(t, s.ID, p[0])
				assert.Equal(t, e.ID, p[len(p)-1])
				got, err := dijkstra.PathLength(n, p)
				require.NoError(t, err, "every hop must be an edge")
				assert.InDelta(t, want, got, 1e-9, "round %d %s→%s", round, s.ID, e.ID)
			}
		}
	}
}

func TestShortestPath_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	n := randomNetwork(rng, 40, 0.12)

	nodes := n.Nodes()
	index := make(map[string]int64, len(nodes))
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i, node := range nodes {
		index[node.ID] = int64(i)
		g.AddNode(simple.Node(i))
	}
	for _, e := range n.Edges() {
		w, err := n.EdgeWeight(e.A, e.B)
		require.NoError(t, err)
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(index[e.A]), simple.Node(index[e.B]), w))
	}

	for _, src := range nodes[:5] {
		oracle := path.DijkstraFrom(simple.Node(index[src.ID]), g)
		for _, dst := range nodes {
			_, want := oracle.To(index[dst.ID])
			p, err := dijkstra.ShortestPath(n, src.ID, dst.ID)
			if math.IsInf(want, 1) {
				assert.ErrorIs(t, err, dijkstra.ErrNoPath)
				continue
			}
			require.NoError(t, err)
			got, err := dijkstra.PathLength(n, p)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-9, "%s→%s", src.ID, dst.ID)
		}
	}
}

func TestShortestPath_Deterministic(t *testing.T) {
	// Square with two equal routes A→B→D and A→C→D.
	n := network.New()
	require.NoError(t, n.AddNode("A", network.City, geom.Pt(0, 0)))
	require.NoError(t, n.AddNode("B", network.Waypoint, geom.Pt(10, 0)))
	require.NoError(t, n.AddNode("C", network.Waypoint, geom.Pt(0, 10)))
	require.NoError(t, n.AddNode("D", network.City, geom.Pt(10, 10)))
	for _, e := range [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}} {
		require.NoError(t, n.AddEdge(e[0], e[1]))
	}

	first, err := dijkstra.ShortestPath(n, "A", "D")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := dijkstra.ShortestPath(n, "A", "D")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
