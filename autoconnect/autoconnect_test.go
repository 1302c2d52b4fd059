package autoconnect_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadnet/autoconnect"
	"github.com/katalvlaran/roadnet/bfs"
	"github.com/katalvlaran/roadnet/geom"
	"github.com/katalvlaran/roadnet/network"
	"github.com/katalvlaran/roadnet/prim_kruskal"
)

type spot struct {
	id   string
	kind network.Kind
	x, y float64
}

func place(t *testing.T, spots ...spot) *network.Network {
	t.Helper()
	n := network.New()
	for _, s := range spots {
		require.NoError(t, n.AddNode(s.id, s.kind, geom.Pt(s.x, s.y)))
	}
	return n
}

func TestConnectCitiesToNearestWaypoint(t *testing.T) {
	n := place(t,
		spot{"Caracas", network.City, 0, 0},
		spot{"Remote", network.City, 1000, 1000},
		spot{"wp_b", network.Waypoint, 30, 40}, // 50 away
		spot{"wp_a", network.Waypoint, 40, 30}, // 50 away, smaller ID wins the tie
		spot{"wp_c", network.Waypoint, 60, 80}, // 100 away
	)

	added, err := autoconnect.ConnectCitiesToNearestWaypoint(n, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.True(t, n.HasEdge("Caracas", "wp_a"))
	assert.Equal(t, 1, n.EdgeCount(), "Remote has no waypoint in range")

	added, err = autoconnect.ConnectCitiesToNearestWaypoint(n, 100)
	require.NoError(t, err)
	assert.Zero(t, added, "existing edge is not duplicated")

	_, err = autoconnect.ConnectCitiesToNearestWaypoint(n, -1)
	assert.ErrorIs(t, err, autoconnect.ErrInvalidParam)
}

func TestConnectCitiesToNearestWaypoint_StrictThreshold(t *testing.T) {
	n := place(t,
		spot{"C", network.City, 0, 0},
		spot{"W", network.Waypoint, 100, 0},
	)
	added, err := autoconnect.ConnectCitiesToNearestWaypoint(n, 100)
	require.NoError(t, err)
	assert.Zero(t, added, "distance equal to the threshold is out of range")
}

func TestConnectKNearest_Scenario(t *testing.T) {
	// Two waypoints 3 apart and one 100 away; k=1, radius 5.
	n := place(t,
		spot{"w1", network.Waypoint, 0, 0},
		spot{"w2", network.Waypoint, 3, 0},
		spot{"w3", network.Waypoint, 103, 0},
	)
	added, err := autoconnect.ConnectKNearest(n, autoconnect.WaypointsOnly, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.True(t, n.HasEdge("w1", "w2"))

	nb, err := n.Neighbors("w3")
	require.NoError(t, err)
	assert.Empty(t, nb)
}

func TestConnectKNearest_FilterRestrictsCandidates(t *testing.T) {
	n := place(t,
		spot{"city", network.City, 0, 0},
		spot{"wp1", network.Waypoint, 1, 0},
		spot{"wp2", network.Waypoint, 10, 0},
	)
	added, err := autoconnect.ConnectKNearest(n, autoconnect.WaypointsOnly, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.True(t, n.HasEdge("wp1", "wp2"))
	assert.False(t, n.HasEdge("city", "wp1"), "cities are not candidates for a waypoint pass")

	added, err = autoconnect.ConnectKNearest(n, autoconnect.Any, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, added, "city picks wp1; both waypoints' nearest is already linked")
	assert.True(t, n.HasEdge("city", "wp1"))
}

func TestConnectKNearest_DeterministicTies(t *testing.T) {
	// b and c are both 5 from a; k=1 must pick b.
	n := place(t,
		spot{"a", network.Waypoint, 0, 0},
		spot{"c", network.Waypoint, 0, 5},
		spot{"b", network.Waypoint, 5, 0},
	)
	got, err := autoconnect.KNearest(n, "a", autoconnect.Any, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, got)

	_, err = autoconnect.KNearest(n, "zz", autoconnect.Any, 1, 10)
	assert.ErrorIs(t, err, network.ErrNodeNotFound)

	_, err = autoconnect.ConnectKNearest(n, autoconnect.Any, -1, 10)
	assert.ErrorIs(t, err, autoconnect.ErrInvalidParam)
	_, err = autoconnect.ConnectKNearest(n, autoconnect.Filter(7), 1, 10)
	assert.ErrorIs(t, err, autoconnect.ErrInvalidFilter)
}

func TestBuildSpanningTree(t *testing.T) {
	// Cluster {a,b,c} on a line plus an outlier d beyond the cutoff.
	n := place(t,
		spot{"a", network.Waypoint, 0, 0},
		spot{"b", network.Waypoint, 10, 0},
		spot{"c", network.Waypoint, 20, 0},
		spot{"d", network.Waypoint, 500, 0},
	)
	require.NoError(t, n.AddEdge("a", "b"))

	added, err := autoconnect.BuildSpanningTree(n, []string{"a", "b", "c", "d"}, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, added, "a-b already present; only b-c is new")
	assert.True(t, n.HasEdge("b", "c"))
	assert.False(t, n.HasEdge("a", "c"))

	nb, err := n.Neighbors("d")
	require.NoError(t, err)
	assert.Empty(t, nb, "forest, not an error")
}

func TestBuildSpanningTree_Trivial(t *testing.T) {
	n := place(t, spot{"a", network.Waypoint, 0, 0})

	added, err := autoconnect.BuildSpanningTree(n, []string{"a"}, 50)
	require.NoError(t, err)
	assert.Zero(t, added)

	added, err = autoconnect.BuildSpanningTree(n, nil, 50)
	require.NoError(t, err)
	assert.Zero(t, added)

	_, err = autoconnect.BuildSpanningTree(n, []string{"a", "ghost"}, 50)
	assert.ErrorIs(t, err, network.ErrUnknownNode)
}

func TestBuildSpanningTree_PrimMatchesKruskal(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	spots := make([]spot, 30)
	for i := range spots {
		spots[i] = spot{fmt.Sprintf("w%02d", i), network.Waypoint, rng.Float64() * 300, rng.Float64() * 300}
	}
	k := place(t, spots...)
	p := place(t, spots...)
	ids := autoconnect.Candidates(k, autoconnect.WaypointsOnly)

	ak, err := autoconnect.BuildSpanningTree(k, ids, 120)
	require.NoError(t, err)
	ap, err := autoconnect.BuildSpanningTree(p, ids, 120, autoconnect.WithMethod(prim_kruskal.MethodPrim))
	require.NoError(t, err)

	assert.Equal(t, ak, ap)
	assert.InDelta(t, k.Stats().TotalLength, p.Stats().TotalLength, 1e-9)
}

func TestConnectNearbyCities(t *testing.T) {
	n := place(t,
		spot{"Caracas", network.City, 0, 0},
		spot{"La Guaira", network.City, 30, 40},
		spot{"Maracaibo", network.City, 900, 0},
		spot{"wp", network.Waypoint, 1, 1},
	)
	added, err := autoconnect.ConnectNearbyCities(n, 80)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.True(t, n.HasEdge("Caracas", "La Guaira"))
}

func TestSmartGenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	n := network.New()
	for i := 0; i < 6; i++ {
		require.NoError(t, n.AddNode(fmt.Sprintf("city%d", i), network.City,
			geom.Pt(rng.Float64()*600, rng.Float64()*600)))
	}
	for i := 0; i < 40; i++ {
		require.NoError(t, n.AddNode(fmt.Sprintf("wp_%02d", i), network.Waypoint,
			geom.Pt(rng.Float64()*600, rng.Float64()*600)))
	}

	first, err := autoconnect.SmartGenerate(n, autoconnect.DefaultParams())
	require.NoError(t, err)
	assert.Positive(t, first.Total())
	assert.Equal(t, first.Total(), n.EdgeCount())

	edges := n.Edges()
	second, err := autoconnect.SmartGenerate(n, autoconnect.DefaultParams())
	require.NoError(t, err)
	assert.Zero(t, second.Total(), "second run is a no-op")
	assert.Equal(t, edges, n.Edges())
}

func TestSmartGenerate_SpanningStepConnectsCluster(t *testing.T) {
	// Waypoints 120 apart on a line end up as a single component.
	n := network.New()
	for i := 0; i < 5; i++ {
		require.NoError(t, n.AddNode(fmt.Sprintf("wp%d", i), network.Waypoint, geom.Pt(float64(i)*120, 0)))
	}
	_, err := autoconnect.SmartGenerate(n, autoconnect.DefaultParams())
	require.NoError(t, err)

	comps, err := bfs.Components(n, autoconnect.Candidates(n, autoconnect.Any))
	require.NoError(t, err)
	assert.Len(t, comps, 1)
}

func TestSmartGenerate_CollectsStepErrors(t *testing.T) {
	n := place(t,
		spot{"A", network.City, 0, 0},
		spot{"B", network.City, 10, 0},
		spot{"w", network.Waypoint, 5, 5},
	)
	p := autoconnect.DefaultParams()
	p.K = -1 // step 2 fails; steps 1, 3 and 4 still run

	r, err := autoconnect.SmartGenerate(n, p)
	require.Error(t, err)
	assert.ErrorIs(t, err, autoconnect.ErrInvalidParam)
	assert.Equal(t, 2, r.NearestWaypoint)
	assert.Zero(t, r.KNearest)
	assert.Equal(t, 1, r.CityLinks)
}

// drawnRoad is a city, a free waypoint and a hand-drawn chain next to both.
func drawnRoad(t *testing.T) *network.Network {
	t.Helper()
	n := place(t,
		spot{"Caracas", network.City, 0, 0},
		spot{"drawn_wp_1", network.Waypoint, 5, 0},
		spot{"drawn_wp_2", network.Waypoint, 10, 0},
		spot{"wp_1", network.Waypoint, 40, 0},
		spot{"wp_2", network.Waypoint, 70, 0},
	)
	require.NoError(t, n.AddEdge("drawn_wp_1", "drawn_wp_2"))
	return n
}

func touchesDrawn(n *network.Network) []network.Edge {
	var out []network.Edge
	for _, e := range n.Edges() {
		if e == network.NewEdge("drawn_wp_1", "drawn_wp_2") {
			continue
		}
		for _, id := range []string{e.A, e.B} {
			if node, _ := n.Node(id); node.Drawn() {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

func TestSkipDrawn(t *testing.T) {
	skip := autoconnect.SkipDrawn()
	passes := []struct {
		name string
		run  func(n *network.Network, opts ...autoconnect.Option) (int, error)
	}{
		{"nearest waypoint", func(n *network.Network, opts ...autoconnect.Option) (int, error) {
			return autoconnect.ConnectCitiesToNearestWaypoint(n, 100, opts...)
		}},
		{"k-nearest", func(n *network.Network, opts ...autoconnect.Option) (int, error) {
			return autoconnect.ConnectKNearest(n, autoconnect.WaypointsOnly, 2, 100, opts...)
		}},
		{"spanning tree", func(n *network.Network, opts ...autoconnect.Option) (int, error) {
			return autoconnect.BuildSpanningTree(n, autoconnect.Candidates(n, autoconnect.WaypointsOnly), 100, opts...)
		}},
	}
	for _, p := range passes {
		t.Run(p.name, func(t *testing.T) {
			open := drawnRoad(t)
			_, err := p.run(open)
			require.NoError(t, err)
			assert.NotEmpty(t, touchesDrawn(open), "without the option drawn waypoints are fair game")

			kept := drawnRoad(t)
			added, err := p.run(kept, skip)
			require.NoError(t, err)
			assert.Positive(t, added)
			assert.Empty(t, touchesDrawn(kept))
		})
	}

	n := drawnRoad(t)
	assert.Equal(t, []string{"wp_1", "wp_2"}, autoconnect.Candidates(n, autoconnect.WaypointsOnly, skip))
	got, err := autoconnect.KNearest(n, "Caracas", autoconnect.Any, 2, 100, skip)
	require.NoError(t, err)
	assert.Equal(t, []string{"wp_1", "wp_2"}, got)
}

func TestSmartGenerate_ProtectsDrawnWaypoints(t *testing.T) {
	n := drawnRoad(t)
	r, err := autoconnect.SmartGenerate(n, autoconnect.DefaultParams())
	require.NoError(t, err)
	assert.Positive(t, r.Total())
	assert.Empty(t, touchesDrawn(n))

	p := autoconnect.DefaultParams()
	p.ProtectDrawn = false
	n = drawnRoad(t)
	_, err = autoconnect.SmartGenerate(n, p)
	require.NoError(t, err)
	assert.NotEmpty(t, touchesDrawn(n))
}

func TestParseFilter(t *testing.T) {
	for in, want := range map[string]autoconnect.Filter{
		"all": autoconnect.Any, "city": autoconnect.CitiesOnly, "waypoints": autoconnect.WaypointsOnly,
	} {
		got, err := autoconnect.ParseFilter(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := autoconnect.ParseFilter("roads")
	assert.ErrorIs(t, err, autoconnect.ErrInvalidFilter)
}
