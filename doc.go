// Package roadnet edits a road network of fixed cities and free waypoints
// with full undo and redo.
//
// A Session owns one network.Network and one history.Manager. Every
// mutation runs as a single transaction under the Session mutex: it either
// succeeds and is recorded as exactly one history command, or it fails and
// leaves both the network and the history untouched.
//
// Quick example:
//
//	s, _ := roadnet.New(roadnet.WithCities(cities))
//	wp, _, _ := s.AddWaypoint(geom.Pt(120, 40))
//	_, _ = s.CreateEdge("Caracas", wp)
//	path, _ := s.ShortestPath("Caracas", "Valencia")
//	_, _ = s.Undo()
//
// Algorithms live in their own packages: dijkstra (routes), autoconnect
// and prim_kruskal (road generation), bfs (reachability and fewest-road
// paths), history (undo).
// Persistence goes through store.Gateway; adapters live under store/.
package roadnet
