package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/roadnet/dijkstra"
	"github.com/katalvlaran/roadnet/geom"
	"github.com/katalvlaran/roadnet/network"
)

// ExampleShortestPath routes across an L-shaped road through a waypoint.
func ExampleShortestPath() {
	n := network.New()
	_ = n.AddNode("A", network.City, geom.Pt(0, 0))
	_ = n.AddNode("B", network.Waypoint, geom.Pt(10, 0))
	_ = n.AddNode("C", network.City, geom.Pt(10, 10))
	_ = n.AddEdge("A", "B")
	_ = n.AddEdge("B", "C")

	p, err := dijkstra.ShortestPath(n, "A", "C")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	length, _ := dijkstra.PathLength(n, p)
	fmt.Println(p, length)
	// Output: [A B C] 20
}

// ExampleRoute reports the cities along a route and its length in km
// using the default map scale of 7 km per unit.
func ExampleRoute() {
	n := network.New()
	_ = n.AddNode("Caracas", network.City, geom.Pt(0, 0))
	_ = n.AddNode("wp_1", network.Waypoint, geom.Pt(3, 4))
	_ = n.AddNode("Maracay", network.City, geom.Pt(6, 8))
	_ = n.AddEdge("Caracas", "wp_1")
	_ = n.AddEdge("wp_1", "Maracay")

	res, err := dijkstra.Route(n, "Caracas", "Maracay", dijkstra.WithScale(7))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%v %.0f units %.0f km\n", res.Cities, res.Length, res.Scaled)
	// Output: [Caracas Maracay] 10 units 70 km
}

// ExampleShortestPath_noPath shows the sentinel for disconnected nodes.
func ExampleShortestPath_noPath() {
	n := network.New()
	_ = n.AddNode("A", network.City, geom.Pt(0, 0))
	_ = n.AddNode("B", network.City, geom.Pt(5, 5))

	_, err := dijkstra.ShortestPath(n, "A", "B")
	fmt.Println(err)
	// Output: dijkstra: no path: "A" → "B"
}
