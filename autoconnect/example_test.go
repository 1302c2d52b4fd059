package autoconnect_test

import (
	"fmt"

	"github.com/katalvlaran/roadnet/autoconnect"
	"github.com/katalvlaran/roadnet/geom"
	"github.com/katalvlaran/roadnet/network"
)

// ExampleSmartGenerate wires two cities through a short waypoint chain.
func ExampleSmartGenerate() {
	n := network.New()
	_ = n.AddNode("Valencia", network.City, geom.Pt(0, 0))
	_ = n.AddNode("Maracay", network.City, geom.Pt(300, 0))
	_ = n.AddNode("wp_1", network.Waypoint, geom.Pt(60, 0))
	_ = n.AddNode("wp_2", network.Waypoint, geom.Pt(150, 0))
	_ = n.AddNode("wp_3", network.Waypoint, geom.Pt(240, 0))

	r, err := autoconnect.SmartGenerate(n, autoconnect.DefaultParams())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%+v total=%d\n", r, r.Total())
	fmt.Println(n.Edges())
	// Output:
	// {NearestWaypoint:2 KNearest:2 SpanningTree:0 CityLinks:0} total=4
	// [Maracay-wp_3 Valencia-wp_1 wp_1-wp_2 wp_2-wp_3]
}
