package prim_kruskal_test

import (
	"fmt"

	"github.com/katalvlaran/roadnet/prim_kruskal"
)

// ExampleKruskal connects three waypoints with the two shortest roads.
func ExampleKruskal() {
	vs := []string{"A", "B", "C"}
	es := []prim_kruskal.WeightedEdge{
		{A: "A", B: "B", Weight: 1},
		{A: "B", B: "C", Weight: 2},
		{A: "A", B: "C", Weight: 4},
	}

	f, err := prim_kruskal.Kruskal(vs, es)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("Total: %g, Edges:", f.Total)
	for _, e := range f.Edges {
		fmt.Printf(" %s-%s", e.A, e.B)
	}
	fmt.Println()
	// Output: Total: 3, Edges: A-B B-C
}

// ExamplePrim_forest grows one tree per island.
func ExamplePrim_forest() {
	vs := []string{"A", "B", "C", "D", "E"}
	es := []prim_kruskal.WeightedEdge{
		{A: "A", B: "B", Weight: 1},
		{A: "B", B: "C", Weight: 2},
		{A: "A", B: "C", Weight: 12},
		{A: "D", B: "E", Weight: 5},
	}

	f, _ := prim_kruskal.Prim(vs, es, "C")
	fmt.Printf("trees=%d total=%g\n", f.Components, f.Total)
	// Output: trees=2 total=8
}
