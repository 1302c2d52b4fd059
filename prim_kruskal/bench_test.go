package prim_kruskal_test

import (
	"testing"

	"github.com/katalvlaran/roadnet/prim_kruskal"
)

// BenchmarkKruskal measures a random graph with 500 vertices and ~2000 edges.
func BenchmarkKruskal(b *testing.B) {
	vs, es := buildMedium(500, 1500, 42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = prim_kruskal.Kruskal(vs, es)
	}
}

// BenchmarkPrim measures the same graph, always rooted at "V000".
func BenchmarkPrim(b *testing.B) {
	vs, es := buildMedium(500, 1500, 42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = prim_kruskal.Prim(vs, es, "V000")
	}
}
