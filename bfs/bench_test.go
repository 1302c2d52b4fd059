package bfs_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/roadnet/bfs"
	"github.com/katalvlaran/roadnet/geom"
	"github.com/katalvlaran/roadnet/network"
)

// BenchmarkBFS_Chain measures BFS on a chain of N+1 waypoints.
func BenchmarkBFS_Chain(b *testing.B) {
	const N = 10000
	n := network.New()
	for i := 0; i <= N; i++ {
		_ = n.AddNode(fmt.Sprintf("v%05d", i), network.Waypoint, geom.Pt(float64(i), 0))
	}
	for i := 0; i < N; i++ {
		_ = n.AddEdge(fmt.Sprintf("v%05d", i), fmt.Sprintf("v%05d", i+1))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.BFS(n, "v00000")
	}
}
