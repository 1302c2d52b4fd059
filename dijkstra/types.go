// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Graph contract, sentinel errors, options and the Route result.

package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/roadnet/network"
)

// Sentinel errors returned by the pathfinder.
var (
	// ErrNilGraph indicates that a nil Graph was passed.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrUnknownNode indicates that start or end is not in the graph.
	// It is the same value as network.ErrUnknownNode.
	ErrUnknownNode = network.ErrUnknownNode

	// ErrNoPath indicates that end is unreachable from start
	// (different components, or beyond MaxDistance).
	ErrNoPath = errors.New("dijkstra: no path")

	// ErrNegativeWeight indicates that an edge reported a negative or NaN
	// weight.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrBadMaxDistance indicates that MaxDistance was negative or NaN.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrBadScale indicates that Scale was zero, negative or NaN.
	ErrBadScale = errors.New("dijkstra: Scale must be positive")
)

// Graph is the read-only view the pathfinder needs. *network.Network
// satisfies it.
type Graph interface {
	Node(id string) (network.Node, bool)
	Neighbors(id string) ([]string, error)
	EdgeWeight(a, b string) (float64, error)
}

// Options configures a search.
//
//	MaxDistance – nodes whose distance would exceed this cap are not explored.
//	              Must be ≥ 0. Default +Inf.
//	Scale       – multiplier applied to Result.Length to produce Result.Scaled
//	              (map units → kilometres). Must be > 0. Default 1.
type Options struct {
	MaxDistance float64
	Scale       float64
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// WithMaxDistance caps exploration at d map units.
// Invalid values surface as ErrBadMaxDistance when the search runs.
func WithMaxDistance(d float64) Option {
	return func(o *Options) {
		o.MaxDistance = d
	}
}

// WithScale sets the map-unit → kilometre factor used by Route.
// Invalid values surface as ErrBadScale when the search runs.
func WithScale(f float64) Option {
	return func(o *Options) {
		o.Scale = f
	}
}

// DefaultOptions returns Options with no distance cap and unit scale.
func DefaultOptions() Options {
	return Options{
		MaxDistance: math.Inf(1),
		Scale:       1,
	}
}

func (o Options) validate() error {
	if math.IsNaN(o.MaxDistance) || o.MaxDistance < 0 {
		return ErrBadMaxDistance
	}
	if math.IsNaN(o.Scale) || o.Scale <= 0 {
		return ErrBadScale
	}

	return nil
}

// Segment is one road travelled along a route.
type Segment struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Length float64 `json:"length"`
	Scaled float64 `json:"scaled"`
}

// Result summarises one route.
type Result struct {
	// Path is the full node sequence from start to end, inclusive.
	Path []string `json:"path"`
	// Segments holds one entry per consecutive pair of Path.
	Segments []Segment `json:"segments"`
	// Length is the sum of edge weights along Path, in map units.
	Length float64 `json:"length"`
	// Cities is the subsequence of Path that are cities, in travel order.
	Cities []string `json:"cities"`
	// Waypoints counts the waypoints strictly between start and end.
	Waypoints int `json:"waypoints"`
	// Scaled is Length multiplied by Options.Scale.
	Scaled float64 `json:"scaled"`
}
