// Package dataset embeds the default set of cities a Session starts with.
package dataset

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/roadnet/geom"
	"github.com/katalvlaran/roadnet/network"
)

//go:embed cities.yaml
var citiesYAML []byte

type cityFile struct {
	Cities []struct {
		ID string  `yaml:"id"`
		X  float64 `yaml:"x"`
		Y  float64 `yaml:"y"`
	} `yaml:"cities"`
}

// Cities returns the embedded cities sorted by ID. Each call returns a
// fresh slice.
func Cities() []network.Node {
	nodes, err := Parse(citiesYAML)
	if err != nil {
		// embedded data is covered by tests
		panic(err)
	}
	return nodes
}

// Parse decodes a city list in the embedded format. IDs must be non-empty
// and unique.
func Parse(raw []byte) ([]network.Node, error) {
	var cf cityFile
	if err := yaml.NewDecoder(bytes.NewReader(raw)).Decode(&cf); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	seen := make(map[string]bool, len(cf.Cities))
	nodes := make([]network.Node, 0, len(cf.Cities))
	for _, c := range cf.Cities {
		if c.ID == "" {
			return nil, fmt.Errorf("dataset: %w", network.ErrEmptyNodeID)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("dataset: %w: %q", network.ErrDuplicateNode, c.ID)
		}
		seen[c.ID] = true
		nodes = append(nodes, network.Node{ID: c.ID, Kind: network.City, Pos: geom.Pt(c.X, c.Y)})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	return nodes, nil
}
