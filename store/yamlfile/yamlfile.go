// Package yamlfile stores the network as a single YAML document.
package yamlfile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/roadnet/store"
)

// yamlDocument keeps nodes as a sorted list so saved files diff cleanly.
type yamlDocument struct {
	Nodes []yamlNode  `yaml:"nodes"`
	Roads [][2]string `yaml:"roads"`
}

type yamlNode struct {
	ID   string  `yaml:"id"`
	Type string  `yaml:"type"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Gateway implements store.Gateway over one file.
type Gateway struct {
	path string
}

// New returns a Gateway for path.
func New(path string) *Gateway {
	return &Gateway{path: path}
}

// Load decodes the file, or returns store.ErrNotFound when it does not exist.
func (g *Gateway) Load(ctx context.Context) (*store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(g.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read network file")
	}

	var yd yamlDocument
	if err := yaml.NewDecoder(bytes.NewReader(raw)).Decode(&yd); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	doc := &store.Document{
		Nodes: make(map[string]store.NodeRecord, len(yd.Nodes)),
		Edges: yd.Roads,
	}
	for _, yn := range yd.Nodes {
		if _, dup := doc.Nodes[yn.ID]; dup {
			return nil, errors.Wrapf(store.ErrInvalidDocument, "duplicate node %q", yn.ID)
		}
		doc.Nodes[yn.ID] = store.NodeRecord{X: yn.X, Y: yn.Y, Kind: yn.Type}
	}

	return doc, nil
}

// Save encodes doc and replaces the file.
func (g *Gateway) Save(ctx context.Context, doc *store.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	yd := yamlDocument{Nodes: make([]yamlNode, 0, len(doc.Nodes)), Roads: doc.Edges}
	for id, rec := range doc.Nodes {
		yd.Nodes = append(yd.Nodes, yamlNode{ID: id, Type: rec.Kind, X: rec.X, Y: rec.Y})
	}
	sort.Slice(yd.Nodes, func(i, j int) bool { return yd.Nodes[i].ID < yd.Nodes[j].ID })
	if yd.Roads == nil {
		yd.Roads = [][2]string{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yd); err != nil {
		return errors.Wrap(err, "failed to encode YAML")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "failed to encode YAML")
	}

	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create directory")
	}
	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "failed to write network file")
	}
	return errors.Wrap(os.Rename(tmp, g.path), "failed to replace network file")
}
