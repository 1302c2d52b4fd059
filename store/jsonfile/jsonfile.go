// Package jsonfile stores the network as two JSON files in one directory:
//
//	node_positions.json  {"<id>": {"x": 1, "y": 2, "type": "city"}, ...}
//	roads_config.json    {"roads": [["a", "b"], ...]}
//
// This is the layout the desktop road editor has always written, so
// existing data directories load unchanged.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/katalvlaran/roadnet/store"
)

// File names inside the data directory.
const (
	NodesFile = "node_positions.json"
	RoadsFile = "roads_config.json"
)

type roadsFile struct {
	Roads [][2]string `json:"roads"`
}

// Gateway implements store.Gateway over a directory.
type Gateway struct {
	dir string
}

// New returns a Gateway rooted at dir. The directory is created on Save.
func New(dir string) *Gateway {
	return &Gateway{dir: dir}
}

// Load reads both files. A missing nodes file means nothing was saved;
// a missing roads file means no roads.
func (g *Gateway) Load(ctx context.Context) (*store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := &store.Document{}

	raw, err := os.ReadFile(filepath.Join(g.dir, NodesFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read nodes file")
	}
	if err := json.Unmarshal(raw, &doc.Nodes); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", NodesFile)
	}

	raw, err = os.ReadFile(filepath.Join(g.dir, RoadsFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return doc, nil
	case err != nil:
		return nil, errors.Wrap(err, "failed to read roads file")
	}
	var rf roadsFile
	if err := json.Unmarshal(raw, &rf); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", RoadsFile)
	}
	doc.Edges = rf.Roads

	return doc, nil
}

// Save writes both files, each through a temporary file and rename.
func (g *Gateway) Save(ctx context.Context, doc *store.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create data directory")
	}
	nodes := doc.Nodes
	if nodes == nil {
		nodes = map[string]store.NodeRecord{}
	}
	roads := doc.Edges
	if roads == nil {
		roads = [][2]string{}
	}
	if err := writeJSON(filepath.Join(g.dir, NodesFile), nodes); err != nil {
		return err
	}
	return writeJSON(filepath.Join(g.dir, RoadsFile), roadsFile{Roads: roads})
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", filepath.Base(path))
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", filepath.Base(path))
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "failed to replace %s", filepath.Base(path))
	}
	return nil
}
