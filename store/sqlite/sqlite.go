// Package sqlite stores the network in a SQLite database using the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/roadnet/store"
)

// Gateway implements store.Gateway over a SQLite database.
type Gateway struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Gateway, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	// One connection keeps ":memory:" databases alive and serialises writers.
	db.SetMaxOpenConns(1)

	g := &Gateway{db: db}
	if err := g.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to migrate database")
	}
	return g, nil
}

// Close releases the database.
func (g *Gateway) Close() error {
	return g.db.Close()
}

func (g *Gateway) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS nodes (
		id   TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		x    REAL NOT NULL,
		y    REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS roads (
		a TEXT NOT NULL,
		b TEXT NOT NULL,
		PRIMARY KEY (a, b)
	);

	CREATE TABLE IF NOT EXISTS metadata (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := g.db.Exec(schema)
	return err
}

// Load reads every node and road. A database that was never saved to
// returns store.ErrNotFound.
func (g *Gateway) Load(ctx context.Context) (*store.Document, error) {
	var savedAt string
	err := g.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = 'saved_at'`).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read metadata")
	}

	doc := &store.Document{Nodes: map[string]store.NodeRecord{}}
	rows, err := g.db.QueryContext(ctx, `SELECT id, kind, x, y FROM nodes ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query nodes")
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id  string
			rec store.NodeRecord
		)
		if err := rows.Scan(&id, &rec.Kind, &rec.X, &rec.Y); err != nil {
			return nil, errors.Wrap(err, "failed to scan node")
		}
		doc.Nodes[id] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating nodes")
	}

	roadRows, err := g.db.QueryContext(ctx, `SELECT a, b FROM roads ORDER BY a, b`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query roads")
	}
	defer roadRows.Close()
	for roadRows.Next() {
		var pair [2]string
		if err := roadRows.Scan(&pair[0], &pair[1]); err != nil {
			return nil, errors.Wrap(err, "failed to scan road")
		}
		doc.Edges = append(doc.Edges, pair)
	}
	if err := roadRows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating roads")
	}

	return doc, nil
}

// Save replaces all nodes and roads in one transaction.
func (g *Gateway) Save(ctx context.Context, doc *store.Document) (err error) {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM roads`); err != nil {
		return errors.Wrap(err, "failed to clear roads")
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return errors.Wrap(err, "failed to clear nodes")
	}

	nodeStmt, err := tx.PrepareContext(ctx, `INSERT INTO nodes (id, kind, x, y) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare node insert")
	}
	defer nodeStmt.Close()
	for id, rec := range doc.Nodes {
		if _, err = nodeStmt.ExecContext(ctx, id, rec.Kind, rec.X, rec.Y); err != nil {
			return errors.Wrapf(err, "failed to insert node %q", id)
		}
	}

	roadStmt, err := tx.PrepareContext(ctx, `INSERT INTO roads (a, b) VALUES (?, ?)`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare road insert")
	}
	defer roadStmt.Close()
	for _, pair := range doc.Edges {
		if _, err = roadStmt.ExecContext(ctx, pair[0], pair[1]); err != nil {
			return errors.Wrapf(err, "failed to insert road %s-%s", pair[0], pair[1])
		}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO metadata (key, value) VALUES ('saved_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return errors.Wrap(err, "failed to stamp metadata")
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit")
	}
	return nil
}
