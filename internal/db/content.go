package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/portfolio-ranker/internal/content"
)

// -----------------------------------------------------------------------------
// Content Methods
// -----------------------------------------------------------------------------

// Source adapts the database to content.Source
type Source struct {
	db *DB
}

// NewSource creates a content source reading from db
func NewSource(db *DB) *Source {
	return &Source{db: db}
}

// Load implements content.Source
func (s *Source) Load(ctx context.Context) (*content.Snapshot, error) {
	return s.db.LoadSnapshot(ctx)
}

var _ content.Source = (*Source)(nil)

// SaveSnapshot replaces all stored content with snapshot in one transaction
// and records the import
func (db *DB) SaveSnapshot(ctx context.Context, source string, snapshot *content.Snapshot) (*Import, error) {
	rows, err := snapshotRows(snapshot)
	if err != nil {
		return nil, err
	}

	imp := &Import{ID: uuid.New(), Source: source, Counts: countRows(rows)}
	counts, err := json.Marshal(imp.Counts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal import counts: %w", err)
	}

	err = pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM content_entries`); err != nil {
			return fmt.Errorf("failed to clear content: %w", err)
		}

		batch := &pgx.Batch{}
		for _, row := range rows {
			batch.Queue(
				`INSERT INTO content_entries (collection, position, id, data) VALUES ($1, $2, $3, $4)`,
				row.Collection, row.Position, row.ID, row.Data,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert content: %w", err)
		}

		return tx.QueryRow(ctx,
			`INSERT INTO content_imports (id, source, counts)
			 VALUES ($1, $2, $3)
			 RETURNING created_at`,
			imp.ID, imp.Source, counts,
		).Scan(&imp.CreatedAt)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	return imp, nil
}

// LoadSnapshot reads all stored content in import order
func (db *DB) LoadSnapshot(ctx context.Context) (*content.Snapshot, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT collection, position, id, data FROM content_entries ORDER BY collection, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query content: %w", err)
	}
	defer rows.Close()

	var entries []entryRow
	for rows.Next() {
		var row entryRow
		if err := rows.Scan(&row.Collection, &row.Position, &row.ID, &row.Data); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		entries = append(entries, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	return decodeRows(entries)
}

// ListImports returns the most recent imports, newest first
func (db *DB) ListImports(ctx context.Context, limit int) ([]Import, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, source, counts, created_at FROM content_imports ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	defer rows.Close()

	var imports []Import
	for rows.Next() {
		var imp Import
		var counts []byte
		if err := rows.Scan(&imp.ID, &imp.Source, &counts, &imp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		if err := json.Unmarshal(counts, &imp.Counts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal import counts: %w", err)
		}
		imports = append(imports, imp)
	}
	return imports, rows.Err()
}

// snapshotRows flattens a snapshot into rows keyed by collection and position
func snapshotRows(snapshot *content.Snapshot) ([]entryRow, error) {
	var rows []entryRow
	var err error

	add := func(collection content.Collection, id string, position int, doc any) {
		if err != nil {
			return
		}
		data, marshalErr := json.Marshal(doc)
		if marshalErr != nil {
			err = fmt.Errorf("failed to marshal %s %q: %w", collection, id, marshalErr)
			return
		}
		rows = append(rows, entryRow{Collection: string(collection), Position: position, ID: id, Data: data})
	}

	for i, r := range snapshot.Roles {
		add(content.CollectionRoles, r.ID, i, r)
	}
	for i, p := range snapshot.Projects {
		add(content.CollectionProjects, p.ID, i, p)
	}
	for i, t := range snapshot.Thoughts {
		add(content.CollectionThoughts, t.ID, i, t)
	}
	for i, t := range snapshot.Tech {
		add(content.CollectionTech, t.ID, i, t)
	}
	for i, k := range snapshot.KnowHow {
		add(content.CollectionKnowHow, k.ID, i, k)
	}

	return rows, err
}

// decodeRows rebuilds a snapshot from rows ordered by collection and position
func decodeRows(rows []entryRow) (*content.Snapshot, error) {
	snapshot := &content.Snapshot{}

	for _, row := range rows {
		var err error
		switch content.Collection(row.Collection) {
		case content.CollectionRoles:
			err = appendDecoded(row.Data, &snapshot.Roles)
		case content.CollectionProjects:
			err = appendDecoded(row.Data, &snapshot.Projects)
		case content.CollectionThoughts:
			err = appendDecoded(row.Data, &snapshot.Thoughts)
		case content.CollectionTech:
			err = appendDecoded(row.Data, &snapshot.Tech)
		case content.CollectionKnowHow:
			err = appendDecoded(row.Data, &snapshot.KnowHow)
		default:
			err = fmt.Errorf("unknown collection")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s %q: %w", row.Collection, row.ID, err)
		}
	}

	return snapshot, nil
}

func appendDecoded[T any](data []byte, out *[]T) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*out = append(*out, v)
	return nil
}

func countRows(rows []entryRow) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.Collection]++
	}
	return counts
}
