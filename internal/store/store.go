package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Selector is the slice of the selection API the store needs to restore a
// snapshot.
type Selector interface {
	Select(ids ...string)
}

// SnapshotStore reads and writes per-component selection snapshots.
type SnapshotStore struct {
	DB *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{DB: db}
}

// Save upserts the snapshot for component.
func (s *SnapshotStore) Save(ctx context.Context, component string, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO selection_snapshots (component, ids, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(component) DO UPDATE SET ids = excluded.ids, updated_at = excluded.updated_at
	`, component, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored ids for component, or nil when absent.
func (s *SnapshotStore) Load(ctx context.Context, component string) ([]string, error) {
	var data string
	err := s.DB.QueryRowContext(ctx,
		`SELECT ids FROM selection_snapshots WHERE component = ?`, component).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return ids, nil
}

// Delete removes the snapshot for component.
func (s *SnapshotStore) Delete(ctx context.Context, component string) error {
	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM selection_snapshots WHERE component = ?`, component)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// Restore replays the stored snapshot through sel. Ids that no longer
// exist in the target registry are silently skipped by the engine itself.
func (s *SnapshotStore) Restore(ctx context.Context, component string, sel Selector) error {
	ids, err := s.Load(ctx, component)
	if err != nil {
		return err
	}
	if len(ids) > 0 {
		sel.Select(ids...)
	}
	return nil
}
