package repository

import (
	"context"
	"database/sql"
)

// SnapshotRepo stores cached list payloads.
type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo { return &SnapshotRepo{db: db} }

// Get returns the snapshot stored under key, or nil if there is none.
func (r *SnapshotRepo) Get(ctx context.Context, key string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, payload, item_count, stored_at FROM list_snapshots WHERE key = ?`, key)
	var s Snapshot
	if err := row.Scan(&s.Key, &s.Payload, &s.ItemCount, &s.StoredAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SnapshotRepo) Put(ctx context.Context, s Snapshot) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO list_snapshots(key, payload, item_count, stored_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
	 payload=excluded.payload,
	 item_count=excluded.item_count,
	 stored_at=excluded.stored_at;
	`, s.Key, s.Payload, s.ItemCount, s.StoredAt)
	return err
}

func (r *SnapshotRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM list_snapshots WHERE key = ?`, key)
	return err
}
