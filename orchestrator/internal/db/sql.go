package db

import (
	"context"
	"time"

	"github.com/IBM/rotisserie/orchestrator/internal/entity"
)

// RecordSighting upserts one discovered stream: first sighting inserts,
// later sightings bump last_seen and the cycle count.
func (r *PostgresClient) RecordSighting(ctx context.Context, name string, when time.Time) error {
	_, err := r.db.ExecContext(ctx, recordSightingQuery, name, when)
	return err
}

// GetStream fetches one registry row. sql.ErrNoRows passes through.
func (r *PostgresClient) GetStream(ctx context.Context, name string) (*entity.StreamRecord, error) {
	var rec entity.StreamRecord
	err := r.db.QueryRowContext(ctx, getStreamQuery, name).Scan(
		&rec.Name,
		&rec.FirstSeen,
		&rec.LastSeen,
		&rec.Cycles,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListStreams returns the most recently seen streams.
func (r *PostgresClient) ListStreams(ctx context.Context, limit int) ([]entity.StreamRecord, error) {
	rows, err := r.db.QueryContext(ctx, listStreamsQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entity.StreamRecord
	for rows.Next() {
		var rec entity.StreamRecord
		if err := rows.Scan(&rec.Name, &rec.FirstSeen, &rec.LastSeen, &rec.Cycles); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
