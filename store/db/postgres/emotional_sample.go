package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/hrygo/mindsense/store"
)

func (db *DB) CreateEmotionalSample(ctx context.Context, create *store.EmotionalSample) (*store.EmotionalSample, error) {
	query := `
		INSERT INTO emotional_sample (user_id, state, topics, created_ts)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	err := db.db.QueryRowContext(ctx, query,
		create.UserID,
		create.State,
		create.Topics,
		create.CreatedTs,
	).Scan(&create.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create emotional sample: %w", err)
	}
	return create, nil
}

func (db *DB) ListEmotionalSamples(ctx context.Context, find *store.FindEmotionalSample) ([]*store.EmotionalSample, error) {
	query := `
		SELECT id, user_id, state, topics, created_ts
		FROM emotional_sample
		WHERE 1=1
	`
	var args []interface{}
	argIndex := 1

	if find.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, *find.UserID)
		argIndex++
	}

	query += " ORDER BY created_ts ASC, id ASC"
	if find.Limit != nil {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, *find.Limit)
	}

	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list emotional samples: %w", err)
	}
	defer rows.Close()

	var samples []*store.EmotionalSample
	for rows.Next() {
		var sample store.EmotionalSample
		if err := rows.Scan(
			&sample.ID,
			&sample.UserID,
			&sample.State,
			&sample.Topics,
			&sample.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan emotional sample: %w", err)
		}
		samples = append(samples, &sample)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

func (db *DB) DeleteEmotionalSamples(ctx context.Context, delete *store.DeleteEmotionalSample) error {
	if _, err := db.db.ExecContext(ctx, `DELETE FROM emotional_sample WHERE user_id = $1`, delete.UserID); err != nil {
		return fmt.Errorf("failed to delete emotional samples: %w", err)
	}
	return nil
}
