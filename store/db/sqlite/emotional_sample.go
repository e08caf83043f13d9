package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/mindsense/store"
)

// CreateEmotionalSample persists one emotional-state observation.
func (d *DB) CreateEmotionalSample(ctx context.Context, create *store.EmotionalSample) (*store.EmotionalSample, error) {
	stmt := `
		INSERT INTO emotional_sample (user_id, state, topics, created_ts)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	err := d.db.QueryRowContext(ctx, stmt,
		create.UserID,
		create.State,
		create.Topics,
		create.CreatedTs,
	).Scan(&create.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create emotional sample")
	}
	return create, nil
}

// ListEmotionalSamples lists samples oldest first.
func (d *DB) ListEmotionalSamples(ctx context.Context, find *store.FindEmotionalSample) ([]*store.EmotionalSample, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.UserID != nil {
		where, args = append(where, "user_id = ?"), append(args, *find.UserID)
	}

	query := `SELECT id, user_id, state, topics, created_ts
		FROM emotional_sample
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts ASC, id ASC`
	if find.Limit != nil {
		query += " LIMIT ?"
		args = append(args, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list emotional samples")
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
			return nil, errors.Wrap(err, "failed to scan emotional sample")
		}
		samples = append(samples, &sample)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// DeleteEmotionalSamples removes all samples for a user.
func (d *DB) DeleteEmotionalSamples(ctx context.Context, delete *store.DeleteEmotionalSample) error {
	stmt := `DELETE FROM emotional_sample WHERE user_id = ?`
	if _, err := d.db.ExecContext(ctx, stmt, delete.UserID); err != nil {
		return errors.Wrap(err, "failed to delete emotional samples")
	}
	return nil
}
