package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/mindsense/store"
)

// CreateConversationTurn persists one chat exchange.
func (d *DB) CreateConversationTurn(ctx context.Context, create *store.ConversationTurn) (*store.ConversationTurn, error) {
	stmt := `
		INSERT INTO conversation_turn (user_id, session_id, user_input, ai_response, emotion, topics, created_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	err := d.db.QueryRowContext(ctx, stmt,
		create.UserID,
		create.SessionID,
		create.UserInput,
		create.AIResponse,
		create.Emotion,
		create.Topics,
		create.CreatedTs,
	).Scan(&create.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create conversation turn")
	}
	return create, nil
}

// ListConversationTurns lists turns oldest first so callers can replay them
// in conversation order, or newest first when find.Desc is set.
func (d *DB) ListConversationTurns(ctx context.Context, find *store.FindConversationTurn) ([]*store.ConversationTurn, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if find.UserID != nil {
		where, args = append(where, "user_id = ?"), append(args, *find.UserID)
	}

	order := "ASC"
	if find.Desc {
		order = "DESC"
	}
	query := `SELECT id, user_id, session_id, user_input, ai_response, emotion, topics, created_ts
		FROM conversation_turn
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts ` + order + `, id ` + order
	if find.Limit != nil {
		query += " LIMIT ?"
		args = append(args, *find.Limit)
	}
	if find.Offset != nil {
		query += " OFFSET ?"
		args = append(args, *find.Offset)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list conversation turns")
	}
	defer rows.Close()

	var turns []*store.ConversationTurn
	for rows.Next() {
		var turn store.ConversationTurn
		if err := rows.Scan(
			&turn.ID,
			&turn.UserID,
			&turn.SessionID,
			&turn.UserInput,
			&turn.AIResponse,
			&turn.Emotion,
			&turn.Topics,
			&turn.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan conversation turn")
		}
		turns = append(turns, &turn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return turns, nil
}

// DeleteConversationTurns removes all turns for a user.
func (d *DB) DeleteConversationTurns(ctx context.Context, delete *store.DeleteConversationTurn) error {
	stmt := `DELETE FROM conversation_turn WHERE user_id = ?`
	if _, err := d.db.ExecContext(ctx, stmt, delete.UserID); err != nil {
		return errors.Wrap(err, "failed to delete conversation turns")
	}
	return nil
}
