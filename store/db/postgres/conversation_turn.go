package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/hrygo/mindsense/store"
)

func (db *DB) CreateConversationTurn(ctx context.Context, create *store.ConversationTurn) (*store.ConversationTurn, error) {
	query := `
		INSERT INTO conversation_turn (user_id, session_id, user_input, ai_response, emotion, topics, created_ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	err := db.db.QueryRowContext(ctx, query,
		create.UserID,
		create.SessionID,
		create.UserInput,
		create.AIResponse,
		create.Emotion,
		create.Topics,
		create.CreatedTs,
	).Scan(&create.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation turn: %w", err)
	}
	return create, nil
}

func (db *DB) ListConversationTurns(ctx context.Context, find *store.FindConversationTurn) ([]*store.ConversationTurn, error) {
	query := `
		SELECT id, user_id, session_id, user_input, ai_response, emotion, topics, created_ts
		FROM conversation_turn
		WHERE 1=1
	`
	var args []interface{}
	argIndex := 1

	if find.ID != nil {
		query += fmt.Sprintf(" AND id = $%d", argIndex)
		args = append(args, *find.ID)
		argIndex++
	}
	if find.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, *find.UserID)
		argIndex++
	}

	if find.Desc {
		query += " ORDER BY created_ts DESC, id DESC"
	} else {
		query += " ORDER BY created_ts ASC, id ASC"
	}
	if find.Limit != nil {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, *find.Limit)
		argIndex++
	}
	if find.Offset != nil {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *find.Offset)
	}

	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation turns: %w", err)
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
			return nil, fmt.Errorf("failed to scan conversation turn: %w", err)
		}
		turns = append(turns, &turn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return turns, nil
}

func (db *DB) DeleteConversationTurns(ctx context.Context, delete *store.DeleteConversationTurn) error {
	if _, err := db.db.ExecContext(ctx, `DELETE FROM conversation_turn WHERE user_id = $1`, delete.UserID); err != nil {
		return fmt.Errorf("failed to delete conversation turns: %w", err)
	}
	return nil
}
