package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/hrygo/mindsense/store"
)

func (db *DB) CreateImportedDocument(ctx context.Context, create *store.ImportedDocument) (*store.ImportedDocument, error) {
	query := `
		INSERT INTO imported_document (uid, user_id, title, type, class, tone, word_count, size_bytes, created_ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	err := db.db.QueryRowContext(ctx, query,
		create.UID,
		create.UserID,
		create.Title,
		create.Type,
		create.Class,
		create.Tone,
		create.WordCount,
		create.SizeBytes,
		create.CreatedTs,
	).Scan(&create.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create imported document: %w", err)
	}
	return create, nil
}

func (db *DB) ListImportedDocuments(ctx context.Context, find *store.FindImportedDocument) ([]*store.ImportedDocument, error) {
	query := `
		SELECT id, uid, user_id, title, type, class, tone, word_count, size_bytes, created_ts
		FROM imported_document
		WHERE 1=1
	`
	var args []interface{}
	argIndex := 1

	if find.ID != nil {
		query += fmt.Sprintf(" AND id = $%d", argIndex)
		args = append(args, *find.ID)
		argIndex++
	}
	if find.UID != nil {
		query += fmt.Sprintf(" AND uid = $%d", argIndex)
		args = append(args, *find.UID)
		argIndex++
	}
	if find.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, *find.UserID)
		argIndex++
	}

	query += " ORDER BY created_ts DESC"
	if find.Limit != nil {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, *find.Limit)
	}

	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list imported documents: %w", err)
	}
	defer rows.Close()

	var docs []*store.ImportedDocument
	for rows.Next() {
		var doc store.ImportedDocument
		if err := rows.Scan(
			&doc.ID,
			&doc.UID,
			&doc.UserID,
			&doc.Title,
			&doc.Type,
			&doc.Class,
			&doc.Tone,
			&doc.WordCount,
			&doc.SizeBytes,
			&doc.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan imported document: %w", err)
		}
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (db *DB) DeleteImportedDocument(ctx context.Context, delete *store.DeleteImportedDocument) error {
	if _, err := db.db.ExecContext(ctx, `DELETE FROM document_chunk WHERE document_uid = $1`, delete.UID); err != nil {
		return fmt.Errorf("failed to delete document chunks: %w", err)
	}
	if _, err := db.db.ExecContext(ctx, `DELETE FROM imported_document WHERE uid = $1`, delete.UID); err != nil {
		return fmt.Errorf("failed to delete imported document: %w", err)
	}
	return nil
}

func (db *DB) CreateDocumentChunk(ctx context.Context, create *store.DocumentChunk) (*store.DocumentChunk, error) {
	query := `
		INSERT INTO document_chunk (document_uid, user_id, content, emotion, topics, position, created_ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	err := db.db.QueryRowContext(ctx, query,
		create.DocumentUID,
		create.UserID,
		create.Content,
		create.Emotion,
		create.Topics,
		create.Position,
		create.CreatedTs,
	).Scan(&create.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create document chunk: %w", err)
	}
	return create, nil
}

func (db *DB) ListDocumentChunks(ctx context.Context, find *store.FindDocumentChunk) ([]*store.DocumentChunk, error) {
	query := `
		SELECT id, document_uid, user_id, content, emotion, topics, position, created_ts
		FROM document_chunk
		WHERE 1=1
	`
	var args []interface{}
	argIndex := 1

	if find.DocumentUID != nil {
		query += fmt.Sprintf(" AND document_uid = $%d", argIndex)
		args = append(args, *find.DocumentUID)
		argIndex++
	}
	if find.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, *find.UserID)
		argIndex++
	}

	query += " ORDER BY created_ts ASC, position ASC"
	if find.Limit != nil {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, *find.Limit)
	}

	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list document chunks: %w", err)
	}
	defer rows.Close()

	var chunks []*store.DocumentChunk
	for rows.Next() {
		var chunk store.DocumentChunk
		if err := rows.Scan(
			&chunk.ID,
			&chunk.DocumentUID,
			&chunk.UserID,
			&chunk.Content,
			&chunk.Emotion,
			&chunk.Topics,
			&chunk.Position,
			&chunk.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document chunk: %w", err)
		}
		chunks = append(chunks, &chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return chunks, nil
}
