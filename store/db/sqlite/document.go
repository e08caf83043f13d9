package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/mindsense/store"
)

// CreateImportedDocument persists imported-document metadata.
func (d *DB) CreateImportedDocument(ctx context.Context, create *store.ImportedDocument) (*store.ImportedDocument, error) {
	stmt := `
		INSERT INTO imported_document (uid, user_id, title, type, class, tone, word_count, size_bytes, created_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	err := d.db.QueryRowContext(ctx, stmt,
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
		return nil, errors.Wrap(err, "failed to create imported document")
	}
	return create, nil
}

// ListImportedDocuments lists documents, newest first.
func (d *DB) ListImportedDocuments(ctx context.Context, find *store.FindImportedDocument) ([]*store.ImportedDocument, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if find.UID != nil {
		where, args = append(where, "uid = ?"), append(args, *find.UID)
	}
	if find.UserID != nil {
		where, args = append(where, "user_id = ?"), append(args, *find.UserID)
	}

	query := `SELECT id, uid, user_id, title, type, class, tone, word_count, size_bytes, created_ts
		FROM imported_document
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC`
	if find.Limit != nil {
		query += " LIMIT ?"
		args = append(args, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list imported documents")
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
			return nil, errors.Wrap(err, "failed to scan imported document")
		}
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteImportedDocument removes a document and its chunks.
func (d *DB) DeleteImportedDocument(ctx context.Context, delete *store.DeleteImportedDocument) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM document_chunk WHERE document_uid = ?`, delete.UID); err != nil {
		return errors.Wrap(err, "failed to delete document chunks")
	}
	if _, err := d.db.ExecContext(ctx, `DELETE FROM imported_document WHERE uid = ?`, delete.UID); err != nil {
		return errors.Wrap(err, "failed to delete imported document")
	}
	return nil
}

// CreateDocumentChunk persists one analyzed chunk.
func (d *DB) CreateDocumentChunk(ctx context.Context, create *store.DocumentChunk) (*store.DocumentChunk, error) {
	stmt := `
		INSERT INTO document_chunk (document_uid, user_id, content, emotion, topics, position, created_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	err := d.db.QueryRowContext(ctx, stmt,
		create.DocumentUID,
		create.UserID,
		create.Content,
		create.Emotion,
		create.Topics,
		create.Position,
		create.CreatedTs,
	).Scan(&create.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create document chunk")
	}
	return create, nil
}

// ListDocumentChunks lists chunks in document order.
func (d *DB) ListDocumentChunks(ctx context.Context, find *store.FindDocumentChunk) ([]*store.DocumentChunk, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.DocumentUID != nil {
		where, args = append(where, "document_uid = ?"), append(args, *find.DocumentUID)
	}
	if find.UserID != nil {
		where, args = append(where, "user_id = ?"), append(args, *find.UserID)
	}

	query := `SELECT id, document_uid, user_id, content, emotion, topics, position, created_ts
		FROM document_chunk
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts ASC, position ASC`
	if find.Limit != nil {
		query += " LIMIT ?"
		args = append(args, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list document chunks")
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
			return nil, errors.Wrap(err, "failed to scan document chunk")
		}
		chunks = append(chunks, &chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return chunks, nil
}
