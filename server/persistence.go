package server

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/mindsense/ai/docimport"
	"github.com/hrygo/mindsense/ai/engine"
	"github.com/hrygo/mindsense/ai/memory"
	"github.com/hrygo/mindsense/store"
)

// persistTurn writes one completed conversation turn and its emotional sample.
// Persistence failures are logged, not surfaced; the in-memory session already
// holds the turn and the response has been produced.
func (s *Server) persistTurn(c echo.Context, userID, sessionID, message string, result *engine.ChatResult) {
	ctx := c.Request().Context()
	now := time.Now()

	turn := memory.ConversationTurn{
		Timestamp:  now,
		UserInput:  message,
		AIResponse: result.Response,
		Emotion:    result.Emotion,
		Topics:     result.Topics,
	}
	if _, err := s.Store.CreateConversationTurn(ctx, turnToRecord(userID, sessionID, turn)); err != nil {
		slog.Warn("failed to persist conversation turn", "user_id", userID, "error", err)
		return
	}

	sample := memory.EmotionalSample{
		State:     result.Emotion,
		Timestamp: now,
		Topics:    result.Topics,
	}
	if _, err := s.Store.CreateEmotionalSample(ctx, sampleToRecord(userID, sample)); err != nil {
		slog.Warn("failed to persist emotional sample", "user_id", userID, "error", err)
	}
}

// persistImport writes the document metadata record and the analyzed chunks
// that the pipeline just appended to the session's memory store.
func (s *Server) persistImport(c echo.Context, userID string, session *engine.Session, result *docimport.ImportResult) {
	ctx := c.Request().Context()
	meta := result.Metadata

	record := &store.ImportedDocument{
		UID:       meta.ID,
		UserID:    userID,
		Title:     meta.Title,
		Type:      meta.Type,
		Class:     string(meta.DocumentType),
		Tone:      string(meta.OverallTone),
		WordCount: int32(meta.WordCount),
		SizeBytes: meta.SizeBytes,
		CreatedTs: meta.ImportedAt.Unix(),
	}
	if _, err := s.Store.CreateImportedDocument(ctx, record); err != nil {
		slog.Warn("failed to persist imported document", "user_id", userID, "title", meta.Title, "error", err)
		return
	}

	// The pipeline appends its chunks last, so the tail of the imported
	// window is exactly this document's chunks in order. The window may
	// have evicted leading chunks of a very large document.
	chunks := session.Store().ImportedChunks()
	start := len(chunks) - result.ChunksProcessed
	offset := 0
	if start < 0 {
		offset = -start
		start = 0
	}
	for i, chunk := range chunks[start:] {
		chunkRecord := &store.DocumentChunk{
			DocumentUID: meta.ID,
			UserID:      userID,
			Content:     chunk.Content,
			Emotion:     string(chunk.Analysis.Emotion),
			Topics:      joinTopics(chunk.Analysis.Topics),
			Position:    int32(offset + i),
			CreatedTs:   chunk.Timestamp.Unix(),
		}
		if _, err := s.Store.CreateDocumentChunk(ctx, chunkRecord); err != nil {
			slog.Warn("failed to persist document chunk", "user_id", userID, "title", meta.Title, "error", err)
			return
		}
	}
}
