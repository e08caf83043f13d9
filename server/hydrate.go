package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/mindsense/ai/engine"
	"github.com/hrygo/mindsense/ai/memory"
	"github.com/hrygo/mindsense/store"
)

// hydratedSession returns the user's live session, rebuilding its in-memory
// windows from the persistence layer when the session is fresh. Hydration is
// best effort: a failed read logs and leaves the session empty rather than
// failing the request.
func (s *Server) hydratedSession(c echo.Context, userID string) *engine.Session {
	if session, ok := s.Engine.Sessions().Lookup(userID); ok {
		return session
	}

	session := s.Engine.Sessions().Get(userID)
	ctx := c.Request().Context()

	// Restore keeps only the most recent window, so no limits needed here.
	turnRecords, err := s.Store.ListConversationTurns(ctx, &store.FindConversationTurn{UserID: &userID})
	if err != nil {
		slog.Warn("failed to hydrate turns", "user_id", userID, "error", err)
		return session
	}
	sampleRecords, err := s.Store.ListEmotionalSamples(ctx, &store.FindEmotionalSample{UserID: &userID})
	if err != nil {
		slog.Warn("failed to hydrate samples", "user_id", userID, "error", err)
		return session
	}
	chunkRecords, err := s.Store.ListDocumentChunks(ctx, &store.FindDocumentChunk{UserID: &userID})
	if err != nil {
		slog.Warn("failed to hydrate chunks", "user_id", userID, "error", err)
		return session
	}

	if len(turnRecords) == 0 && len(sampleRecords) == 0 && len(chunkRecords) == 0 {
		return session
	}

	titles := s.documentTitles(c, userID)

	turns := make([]memory.ConversationTurn, 0, len(turnRecords))
	for _, record := range turnRecords {
		turns = append(turns, recordToTurn(record))
	}
	samples := make([]memory.EmotionalSample, 0, len(sampleRecords))
	for _, record := range sampleRecords {
		samples = append(samples, recordToSample(record))
	}
	chunks := make([]memory.ImportedChunk, 0, len(chunkRecords))
	for _, record := range chunkRecords {
		chunks = append(chunks, recordToChunk(record, titles[record.DocumentUID]))
	}

	session.Store().Restore(turns, samples, chunks)
	slog.Debug("session hydrated",
		"user_id", userID,
		"turns", len(turns),
		"samples", len(samples),
		"chunks", len(chunks))
	return session
}

// documentTitles maps document UIDs to titles for chunk attribution.
func (s *Server) documentTitles(c echo.Context, userID string) map[string]string {
	titles := make(map[string]string)
	docs, err := s.Store.ListImportedDocuments(c.Request().Context(), &store.FindImportedDocument{UserID: &userID})
	if err != nil {
		slog.Warn("failed to list documents for hydration", "user_id", userID, "error", err)
		return titles
	}
	for _, doc := range docs {
		titles[doc.UID] = doc.Title
	}
	return titles
}
