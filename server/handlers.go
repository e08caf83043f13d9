package server

import (
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hrygo/mindsense/ai/docimport"
	"github.com/hrygo/mindsense/ai/persona"
	"github.com/hrygo/mindsense/server/auth"
	"github.com/hrygo/mindsense/store"
)

const maxMessageLen = 8 * 1024

type tokenRequest struct {
	UserID string `json:"user_id"`
}

// handleToken issues a bearer token. Only enabled when a secret is
// configured; demo mode authenticates with the X-User-ID header instead.
func (s *Server) handleToken(c echo.Context) error {
	if s.Profile.SecretKey == "" {
		return echo.NewHTTPError(http.StatusNotFound, "token auth is disabled, use the X-User-ID header")
	}

	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request").SetInternal(err)
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	token, err := auth.GenerateToken(s.Profile.SecretKey, req.UserID, auth.DefaultTokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to sign token").SetInternal(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

type chatRequest struct {
	Message          string `json:"message"`
	Persona          string `json:"persona,omitempty"`
	ProfanityAllowed *bool  `json:"profanity_allowed,omitempty"`
}

func (s *Server) handleChat(c echo.Context) error {
	userID := auth.UserID(c)

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request").SetInternal(err)
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}
	if len(req.Message) > maxMessageLen {
		return echo.NewHTTPError(http.StatusBadRequest, "message is too long")
	}

	session := s.hydratedSession(c, userID)
	if req.Persona != "" {
		id := persona.ID(req.Persona)
		if _, ok := persona.Lookup(id); !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown persona")
		}
		session.SetPreferredPersona(id)
	}
	if req.ProfanityAllowed != nil {
		session.SetProfanityAllowed(*req.ProfanityAllowed)
	}

	result := s.Engine.Chat(c.Request().Context(), userID, req.Message)

	// Fresh turns are persisted so a future session can be rehydrated.
	// Cache hits and fallbacks never touched the in-memory history, so
	// there is nothing to persist for them.
	if !result.Fallback && !result.CacheHit {
		s.persistTurn(c, userID, result.SessionID, req.Message, result)
	}

	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleHistory(c echo.Context) error {
	userID := auth.UserID(c)
	limit := 50

	// Newest-first read so the window holds the most recent turns, then
	// reversed back into conversation order for display.
	turns, err := s.Store.ListConversationTurns(c.Request().Context(), &store.FindConversationTurn{
		UserID: &userID,
		Limit:  &limit,
		Desc:   true,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load history").SetInternal(err)
	}
	slices.Reverse(turns)

	items := make([]map[string]any, 0, len(turns))
	for _, turn := range turns {
		items = append(items, map[string]any{
			"user_input":  turn.UserInput,
			"ai_response": turn.AIResponse,
			"emotion":     turn.Emotion,
			"topics":      splitTopics(turn.Topics),
			"created_ts":  turn.CreatedTs,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"turns": items})
}

func (s *Server) handleInsights(c echo.Context) error {
	userID := auth.UserID(c)
	s.hydratedSession(c, userID)

	report, ok := s.Engine.Insights(userID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no live session")
	}
	return c.JSON(http.StatusOK, report)
}

type importRequest struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

func (s *Server) handleImportDocument(c echo.Context) error {
	userID := auth.UserID(c)

	var req importRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request").SetInternal(err)
	}
	if strings.TrimSpace(req.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	session := s.hydratedSession(c, userID)

	doc := docimport.ExtractedDocument{
		Title:        req.Title,
		DeclaredType: req.Type,
		Content:      req.Content,
		SizeBytes:    int64(len(req.Content)),
	}
	result, err := s.Engine.ImportDocument(c.Request().Context(), userID, doc)
	if err != nil {
		switch {
		case errors.Is(err, docimport.ErrUnsupportedType),
			errors.Is(err, docimport.ErrEmptyDocument),
			errors.Is(err, docimport.ErrDocumentTooLarge):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "import failed").SetInternal(err)
		}
	}

	s.persistImport(c, userID, session, result)

	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleListDocuments(c echo.Context) error {
	userID := auth.UserID(c)

	docs, err := s.Store.ListImportedDocuments(c.Request().Context(), &store.FindImportedDocument{UserID: &userID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list documents").SetInternal(err)
	}

	items := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		items = append(items, map[string]any{
			"uid":        doc.UID,
			"title":      doc.Title,
			"type":       doc.Type,
			"class":      doc.Class,
			"tone":       doc.Tone,
			"word_count": doc.WordCount,
			"created_ts": doc.CreatedTs,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"documents": items})
}

// handleResetMemory wipes the user's persisted history and drops their live
// session.
func (s *Server) handleResetMemory(c echo.Context) error {
	userID := auth.UserID(c)
	ctx := c.Request().Context()

	if err := s.Store.DeleteConversationTurns(ctx, &store.DeleteConversationTurn{UserID: userID}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete history").SetInternal(err)
	}
	if err := s.Store.DeleteEmotionalSamples(ctx, &store.DeleteEmotionalSample{UserID: userID}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete samples").SetInternal(err)
	}

	docs, err := s.Store.ListImportedDocuments(ctx, &store.FindImportedDocument{UserID: &userID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list documents").SetInternal(err)
	}
	for _, doc := range docs {
		if err := s.Store.DeleteImportedDocument(ctx, &store.DeleteImportedDocument{UID: doc.UID}); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete document").SetInternal(err)
		}
	}

	s.Engine.Sessions().Remove(userID)

	return c.NoContent(http.StatusNoContent)
}
