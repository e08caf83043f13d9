package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/mindsense/ai/analysis"
	"github.com/hrygo/mindsense/ai/core/llm"
	"github.com/hrygo/mindsense/ai/docimport"
	"github.com/hrygo/mindsense/ai/engine"
	"github.com/hrygo/mindsense/ai/metrics"
	"github.com/hrygo/mindsense/internal/profile"
	"github.com/hrygo/mindsense/server/auth"
	"github.com/hrygo/mindsense/store"
	"github.com/hrygo/mindsense/store/db/sqlite"
)

type mockModel struct {
	response string
	err      error
	calls    int
}

func (m *mockModel) Chat(ctx context.Context, messages []llm.Message) (string, *llm.CallStats, error) {
	m.calls++
	if m.err != nil {
		return "", nil, m.err
	}
	return m.response, &llm.CallStats{TotalTokens: 42}, nil
}

func (m *mockModel) Warmup(ctx context.Context) {}

func newTestServer(t *testing.T, secret string) (*Server, *mockModel) {
	t.Helper()

	p := &profile.Profile{
		Mode:      "demo",
		Driver:    "sqlite",
		DSN:       filepath.Join(t.TempDir(), "test.db"),
		SecretKey: secret,
		Metrics:   true,
	}

	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)
	st := store.New(driver, p)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { _ = st.Close() })

	model := &mockModel{response: "That sounds heavy. What part weighs on you most?"}
	sessions := engine.NewSessionManager(engine.SessionManagerConfig{})
	pipeline := docimport.NewPipeline(docimport.DefaultConfig())
	exporter := metrics.NewPrometheusExporter(metrics.DefaultConfig())
	eng := engine.New(engine.DefaultConfig(), model, sessions, pipeline, exporter)

	return NewServer(p, st, eng, exporter), model
}

func doRequest(t *testing.T, s *Server, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(raw)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set(echoHeaderContentType, "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	s.echoServer.ServeHTTP(rec, req)
	return rec
}

const echoHeaderContentType = "Content-Type"

func journalBody() map[string]string {
	return map[string]string{
		"title": "spring journal",
		"type":  "txt",
		"content": "Today I sat with my morning journal and wrote about the pressure at work before anyone else woke up.\n\n" +
			"Today I noticed the deadline worries fading once I named them on paper and took three slow breaths.\n\n" +
			"Today I am grateful for the quiet habit of writing, it keeps my head clear through the busy season.",
	}
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := doRequest(t, s, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestChatRequiresAuth(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := doRequest(t, s, http.MethodPost, "/api/v1/chat", "", map[string]string{"message": "hello"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChatPersistsTurn(t *testing.T) {
	s, model := newTestServer(t, "")

	rec := doRequest(t, s, http.MethodPost, "/api/v1/chat", "user-1",
		map[string]string{"message": "I'm so stressed about the project deadline at work"})
	require.Equal(t, http.StatusOK, rec.Code)

	var result engine.ChatResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, model.response, result.Response)
	assert.Equal(t, analysis.EmotionStressed, result.Emotion)
	assert.False(t, result.Fallback)

	userID := "user-1"
	turns, err := s.Store.ListConversationTurns(context.Background(), &store.FindConversationTurn{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "I'm so stressed about the project deadline at work", turns[0].UserInput)
	assert.Equal(t, result.SessionID, turns[0].SessionID)

	samples, err := s.Store.ListEmotionalSamples(context.Background(), &store.FindEmotionalSample{UserID: &userID})
	require.NoError(t, err)
	assert.Len(t, samples, 1)
}

func TestChatValidation(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := doRequest(t, s, http.MethodPost, "/api/v1/chat", "user-1", map[string]string{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/chat", "user-1",
		map[string]string{"message": "hello", "persona": "drill_sergeant"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/chat", "user-1",
		map[string]string{"message": strings.Repeat("a", maxMessageLen+1)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatCacheHitNotPersisted(t *testing.T) {
	s, model := newTestServer(t, "")
	userID := "user-1"

	first := doRequest(t, s, http.MethodPost, "/api/v1/chat", userID, map[string]string{"message": "hello there"})
	require.Equal(t, http.StatusOK, first.Code)
	second := doRequest(t, s, http.MethodPost, "/api/v1/chat", userID, map[string]string{"message": "hello there"})
	require.Equal(t, http.StatusOK, second.Code)

	var result engine.ChatResult
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &result))
	assert.True(t, result.CacheHit)
	assert.Equal(t, 1, model.calls)

	turns, err := s.Store.ListConversationTurns(context.Background(), &store.FindConversationTurn{UserID: &userID})
	require.NoError(t, err)
	assert.Len(t, turns, 1)
}

func TestHistory(t *testing.T) {
	s, _ := newTestServer(t, "")

	doRequest(t, s, http.MethodPost, "/api/v1/chat", "user-1", map[string]string{"message": "first message here"})
	doRequest(t, s, http.MethodPost, "/api/v1/chat", "user-1", map[string]string{"message": "second message here"})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/history", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Turns []map[string]any `json:"turns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Turns, 2)
	assert.Equal(t, "first message here", body.Turns[0]["user_input"])
}

func TestHistoryKeepsRecentTurnsWhenOverLimit(t *testing.T) {
	s, _ := newTestServer(t, "")
	userID := "user-1"

	for i := 1; i <= 60; i++ {
		_, err := s.Store.CreateConversationTurn(context.Background(), &store.ConversationTurn{
			UserID:     userID,
			SessionID:  "sess-1",
			UserInput:  "message",
			AIResponse: "reply",
			Emotion:    "neutral",
			CreatedTs:  int64(i * 100),
		})
		require.NoError(t, err)
	}

	rec := doRequest(t, s, http.MethodGet, "/api/v1/history", userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Turns []map[string]any `json:"turns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Turns, 50)

	// The window drops the oldest turns, not the newest, and stays in
	// conversation order.
	assert.Equal(t, float64(1100), body.Turns[0]["created_ts"])
	assert.Equal(t, float64(6000), body.Turns[49]["created_ts"])
}

func TestImportAndListDocuments(t *testing.T) {
	s, _ := newTestServer(t, "")
	userID := "user-1"

	rec := doRequest(t, s, http.MethodPost, "/api/v1/documents", userID, journalBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var result docimport.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 3, result.ChunksProcessed)
	assert.Equal(t, docimport.ClassJournal, result.Insights.DocumentType)

	list := doRequest(t, s, http.MethodGet, "/api/v1/documents", userID, nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"class":"journal"`)
	assert.Contains(t, list.Body.String(), `"title":"spring journal"`)

	chunks, err := s.Store.ListDocumentChunks(context.Background(), &store.FindDocumentChunk{UserID: &userID})
	require.NoError(t, err)
	assert.Len(t, chunks, 3)
}

func TestImportRejectsUnsupportedType(t *testing.T) {
	s, _ := newTestServer(t, "")

	body := journalBody()
	body["type"] = "exe"
	rec := doRequest(t, s, http.MethodPost, "/api/v1/documents", "user-1", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsightsHydratesFromStore(t *testing.T) {
	s, _ := newTestServer(t, "")
	userID := "user-1"

	rec := doRequest(t, s, http.MethodPost, "/api/v1/chat", userID,
		map[string]string{"message": "I'm excited about my new habit plan"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Simulate a restart: the live session is gone, only the store remains.
	require.True(t, s.Engine.Sessions().Remove(userID))

	insights := doRequest(t, s, http.MethodGet, "/api/v1/insights", userID, nil)
	require.Equal(t, http.StatusOK, insights.Code)

	var report engine.InsightsReport
	require.NoError(t, json.Unmarshal(insights.Body.Bytes(), &report))
	assert.Equal(t, 1, report.Turns)
}

func TestResetMemory(t *testing.T) {
	s, _ := newTestServer(t, "")
	userID := "user-1"

	doRequest(t, s, http.MethodPost, "/api/v1/chat", userID, map[string]string{"message": "hello there"})
	doRequest(t, s, http.MethodPost, "/api/v1/documents", userID, journalBody())

	rec := doRequest(t, s, http.MethodDelete, "/api/v1/memory", userID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	turns, err := s.Store.ListConversationTurns(context.Background(), &store.FindConversationTurn{UserID: &userID})
	require.NoError(t, err)
	assert.Empty(t, turns)

	docs, err := s.Store.ListImportedDocuments(context.Background(), &store.FindImportedDocument{UserID: &userID})
	require.NoError(t, err)
	assert.Empty(t, docs)

	chunks, err := s.Store.ListDocumentChunks(context.Background(), &store.FindDocumentChunk{UserID: &userID})
	require.NoError(t, err)
	assert.Empty(t, chunks)

	_, ok := s.Engine.Sessions().Lookup(userID)
	assert.False(t, ok)
}

func TestTokenDisabledInDemoMode(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := doRequest(t, s, http.MethodPost, "/api/v1/auth/token", "", map[string]string{"user_id": "user-1"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBearerAuth(t *testing.T) {
	s, _ := newTestServer(t, "sekrit")

	rec := doRequest(t, s, http.MethodPost, "/api/v1/auth/token", "", map[string]string{"user_id": "user-1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)

	raw, err := json.Marshal(map[string]string{"message": "hello there"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBuffer(raw))
	req.Header.Set(echoHeaderContentType, "application/json")
	req.Header.Set("Authorization", "Bearer "+body.Token)
	chatRec := httptest.NewRecorder()
	s.echoServer.ServeHTTP(chatRec, req)
	assert.Equal(t, http.StatusOK, chatRec.Code)

	// The header fallback is not honored once a secret is configured.
	denied := doRequest(t, s, http.MethodPost, "/api/v1/chat", "user-1", map[string]string{"message": "hello"})
	assert.Equal(t, http.StatusUnauthorized, denied.Code)

	subject, err := auth.VerifyToken("sekrit", body.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}
