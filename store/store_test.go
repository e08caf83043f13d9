package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/mindsense/internal/profile"
	"github.com/hrygo/mindsense/store"
	"github.com/hrygo/mindsense/store/db/sqlite"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	p := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "mindsense_test.db"),
	}
	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)

	s := store.New(driver, p)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestConversationTurnRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateConversationTurn(ctx, &store.ConversationTurn{
		UserID:     "user-1",
		SessionID:  "sess-1",
		UserInput:  "I'm stressed about work",
		AIResponse: "Tell me more about that.",
		Emotion:    "stressed",
		Topics:     "work",
		CreatedTs:  100,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = s.CreateConversationTurn(ctx, &store.ConversationTurn{
		UserID:     "user-1",
		SessionID:  "sess-1",
		UserInput:  "Still stressed",
		AIResponse: "What changed since yesterday?",
		Emotion:    "stressed",
		Topics:     "work",
		CreatedTs:  200,
	})
	require.NoError(t, err)

	userID := "user-1"
	turns, err := s.ListConversationTurns(ctx, &store.FindConversationTurn{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "I'm stressed about work", turns[0].UserInput, "turns replay oldest first")
	assert.Equal(t, int64(200), turns[1].CreatedTs)

	other := "user-2"
	none, err := s.ListConversationTurns(ctx, &store.FindConversationTurn{UserID: &other})
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, s.DeleteConversationTurns(ctx, &store.DeleteConversationTurn{UserID: userID}))
	turns, err = s.ListConversationTurns(ctx, &store.FindConversationTurn{UserID: &userID})
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestConversationTurnDescReadsNewestWindow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 1; i <= 5; i++ {
		_, err := s.CreateConversationTurn(ctx, &store.ConversationTurn{
			UserID:     "user-1",
			SessionID:  "sess-1",
			UserInput:  "message",
			AIResponse: "reply",
			Emotion:    "neutral",
			CreatedTs:  int64(i * 100),
		})
		require.NoError(t, err)
	}

	userID := "user-1"
	limit := 2
	turns, err := s.ListConversationTurns(ctx, &store.FindConversationTurn{
		UserID: &userID,
		Limit:  &limit,
		Desc:   true,
	})
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, int64(500), turns[0].CreatedTs)
	assert.Equal(t, int64(400), turns[1].CreatedTs)
}

func TestEmotionalSampleRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.CreateEmotionalSample(ctx, &store.EmotionalSample{
		UserID: "user-1", State: "happy", Topics: "growth", CreatedTs: 10,
	})
	require.NoError(t, err)
	_, err = s.CreateEmotionalSample(ctx, &store.EmotionalSample{
		UserID: "user-1", State: "stressed", Topics: "work", CreatedTs: 20,
	})
	require.NoError(t, err)

	userID := "user-1"
	samples, err := s.ListEmotionalSamples(ctx, &store.FindEmotionalSample{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "happy", samples[0].State)
	assert.Equal(t, "stressed", samples[1].State)
}

func TestDocumentAndChunkRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	doc, err := s.CreateImportedDocument(ctx, &store.ImportedDocument{
		UID:       "doc-uid-1",
		UserID:    "user-1",
		Title:     "journal.txt",
		Type:      "txt",
		Class:     "journal",
		Tone:      "positive",
		WordCount: 420,
		SizeBytes: 2048,
	})
	require.NoError(t, err)
	assert.NotZero(t, doc.ID)
	assert.NotZero(t, doc.CreatedTs, "created_ts defaults to now")

	for i, content := range []string{"first chunk", "second chunk", "third chunk"} {
		_, err := s.CreateDocumentChunk(ctx, &store.DocumentChunk{
			DocumentUID: doc.UID,
			UserID:      "user-1",
			Content:     content,
			Emotion:     "neutral",
			Topics:      "general",
			Position:    int32(i),
		})
		require.NoError(t, err)
	}

	uid := doc.UID
	chunks, err := s.ListDocumentChunks(ctx, &store.FindDocumentChunk{DocumentUID: &uid})
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "first chunk", chunks[0].Content)
	assert.Equal(t, int32(2), chunks[2].Position)

	userID := "user-1"
	docs, err := s.ListImportedDocuments(ctx, &store.FindImportedDocument{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "journal", docs[0].Class)

	require.NoError(t, s.DeleteImportedDocument(ctx, &store.DeleteImportedDocument{UID: uid}))
	chunks, err = s.ListDocumentChunks(ctx, &store.FindDocumentChunk{DocumentUID: &uid})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
