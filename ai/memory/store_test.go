package memory

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/mindsense/ai/analysis"
)

func testTurn(i int) ConversationTurn {
	return ConversationTurn{
		Timestamp:  time.Date(2026, 3, 1, 10, 0, i, 0, time.UTC),
		UserInput:  fmt.Sprintf("turn number %d", i),
		AIResponse: "noted",
		Emotion:    analysis.EmotionNeutral,
		Topics:     []analysis.Topic{analysis.TopicGeneral},
	}
}

func TestRecordTurnBoundedGrowth(t *testing.T) {
	const window, extra = 50, 7
	s := NewStore(Config{MaxTurns: window})

	for i := 0; i < window+extra; i++ {
		s.RecordTurn(testTurn(i))
	}

	turns := s.Turns()
	require.Len(t, turns, window)
	// The first retained turn is the (extra+1)-th ever recorded.
	assert.Equal(t, fmt.Sprintf("turn number %d", extra), turns[0].UserInput)
	assert.Equal(t, fmt.Sprintf("turn number %d", window+extra-1), turns[window-1].UserInput)
}

func TestRecordTurn51TimesCap50(t *testing.T) {
	s := NewStore(Config{MaxTurns: 50})
	for i := 0; i < 51; i++ {
		s.RecordTurn(testTurn(i))
	}

	turns := s.Turns()
	require.Len(t, turns, 50)
	for _, turn := range turns {
		assert.NotEqual(t, "turn number 0", turn.UserInput, "oldest turn must be gone")
	}
}

func TestRecordEmotionalSampleBounded(t *testing.T) {
	s := NewStore(Config{MaxEmotionalSamples: 5})
	for i := 0; i < 9; i++ {
		s.RecordEmotionalSample(EmotionalSample{
			State:     analysis.EmotionHappy,
			Timestamp: time.Now(),
		})
	}
	assert.Len(t, s.Samples(), 5)
}

func TestAddImportedChunksBounded(t *testing.T) {
	s := NewStore(Config{MaxImportedChunks: 3})
	chunks := make([]ImportedChunk, 5)
	for i := range chunks {
		chunks[i] = ImportedChunk{Content: fmt.Sprintf("chunk %d", i), Source: "doc"}
	}
	s.AddImportedChunks(chunks)

	kept := s.ImportedChunks()
	require.Len(t, kept, 3)
	assert.Equal(t, "chunk 2", kept[0].Content)
	assert.Equal(t, "chunk 4", kept[2].Content)
}

func TestRestoreTrimsToCap(t *testing.T) {
	s := NewStore(Config{MaxTurns: 2})
	s.Restore([]ConversationTurn{testTurn(0), testTurn(1), testTurn(2)}, nil, nil)

	turns := s.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "turn number 1", turns[0].UserInput)
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.RecordTurn(testTurn(0))

	turns := s.Turns()
	turns[0].UserInput = "mutated"

	assert.Equal(t, "turn number 0", s.Turns()[0].UserInput)
}
