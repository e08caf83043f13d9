package memory

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hrygo/mindsense/ai/analysis"
)

func TestFormatContextFirstConversation(t *testing.T) {
	s := NewStore(DefaultConfig())
	out := s.FormatContextForModel("hello", analysis.EmotionNeutral)
	assert.Contains(t, out, "first conversation")
}

func TestFormatContextCombinesSections(t *testing.T) {
	s := NewStore(DefaultConfig())

	for i := 0; i < 4; i++ {
		s.RecordTurn(ConversationTurn{
			Timestamp: time.Now(),
			UserInput: "worried about the project deadline",
			Emotion:   analysis.EmotionStressed,
			Topics:    []analysis.Topic{analysis.TopicWork},
		})
		s.RecordEmotionalSample(sampleOf(analysis.EmotionStressed))
	}
	s.AddImportedChunks([]ImportedChunk{
		importedChunk("notes on handling project pressure at work", analysis.EmotionStressed, analysis.TopicWork),
	})

	out := s.FormatContextForModel("the project is due", analysis.EmotionStressed)

	assert.Contains(t, out, "stressed")
	assert.Contains(t, out, "project")
	assert.Contains(t, out, "concerning")
	assert.Contains(t, out, "journal.txt")
	assert.NotContains(t, out, "first conversation")
}

func TestFormatContextTruncatesExcerpts(t *testing.T) {
	s := NewStore(DefaultConfig())
	long := strings.Repeat("project pressure keeps growing and growing ", 20)
	s.AddImportedChunks([]ImportedChunk{
		importedChunk(long, analysis.EmotionNeutral, analysis.TopicWork),
	})

	out := s.FormatContextForModel("project pressure", analysis.EmotionNeutral)
	// The 800+ char chunk must be cut to roughly the excerpt limit.
	assert.Less(t, len(out), 600)
	assert.Contains(t, out, "...")
}

func TestFormatContextHistoryButNoRelation(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.RecordTurn(ConversationTurn{
		Timestamp: time.Now(),
		UserInput: "aaa bbb",
		Emotion:   analysis.EmotionNeutral,
	})

	out := s.FormatContextForModel("zzz qqq", analysis.EmotionNeutral)
	assert.NotContains(t, out, "first conversation")
}
