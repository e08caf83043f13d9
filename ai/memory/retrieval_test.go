package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/mindsense/ai/analysis"
)

func turnWithInput(input string) ConversationTurn {
	return ConversationTurn{
		Timestamp: time.Now(),
		UserInput: input,
		Emotion:   analysis.EmotionNeutral,
	}
}

func TestFindSimilarTurnsRanking(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.RecordTurn(turnWithInput("thinking about changing careers soon"))          // shares: careers? no; changing
	s.RecordTurn(turnWithInput("my morning routine needs work"))                 // shares nothing
	s.RecordTurn(turnWithInput("changing my sleep schedule and changing habits")) // shares: changing, habits? input has habits

	results := s.FindSimilarTurns("changing my habits")

	require.NotEmpty(t, results)
	// Highest shared-word count first.
	assert.Equal(t, "changing my sleep schedule and changing habits", results[0].UserInput)
	// Turn with zero qualifying shared words is excluded.
	for _, r := range results {
		assert.NotEqual(t, "my morning routine needs work", r.UserInput)
	}
}

func TestFindSimilarTurnsTopK(t *testing.T) {
	s := NewStore(DefaultConfig())
	for i := 0; i < 6; i++ {
		s.RecordTurn(turnWithInput("progress on the same project again"))
	}

	results := s.FindSimilarTurns("project progress update")
	assert.Len(t, results, 3)
}

func TestFindSimilarTurnsTieKeepsInsertionOrder(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.RecordTurn(turnWithInput("first mention of running"))
	s.RecordTurn(turnWithInput("second mention of running"))

	results := s.FindSimilarTurns("running")
	require.Len(t, results, 2)
	assert.Equal(t, "first mention of running", results[0].UserInput)
	assert.Equal(t, "second mention of running", results[1].UserInput)
}

func TestFindSimilarTurnsNoQualifyingWords(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.RecordTurn(turnWithInput("a b c"))

	assert.Empty(t, s.FindSimilarTurns("x y z"))
	assert.Empty(t, s.FindSimilarTurns(""))
}

func importedChunk(content string, emotion analysis.Emotion, topics ...analysis.Topic) ImportedChunk {
	return ImportedChunk{
		Content:   content,
		Source:    "journal.txt",
		Timestamp: time.Now(),
		Analysis: analysis.SignalBundle{
			Emotion: emotion,
			Topics:  topics,
		},
	}
}

func TestRelevantImportedContextWeights(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.AddImportedChunks([]ImportedChunk{
		// One shared word ("deadline") = 2 points.
		importedChunk("a deadline approaches", analysis.EmotionNeutral),
		// Emotion match = 5 points: must outrank a single shared word.
		importedChunk("nothing textually related here", analysis.EmotionStressed),
		// No overlap at all: excluded.
		importedChunk("gardening notes", analysis.EmotionContent),
	})

	results := s.RelevantImportedContext("the deadline is close", analysis.EmotionStressed)

	require.Len(t, results, 2)
	assert.Equal(t, "nothing textually related here", results[0].Content)
	assert.Equal(t, "a deadline approaches", results[1].Content)
}

func TestRelevantImportedContextThemeMatch(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.AddImportedChunks([]ImportedChunk{
		importedChunk("zzz qqq vvv", analysis.EmotionNeutral, analysis.TopicWork),
	})

	// No shared words, no emotion match, but the work theme matches.
	results := s.RelevantImportedContext("my boss again", analysis.EmotionHappy)
	require.Len(t, results, 1)
}

func TestRelevantImportedContextGeneralTopicIsNotATheme(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.AddImportedChunks([]ImportedChunk{
		importedChunk("zzz qqq vvv", analysis.EmotionNeutral, analysis.TopicGeneral),
	})

	// Both sides fall back to TopicGeneral; that must not count as a match.
	assert.Empty(t, s.RelevantImportedContext("hello there", analysis.EmotionHappy))
}

func TestRelevantImportedContextZeroScoreExcluded(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.AddImportedChunks([]ImportedChunk{
		importedChunk("completely unrelated text", analysis.EmotionContent),
	})

	assert.Empty(t, s.RelevantImportedContext("something else entirely", analysis.EmotionSad))
}
