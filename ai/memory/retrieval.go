package memory

import (
	"sort"

	"github.com/hrygo/mindsense/ai/analysis"
	"github.com/hrygo/mindsense/ai/internal/strutil"
)

// FindSimilarTurns scores every stored turn by the number of distinct shared
// words (longer than the configured floor) between input and the turn's user
// input, and returns the top K by descending score. Ties keep insertion
// order; turns sharing no qualifying word are excluded.
func (s *Store) FindSimilarTurns(input string) []ConversationTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inputWords := strutil.WordSet(input, s.cfg.MinSharedWordLen)
	if len(inputWords) == 0 {
		return nil
	}

	type scored struct {
		turn  ConversationTurn
		score int
	}
	var candidates []scored
	for _, turn := range s.turns {
		score := 0
		for w := range strutil.WordSet(turn.UserInput, s.cfg.MinSharedWordLen) {
			if _, ok := inputWords[w]; ok {
				score++
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{turn: turn, score: score})
		}
	}

	// Stable sort preserves insertion order among equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	topK := s.cfg.SimilarTopK
	if len(candidates) < topK {
		topK = len(candidates)
	}
	result := make([]ConversationTurn, 0, topK)
	for _, c := range candidates[:topK] {
		result = append(result, c.turn)
	}
	return result
}

// RelevantImportedContext scores each retained chunk against the input and
// the current emotion:
//
//	sharedWordWeight x shared words
//	+ emotionMatchWeight if the chunk's emotion matches the current one
//	+ themeMatchWeight if the chunk shares a theme with the input's topics
//
// and returns the top K by descending score. Zero-score chunks are excluded;
// ties keep insertion order.
func (s *Store) RelevantImportedContext(input string, currentEmotion analysis.Emotion) []ImportedChunk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inputWords := strutil.WordSet(input, s.cfg.MinSharedWordLen)
	inputTopics := analysis.ExtractTopics(input)

	type scored struct {
		chunk ImportedChunk
		score int
	}
	var candidates []scored
	for _, chunk := range s.imported {
		score := 0

		for w := range strutil.WordSet(chunk.Content, s.cfg.MinSharedWordLen) {
			if _, ok := inputWords[w]; ok {
				score += s.cfg.SharedWordWeight
			}
		}

		if currentEmotion != "" && chunk.Analysis.Emotion == currentEmotion {
			score += s.cfg.EmotionMatchWeight
		}

		if sharesTheme(chunk.Analysis.Topics, inputTopics) {
			score += s.cfg.ThemeMatchWeight
		}

		if score > 0 {
			candidates = append(candidates, scored{chunk: chunk, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	topK := s.cfg.SimilarTopK
	if len(candidates) < topK {
		topK = len(candidates)
	}
	result := make([]ImportedChunk, 0, topK)
	for _, c := range candidates[:topK] {
		result = append(result, c.chunk)
	}
	return result
}

// sharesTheme reports whether the chunk's topics and the input's topics
// overlap. TopicGeneral never counts as a theme match: it is the no-signal
// fallback, not a shared interest.
func sharesTheme(chunkTopics, inputTopics []analysis.Topic) bool {
	for _, ct := range chunkTopics {
		if ct == analysis.TopicGeneral {
			continue
		}
		for _, it := range inputTopics {
			if ct == it {
				return true
			}
		}
	}
	return false
}
