package memory

import (
	"fmt"
	"strings"

	"github.com/hrygo/mindsense/ai/analysis"
	"github.com/hrygo/mindsense/ai/internal/strutil"
)

// FormatContextForModel renders the session memory relevant to input as a
// natural-language block for prompt assembly. This is the only memory output
// the model ever sees; everything else on the store is structured data for
// the orchestrator and the UI.
func (s *Store) FormatContextForModel(input string, currentEmotion analysis.Emotion) string {
	turns := s.Turns()
	imported := s.ImportedChunks()

	if len(turns) == 0 && len(imported) == 0 {
		return "This is your first conversation with this user. There is no history yet; focus on getting to know them."
	}

	var parts []string

	if top, count := s.topRecentEmotion(); top != "" {
		parts = append(parts, fmt.Sprintf("In recent conversations the user has mostly felt %s (%d of the last %d turns).", top, count, min(len(turns), s.cfg.PatternWindow)))
	}

	if similar := s.FindSimilarTurns(input); len(similar) > 0 {
		parts = append(parts, fmt.Sprintf("Earlier they brought up something related: %q.", strutil.Truncate(strutil.NormalizeSpace(similar[0].UserInput), s.cfg.ExcerptLen)))
	}

	if trend := s.EmotionalTrend(); trend != nil {
		parts = append(parts, fmt.Sprintf("Their recent emotional trend is %s.", trend.Direction()))
	}

	if relevant := s.RelevantImportedContext(input, currentEmotion); len(relevant) > 0 {
		excerpts := make([]string, 0, len(relevant))
		for _, chunk := range relevant {
			excerpts = append(excerpts, fmt.Sprintf("%q (from %s)", strutil.Truncate(strutil.NormalizeSpace(chunk.Content), s.cfg.ExcerptLen), chunk.Source))
		}
		parts = append(parts, "From material the user imported: "+strings.Join(excerpts, "; ")+".")
	}

	if len(parts) == 0 {
		// History exists but nothing relates to this input.
		return "You have talked with this user before, but nothing in the history relates to this message."
	}
	return strings.Join(parts, " ")
}

// topRecentEmotion returns the most frequent emotion over the pattern window
// and its count. Ties resolve to the emotion seen most recently.
func (s *Store) topRecentEmotion() (analysis.Emotion, int) {
	summary := s.RecentPatternSummary()
	if len(summary.Emotions) == 0 {
		return "", 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	recent := s.turns
	if len(recent) > s.cfg.PatternWindow {
		recent = recent[len(recent)-s.cfg.PatternWindow:]
	}

	var top analysis.Emotion
	topCount := 0
	// Walk newest first so ties resolve to the most recent emotion.
	for i := len(recent) - 1; i >= 0; i-- {
		if c := summary.Emotions[recent[i].Emotion]; c > topCount {
			top = recent[i].Emotion
			topCount = c
		}
	}
	return top, topCount
}
