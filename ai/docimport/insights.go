package docimport

import (
	"sort"
	"strings"

	"github.com/hrygo/mindsense/ai/analysis"
	"github.com/hrygo/mindsense/ai/internal/strutil"
)

var positiveKeywords = []string{
	"happy", "grateful", "excited", "proud", "love", "progress", "better",
	"calm", "hopeful", "accomplished", "joy", "success", "improved",
}

var negativeKeywords = []string{
	"sad", "angry", "anxious", "stressed", "worried", "failed", "tired",
	"afraid", "worse", "frustrated", "hopeless", "guilt", "regret",
}

// growthKeywords mark self-development language; matched ones become the
// document's growth indicators.
var growthKeywords = []string{
	"goal", "habit", "improve", "learn", "growth", "practice", "reflect",
	"milestone", "progress", "intention", "commit",
}

type classKeywords struct {
	class    DocumentClass
	keywords []string
}

// classTable is ordered: ties in match counts resolve to the first-declared
// class. ClassGeneral is the zero-match fallback and carries no keywords.
var classTable = []classKeywords{
	{ClassTherapyNotes, []string{"therapy", "therapist", "session", "counseling", "cbt", "trauma"}},
	{ClassJournal, []string{"dear diary", "today i", "this morning", "tonight", "journal", "yesterday i"}},
	{ClassBookHighlights, []string{"chapter", "author", "quote", "highlight", "the book", "page"}},
	{ClassWorkNotes, []string{"meeting", "project", "deadline", "standup", "review", "roadmap", "stakeholder"}},
	{ClassPersonalDevelopment, []string{"self-improvement", "mindset", "affirmation", "coaching", "productivity", "discipline"}},
}

const keyTopicCount = 10

// minKeyTopicLen is the exclusive length floor for key-topic words.
const minKeyTopicLen = 4

// ExtractDocumentInsights aggregates document-level signals: overall tone
// from the positive/negative keyword ratio, the most frequent long words as
// key topics, the per-paragraph emotion sequence, growth-language
// indicators, and the heuristic document class.
func ExtractDocumentInsights(content string) DocumentInsights {
	lower := strings.ToLower(content)

	return DocumentInsights{
		OverallTone:      overallTone(lower),
		KeyTopics:        keyTopics(content),
		EmotionalJourney: emotionalJourney(content),
		GrowthIndicators: growthIndicators(lower),
		DocumentType:     classify(lower),
	}
}

// overallTone compares positive and negative keyword hits; one side must
// outnumber the other by more than 1.5x to leave neutral.
func overallTone(lower string) Tone {
	positive, negative := 0, 0
	for _, kw := range positiveKeywords {
		positive += strings.Count(lower, kw)
	}
	for _, kw := range negativeKeywords {
		negative += strings.Count(lower, kw)
	}

	switch {
	case float64(positive) > 1.5*float64(negative) && positive > 0:
		return TonePositive
	case float64(negative) > 1.5*float64(positive) && negative > 0:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

// keyTopics returns the top-N most frequent words longer than the floor.
// Ranking is by descending count, then by first appearance, so the result
// is deterministic.
func keyTopics(content string) []string {
	words := strutil.Words(content, minKeyTopicLen)
	if len(words) == 0 {
		return nil
	}

	counts := make(map[string]int, len(words))
	firstSeen := make(map[string]int, len(words))
	for i, w := range words {
		if _, ok := firstSeen[w]; !ok {
			firstSeen[w] = i
		}
		counts[w]++
	}

	unique := make([]string, 0, len(counts))
	for w := range counts {
		unique = append(unique, w)
	}
	sort.Slice(unique, func(i, j int) bool {
		if counts[unique[i]] != counts[unique[j]] {
			return counts[unique[i]] > counts[unique[j]]
		}
		return firstSeen[unique[i]] < firstSeen[unique[j]]
	})

	if len(unique) > keyTopicCount {
		unique = unique[:keyTopicCount]
	}
	return unique
}

// emotionalJourney detects one emotion per paragraph, in document order.
func emotionalJourney(content string) []analysis.Emotion {
	var journey []analysis.Emotion
	for _, para := range paragraphSplitter.Split(content, -1) {
		if strings.TrimSpace(para) == "" {
			continue
		}
		journey = append(journey, analysis.DetectEmotion(para))
	}
	return journey
}

// growthIndicators returns the growth keywords present in the document, in
// table order.
func growthIndicators(lower string) []string {
	var indicators []string
	for _, kw := range growthKeywords {
		if strings.Contains(lower, kw) {
			indicators = append(indicators, kw)
		}
	}
	return indicators
}

// classify picks the document class with the highest keyword-match count.
// All-zero counts fall back to ClassGeneral.
func classify(lower string) DocumentClass {
	best := ClassGeneral
	bestCount := 0
	for _, row := range classTable {
		count := 0
		for _, kw := range row.keywords {
			count += strings.Count(lower, kw)
		}
		if count > bestCount {
			best = row.class
			bestCount = count
		}
	}
	return best
}
