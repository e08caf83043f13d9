package analysis

import (
	"strings"
	"unicode"
)

// Analyze runs the full extraction suite over one piece of text.
// It is total and deterministic: identical input always yields an identical
// bundle, and degenerate input (empty string, whitespace) yields safe
// defaults instead of an error.
func Analyze(text string) SignalBundle {
	return SignalBundle{
		Emotion:       DetectEmotion(text),
		Energy:        DetectEnergy(text),
		Topics:        ExtractTopics(text),
		Goals:         ExtractGoals(text),
		Challenges:    ExtractChallenges(text),
		Relationships: ExtractRelationships(text),
		Insights:      ExtractInsights(text),
	}
}

// DetectEmotion returns the emotion whose keyword table matches the text most
// often. Ties resolve to the first-declared emotion in table order; zero
// matches return EmotionNeutral.
func DetectEmotion(text string) Emotion {
	lower := strings.ToLower(text)

	best := EmotionNeutral
	bestCount := 0
	for _, row := range emotionTable {
		count := 0
		for _, kw := range row.keywords {
			count += strings.Count(lower, kw)
		}
		if count > bestCount {
			best = row.emotion
			bestCount = count
		}
	}
	return best
}

// DetectEnergy classifies message energy. More than one exclamation mark or
// more than one ALL-CAPS word run reads as high; fatigue keywords read as
// low; everything else is medium.
func DetectEnergy(text string) Energy {
	exclamations := strings.Count(text, "!")
	if exclamations > 1 || countCapsRuns(text) > 1 {
		return EnergyHigh
	}

	lower := strings.ToLower(text)
	for _, kw := range fatigueKeywords {
		if strings.Contains(lower, kw) {
			return EnergyLow
		}
	}
	return EnergyMedium
}

// ExtractTopics returns every topic whose keyword table matches the text.
// The result is never empty: zero matches yield [TopicGeneral].
func ExtractTopics(text string) []Topic {
	lower := strings.ToLower(text)

	var topics []Topic
	for _, row := range topicTable {
		for _, kw := range row.keywords {
			if strings.Contains(lower, kw) {
				topics = append(topics, row.topic)
				break
			}
		}
	}
	if len(topics) == 0 {
		return []Topic{TopicGeneral}
	}
	return topics
}

// countCapsRuns counts words written entirely in capital letters.
// Single-letter words ("I") and words without at least two letters do not
// count, which keeps ordinary English from reading as shouting.
func countCapsRuns(text string) int {
	count := 0
	for _, word := range strings.Fields(text) {
		letters := 0
		shouting := true
		for _, r := range word {
			if !unicode.IsLetter(r) {
				continue
			}
			letters++
			if !unicode.IsUpper(r) {
				shouting = false
				break
			}
		}
		if shouting && letters >= 2 {
			count++
		}
	}
	return count
}
