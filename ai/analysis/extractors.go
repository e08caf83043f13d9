package analysis

import (
	"regexp"
	"strings"
)

var (
	goalPattern = regexp.MustCompile(`(?i)\b(?:want to|plan to|planning to|hoping to|going to start|my goal is to|aiming to)\s+([^.!?\n]+)`)

	insightPattern = regexp.MustCompile(`(?i)\bi\s+(?:realized|realised|learned|discovered|noticed|figured out)\s+(?:that\s+)?([^.!?\n]+)`)

	sentenceSplitter = regexp.MustCompile(`[.!?]+\s*`)
)

// maxPhraseLen caps extracted goal/insight phrases so a run-on sentence does
// not flood downstream prompt assembly.
const maxPhraseLen = 160

// ExtractGoals scans for intent phrases ("want to …", "plan to …", "hoping
// to …") and returns the trailing goal phrases, in order of appearance.
func ExtractGoals(text string) []string {
	var goals []string
	for _, m := range goalPattern.FindAllStringSubmatch(text, -1) {
		phrase := strings.TrimSpace(m[1])
		if phrase == "" {
			continue
		}
		if len(phrase) > maxPhraseLen {
			phrase = phrase[:maxPhraseLen]
		}
		goals = append(goals, phrase)
	}
	return goals
}

// ExtractChallenges returns every sentence containing at least one struggle
// keyword. Severity is the struggle-keyword hit count for that sentence.
func ExtractChallenges(text string) []Challenge {
	var challenges []Challenge
	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)
		severity := 0
		for _, kw := range struggleKeywords {
			severity += strings.Count(lower, kw)
		}
		if severity > 0 {
			challenges = append(challenges, Challenge{
				Sentence: strings.TrimSpace(sentence),
				Severity: severity,
			})
		}
	}
	return challenges
}

// ExtractRelationships counts keyword mentions per relationship category and
// returns the categories with at least one mention, in table order.
func ExtractRelationships(text string) []RelationshipMention {
	lower := strings.ToLower(text)

	var mentions []RelationshipMention
	for _, row := range relationshipTable {
		count := 0
		for _, kw := range row.keywords {
			count += strings.Count(lower, kw)
		}
		if count > 0 {
			mentions = append(mentions, RelationshipMention{
				Category: row.category,
				Mentions: count,
			})
		}
	}
	return mentions
}

// ExtractInsights scans for self-reflection phrases ("I realized …",
// "I learned that …") and returns the realization phrases.
func ExtractInsights(text string) []string {
	var insights []string
	for _, m := range insightPattern.FindAllStringSubmatch(text, -1) {
		phrase := strings.TrimSpace(m[1])
		if phrase == "" {
			continue
		}
		if len(phrase) > maxPhraseLen {
			phrase = phrase[:maxPhraseLen]
		}
		insights = append(insights, phrase)
	}
	return insights
}

// splitSentences breaks text on terminal punctuation. Fragments without
// terminal punctuation (the tail of the text) are kept as sentences.
func splitSentences(text string) []string {
	parts := sentenceSplitter.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}
