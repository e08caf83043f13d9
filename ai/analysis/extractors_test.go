package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractGoals(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"no goals", "Today was a normal day.", nil},
		{"want to", "I want to run a marathon next year.", []string{"run a marathon next year"}},
		{"plan to", "We plan to save more money", []string{"save more money"}},
		{"hoping to", "I'm hoping to get the promotion soon!", []string{"get the promotion soon"}},
		{
			"multiple goals in order",
			"I want to read more. I also plan to meditate daily.",
			[]string{"read more", "meditate daily"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractGoals(tt.input))
		})
	}
}

func TestExtractChallenges(t *testing.T) {
	challenges := ExtractChallenges("I'm struggling with my diet. The weather was nice. Work is difficult and I feel stuck.")

	require.Len(t, challenges, 2)
	assert.Equal(t, 1, challenges[0].Severity)
	assert.Contains(t, challenges[0].Sentence, "struggling")
	// "difficult" + "stuck" in one sentence
	assert.Equal(t, 2, challenges[1].Severity)
}

func TestExtractChallengesSeverityOrdering(t *testing.T) {
	// More struggle keywords in one sentence means higher severity.
	low := ExtractChallenges("This is difficult.")
	high := ExtractChallenges("This is a difficult problem and I'm stuck.")

	require.Len(t, low, 1)
	require.Len(t, high, 1)
	assert.Greater(t, high[0].Severity, low[0].Severity)
}

func TestExtractRelationships(t *testing.T) {
	mentions := ExtractRelationships("My wife and my boss argued. My wife was right.")

	require.Len(t, mentions, 2)
	// Table order: partner before work.
	assert.Equal(t, RelationshipPartner, mentions[0].Category)
	assert.Equal(t, 2, mentions[0].Mentions)
	assert.Equal(t, RelationshipWork, mentions[1].Category)
	assert.Equal(t, 1, mentions[1].Mentions)
}

func TestExtractInsights(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"no insight", "It rained all day.", nil},
		{"realized that", "I realized that rest matters as much as effort.", []string{"rest matters as much as effort"}},
		{"learned without that", "Yesterday I learned saying no is a skill.", []string{"saying no is a skill"}},
		{"case insensitive", "I REALIZED that mornings are my best hours", []string{"mornings are my best hours"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractInsights(tt.input))
		})
	}
}

func TestExtractorsTotalOnDegenerateInput(t *testing.T) {
	for _, input := range []string{"", " ", "...", "!!!", "\n\n"} {
		assert.NotPanics(t, func() {
			ExtractGoals(input)
			ExtractChallenges(input)
			ExtractRelationships(input)
			ExtractInsights(input)
		})
	}
}
