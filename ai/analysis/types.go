// Package analysis provides heuristic signal extraction from user text.
// It maps a raw string to structured signals (emotion, energy, topics, goals,
// challenges, relationships, insights) using deterministic keyword and
// pattern matching. No embeddings, no learned models, no I/O.
package analysis

// Emotion is a closed set of emotional states the analyzer can detect.
type Emotion string

const (
	EmotionNeutral     Emotion = "neutral"
	EmotionExcited     Emotion = "excited"
	EmotionHappy       Emotion = "happy"
	EmotionMotivated   Emotion = "motivated"
	EmotionContent     Emotion = "content"
	EmotionStressed    Emotion = "stressed"
	EmotionAnxious     Emotion = "anxious"
	EmotionOverwhelmed Emotion = "overwhelmed"
	EmotionSad         Emotion = "sad"
	EmotionAngry       Emotion = "angry"
	EmotionConfused    Emotion = "confused"
)

// Emotions lists every detectable emotion, in table order.
// EmotionNeutral is the zero-match default and carries no keyword table.
func Emotions() []Emotion {
	return []Emotion{
		EmotionExcited, EmotionHappy, EmotionMotivated, EmotionContent,
		EmotionStressed, EmotionAnxious, EmotionOverwhelmed, EmotionSad,
		EmotionAngry, EmotionConfused, EmotionNeutral,
	}
}

// Energy is the detected energy level of a message.
type Energy string

const (
	EnergyHigh   Energy = "high"
	EnergyMedium Energy = "medium"
	EnergyLow    Energy = "low"
)

// Topic is a closed set of life areas the analyzer can tag.
type Topic string

const (
	TopicWork          Topic = "work"
	TopicRelationships Topic = "relationships"
	TopicHealth        Topic = "health"
	TopicMoney         Topic = "money"
	TopicGrowth        Topic = "growth"
	TopicCreativity    Topic = "creativity"
	// TopicGeneral is the fallback when no topic table matches.
	TopicGeneral Topic = "general"
)

// RelationshipCategory groups relationship mentions.
type RelationshipCategory string

const (
	RelationshipPartner RelationshipCategory = "partner"
	RelationshipFamily  RelationshipCategory = "family"
	RelationshipFriends RelationshipCategory = "friends"
	RelationshipWork    RelationshipCategory = "work"
)

// Challenge is a detected struggle, scored by the number of struggle
// keywords in the containing sentence.
type Challenge struct {
	Sentence string `json:"sentence"`
	Severity int    `json:"severity"`
}

// RelationshipMention records how often one relationship category appears.
type RelationshipMention struct {
	Category RelationshipCategory `json:"category"`
	Mentions int                  `json:"mentions"`
}

// SignalBundle is the full analysis result for one piece of text.
// It is a value type: produced fresh per input and never mutated.
type SignalBundle struct {
	Emotion       Emotion               `json:"emotion"`
	Energy        Energy                `json:"energy"`
	Topics        []Topic               `json:"topics"`
	Goals         []string              `json:"goals"`
	Challenges    []Challenge           `json:"challenges"`
	Relationships []RelationshipMention `json:"relationships"`
	Insights      []string              `json:"insights"`
}
