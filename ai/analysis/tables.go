package analysis

// Keyword tables are ordered slices, not maps: iteration order is part of the
// contract. Ties in match counts resolve to the first-declared entry.

type emotionKeywords struct {
	emotion  Emotion
	keywords []string
}

// emotionTable maps each detectable emotion to its trigger keywords.
// EmotionNeutral is intentionally absent: it is the zero-match default.
var emotionTable = []emotionKeywords{
	{EmotionExcited, []string{"excited", "thrilled", "pumped", "can't wait", "cant wait", "amazing", "awesome", "stoked", "incredible"}},
	{EmotionHappy, []string{"happy", "glad", "wonderful", "joy", "grateful", "great news", "good news", "delighted"}},
	{EmotionMotivated, []string{"motivated", "determined", "focused", "ready to", "energized", "inspired", "driven"}},
	{EmotionContent, []string{"content", "calm", "peaceful", "satisfied", "relaxed", "at ease", "settled"}},
	{EmotionStressed, []string{"stressed", "pressure", "deadline", "too much", "so busy", "overloaded", "no time"}},
	{EmotionAnxious, []string{"anxious", "worried", "nervous", "scared", "afraid", "uneasy", "dread"}},
	{EmotionOverwhelmed, []string{"overwhelmed", "drowning", "can't keep up", "cant keep up", "buried", "swamped"}},
	{EmotionSad, []string{"sad", "depressed", "lonely", "crying", "heartbroken", "miserable", "feeling down"}},
	{EmotionAngry, []string{"angry", "furious", "mad", "pissed", "annoyed", "frustrated", "unfair", "fed up"}},
	{EmotionConfused, []string{"confused", "unsure", "don't know what", "dont know what", "no idea", "torn between", "lost about"}},
}

type topicKeywords struct {
	topic    Topic
	keywords []string
}

// topicTable maps life-area topics to trigger keywords.
// TopicGeneral is intentionally absent: it is the zero-match fallback.
var topicTable = []topicKeywords{
	{TopicWork, []string{"work", "job", "career", "boss", "meeting", "promoted", "promotion", "project", "office", "deadline", "interview", "coworker"}},
	{TopicRelationships, []string{"relationship", "partner", "friend", "family", "marriage", "dating", "husband", "wife", "boyfriend", "girlfriend"}},
	{TopicHealth, []string{"health", "exercise", "workout", "sleep", "diet", "gym", "doctor", "meditation", "running", "therapy"}},
	{TopicMoney, []string{"money", "budget", "salary", "debt", "savings", "invest", "rent", "finances", "spending"}},
	{TopicGrowth, []string{"goal", "habit", "learn", "improve", "growth", "progress", "journal", "mindset", "better version"}},
	{TopicCreativity, []string{"writing", "music", "art", "paint", "create", "design", "hobby", "drawing", "creative"}},
}

// fatigueKeywords mark low energy regardless of punctuation.
var fatigueKeywords = []string{"tired", "exhausted", "drained", "worn out", "sleepy", "no energy", "fatigued"}

// struggleKeywords mark a sentence as a challenge; the per-sentence hit count
// doubles as the challenge severity.
var struggleKeywords = []string{"struggling", "struggle", "difficult", "hard time", "can't", "cant ", "stuck", "problem", "challenge", "failing", "worried"}

type relationshipKeywords struct {
	category RelationshipCategory
	keywords []string
}

var relationshipTable = []relationshipKeywords{
	{RelationshipPartner, []string{"husband", "wife", "boyfriend", "girlfriend", "partner", "spouse", "fiance"}},
	{RelationshipFamily, []string{"mom", "dad", "mother", "father", "sister", "brother", "parents", "family", "son", "daughter"}},
	{RelationshipFriends, []string{"friend", "friends", "buddy", "best mate", "roommate"}},
	{RelationshipWork, []string{"boss", "coworker", "colleague", "manager", "teammate", "my team"}},
}
