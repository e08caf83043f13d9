package store

// ConversationTurn is one persisted chat exchange.
type ConversationTurn struct {
	ID         int32
	UserID     string
	SessionID  string
	UserInput  string
	AIResponse string
	Emotion    string
	Topics     string // comma-separated topic tags
	CreatedTs  int64
}

type FindConversationTurn struct {
	ID     *int32
	UserID *string
	Limit  *int
	Offset *int

	// Desc returns the newest turns first; combined with Limit it reads
	// the most recent window instead of the oldest.
	Desc bool
}

type DeleteConversationTurn struct {
	UserID string
}
