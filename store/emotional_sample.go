package store

// EmotionalSample is one persisted emotional-state observation.
type EmotionalSample struct {
	ID        int32
	UserID    string
	State     string
	Topics    string // comma-separated topic tags
	CreatedTs int64
}

type FindEmotionalSample struct {
	UserID *string
	Limit  *int
}

type DeleteEmotionalSample struct {
	UserID string
}
