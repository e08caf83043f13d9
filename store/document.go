package store

// ImportedDocument is the persisted metadata of one imported document.
type ImportedDocument struct {
	ID        int32
	UID       string
	UserID    string
	Title     string
	Type      string
	Class     string
	Tone      string
	WordCount int32
	SizeBytes int64
	CreatedTs int64
}

type FindImportedDocument struct {
	ID     *int32
	UID    *string
	UserID *string
	Limit  *int
}

type DeleteImportedDocument struct {
	UID string
}

// DocumentChunk is one analyzed chunk of an imported document. Position is
// the chunk's zero-based index in document order.
type DocumentChunk struct {
	ID          int32
	DocumentUID string
	UserID      string
	Content     string
	Emotion     string
	Topics      string // comma-separated topic tags
	Position    int32
	CreatedTs   int64
}

type FindDocumentChunk struct {
	DocumentUID *string
	UserID      *string
	Limit       *int
}
