package store

import "context"

// Driver is an interface for database access.
type Driver interface {
	Close() error

	// Migrate creates the schema when it does not exist yet.
	Migrate(ctx context.Context) error

	CreateConversationTurn(ctx context.Context, create *ConversationTurn) (*ConversationTurn, error)
	ListConversationTurns(ctx context.Context, find *FindConversationTurn) ([]*ConversationTurn, error)
	DeleteConversationTurns(ctx context.Context, delete *DeleteConversationTurn) error

	CreateEmotionalSample(ctx context.Context, create *EmotionalSample) (*EmotionalSample, error)
	ListEmotionalSamples(ctx context.Context, find *FindEmotionalSample) ([]*EmotionalSample, error)
	DeleteEmotionalSamples(ctx context.Context, delete *DeleteEmotionalSample) error

	CreateImportedDocument(ctx context.Context, create *ImportedDocument) (*ImportedDocument, error)
	ListImportedDocuments(ctx context.Context, find *FindImportedDocument) ([]*ImportedDocument, error)
	DeleteImportedDocument(ctx context.Context, delete *DeleteImportedDocument) error

	CreateDocumentChunk(ctx context.Context, create *DocumentChunk) (*DocumentChunk, error)
	ListDocumentChunks(ctx context.Context, find *FindDocumentChunk) ([]*DocumentChunk, error)
}
