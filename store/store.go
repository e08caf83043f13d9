package store

import (
	"context"

	"github.com/hrygo/mindsense/internal/profile"
)

// Store provides database access to all persisted objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// Migrate creates missing schema objects.
func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) CreateConversationTurn(ctx context.Context, create *ConversationTurn) (*ConversationTurn, error) {
	return s.driver.CreateConversationTurn(ctx, create)
}

func (s *Store) ListConversationTurns(ctx context.Context, find *FindConversationTurn) ([]*ConversationTurn, error) {
	return s.driver.ListConversationTurns(ctx, find)
}

func (s *Store) DeleteConversationTurns(ctx context.Context, delete *DeleteConversationTurn) error {
	return s.driver.DeleteConversationTurns(ctx, delete)
}

func (s *Store) CreateEmotionalSample(ctx context.Context, create *EmotionalSample) (*EmotionalSample, error) {
	return s.driver.CreateEmotionalSample(ctx, create)
}

func (s *Store) ListEmotionalSamples(ctx context.Context, find *FindEmotionalSample) ([]*EmotionalSample, error) {
	return s.driver.ListEmotionalSamples(ctx, find)
}

func (s *Store) DeleteEmotionalSamples(ctx context.Context, delete *DeleteEmotionalSample) error {
	return s.driver.DeleteEmotionalSamples(ctx, delete)
}

func (s *Store) CreateImportedDocument(ctx context.Context, create *ImportedDocument) (*ImportedDocument, error) {
	return s.driver.CreateImportedDocument(ctx, create)
}

func (s *Store) ListImportedDocuments(ctx context.Context, find *FindImportedDocument) ([]*ImportedDocument, error) {
	return s.driver.ListImportedDocuments(ctx, find)
}

func (s *Store) DeleteImportedDocument(ctx context.Context, delete *DeleteImportedDocument) error {
	return s.driver.DeleteImportedDocument(ctx, delete)
}

func (s *Store) CreateDocumentChunk(ctx context.Context, create *DocumentChunk) (*DocumentChunk, error) {
	return s.driver.CreateDocumentChunk(ctx, create)
}

func (s *Store) ListDocumentChunks(ctx context.Context, find *FindDocumentChunk) ([]*DocumentChunk, error) {
	return s.driver.ListDocumentChunks(ctx, find)
}
