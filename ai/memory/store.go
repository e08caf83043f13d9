// Package memory owns the bounded conversation history of one user session
// and its relevance-ranked retrieval: similar past turns, recent emotional
// patterns, the emotional trend, and imported document context. One Store per
// session; the orchestrator is its only writer.
package memory

import (
	"sync"
	"time"

	"github.com/hrygo/mindsense/ai/analysis"
)

// ConversationTurn is one exchange: what the user said and what the
// companion answered, with the signals detected at the time.
type ConversationTurn struct {
	Timestamp  time.Time        `json:"timestamp"`
	UserInput  string           `json:"user_input"`
	AIResponse string           `json:"ai_response"`
	Emotion    analysis.Emotion `json:"emotion"`
	Topics     []analysis.Topic `json:"topics"`
}

// EmotionalSample is one emotional-state observation.
type EmotionalSample struct {
	State     analysis.Emotion `json:"state"`
	Timestamp time.Time        `json:"timestamp"`
	Topics    []analysis.Topic `json:"topics"`
}

// ImportedChunk is one retained slice of an imported document, the unit of
// relevance-ranked retrieval for imported material.
type ImportedChunk struct {
	Content   string                `json:"content"`
	Source    string                `json:"source"`
	Analysis  analysis.SignalBundle `json:"analysis"`
	Timestamp time.Time             `json:"timestamp"`
}

// Store holds the bounded windows for one session.
//
// All three windows are append-only sliding windows: appends are the only
// mutation, and trimming always drops from the front (oldest first).
type Store struct {
	mu sync.RWMutex

	cfg Config

	turns    []ConversationTurn
	samples  []EmotionalSample
	imported []ImportedChunk
}

// NewStore creates a session memory store. Zero-valued config fields fall
// back to DefaultConfig.
func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg.normalize()}
}

// Config returns the store's effective configuration.
func (s *Store) Config() Config {
	return s.cfg
}

// RecordTurn appends a conversation turn, trimming the oldest when the
// window cap is exceeded.
func (s *Store) RecordTurn(turn ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = appendBounded(s.turns, turn, s.cfg.MaxTurns)
}

// RecordEmotionalSample appends an emotional observation, trimming the
// oldest when the window cap is exceeded.
func (s *Store) RecordEmotionalSample(sample EmotionalSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = appendBounded(s.samples, sample, s.cfg.MaxEmotionalSamples)
}

// AddImportedChunks appends document chunks to the imported-context window.
func (s *Store) AddImportedChunks(chunks []ImportedChunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, chunk := range chunks {
		s.imported = appendBounded(s.imported, chunk, s.cfg.MaxImportedChunks)
	}
}

// Turns returns a copy of the turn window, oldest first.
func (s *Store) Turns() []ConversationTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Samples returns a copy of the emotional sample window, oldest first.
func (s *Store) Samples() []EmotionalSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]EmotionalSample, len(s.samples))
	copy(out, s.samples)
	return out
}

// ImportedChunks returns a copy of the imported-chunk window, oldest first.
func (s *Store) ImportedChunks() []ImportedChunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ImportedChunk, len(s.imported))
	copy(out, s.imported)
	return out
}

// Restore replaces the windows wholesale, trimming each to its cap from the
// front. Used to rehydrate a session from the persistence collaborator.
func (s *Store) Restore(turns []ConversationTurn, samples []EmotionalSample, imported []ImportedChunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = trimFront(append([]ConversationTurn(nil), turns...), s.cfg.MaxTurns)
	s.samples = trimFront(append([]EmotionalSample(nil), samples...), s.cfg.MaxEmotionalSamples)
	s.imported = trimFront(append([]ImportedChunk(nil), imported...), s.cfg.MaxImportedChunks)
}

// appendBounded appends and drops from the front when over cap.
func appendBounded[T any](window []T, item T, limit int) []T {
	window = append(window, item)
	return trimFront(window, limit)
}

func trimFront[T any](window []T, limit int) []T {
	if len(window) <= limit {
		return window
	}
	excess := len(window) - limit
	// Reslice-and-copy so the dropped prefix does not pin the backing array.
	trimmed := make([]T, limit)
	copy(trimmed, window[excess:])
	return trimmed
}
