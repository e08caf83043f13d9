// Package docimport turns already-extracted document text into analyzed,
// retrievable context: it chunks the document, runs signal extraction per
// chunk, aggregates document-level insights, and hands the results to the
// session memory store. Binary extraction (PDF/DOCX) is an upstream
// collaborator; this package only ever sees plain text.
package docimport

import (
	"time"

	"github.com/hrygo/mindsense/ai/analysis"
)

// DocumentClass is the heuristic category of an imported document.
type DocumentClass string

const (
	ClassTherapyNotes        DocumentClass = "therapy_notes"
	ClassJournal             DocumentClass = "journal"
	ClassBookHighlights      DocumentClass = "book_highlights"
	ClassWorkNotes           DocumentClass = "work_notes"
	ClassPersonalDevelopment DocumentClass = "personal_development"
	// ClassGeneral is the fallback when no category keywords match.
	ClassGeneral DocumentClass = "general_document"
)

// Tone is the overall emotional tone of a document.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

// ExtractedDocument is the input handed over by the extraction collaborator:
// plain text plus the metadata it could recover.
type ExtractedDocument struct {
	Title        string
	DeclaredType string // file extension without dot: txt, md, pdf, docx
	Content      string
	SizeBytes    int64
}

// ImportedDocument is the per-document metadata record retained after a
// successful import. Append-only; never mutated after creation.
type ImportedDocument struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Type         string        `json:"type"`
	ImportedAt   time.Time     `json:"imported_at"`
	WordCount    int           `json:"word_count"`
	SizeBytes    int64         `json:"size_bytes"`
	DocumentType DocumentClass `json:"document_type"`
	OverallTone  Tone          `json:"overall_tone"`
}

// DocumentInsights is the document-level aggregation produced alongside the
// per-chunk analyses.
type DocumentInsights struct {
	OverallTone      Tone               `json:"overall_tone"`
	KeyTopics        []string           `json:"key_topics"`
	EmotionalJourney []analysis.Emotion `json:"emotional_journey"`
	GrowthIndicators []string           `json:"growth_indicators"`
	DocumentType     DocumentClass      `json:"document_type"`
}

// ImportResult is returned by Integrate on success.
type ImportResult struct {
	ChunksProcessed int              `json:"chunks_processed"`
	Summary         string           `json:"summary"`
	Insights        DocumentInsights `json:"insights"`
	Metadata        ImportedDocument `json:"metadata"`
}
