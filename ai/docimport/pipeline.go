package docimport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hrygo/mindsense/ai/analysis"
	"github.com/hrygo/mindsense/ai/memory"
)

// Import validation errors. These surface synchronously to the caller with a
// human-readable message; nothing is appended to memory on failure.
var (
	ErrUnsupportedType  = errors.New("unsupported document type")
	ErrEmptyDocument    = errors.New("document contains no extractable text")
	ErrDocumentTooLarge = errors.New("document exceeds the size limit")
)

// Config holds the tunables of the import pipeline.
type Config struct {
	// MaxChunkLen bounds chunk size in bytes.
	MaxChunkLen int
	// MaxDocumentBytes bounds the accepted extracted-text size.
	MaxDocumentBytes int64
	// Parallelism bounds concurrent chunk analyses. Analysis itself is pure,
	// so parallel execution is safe; results are re-assembled in document
	// order before aggregation.
	Parallelism int
}

// DefaultConfig returns the shipped defaults.
func DefaultConfig() Config {
	return Config{
		MaxChunkLen:      1000,
		MaxDocumentBytes: 2 << 20, // 2 MiB of extracted text
		Parallelism:      4,
	}
}

// supportedTypes lists the declared types the pipeline accepts. The binary
// ones (pdf, docx) arrive pre-extracted as plain text.
var supportedTypes = map[string]struct{}{
	"txt": {}, "text": {}, "md": {}, "markdown": {}, "pdf": {}, "docx": {},
}

// Pipeline chunks, analyzes, and integrates imported documents.
type Pipeline struct {
	cfg Config
}

// NewPipeline creates a Pipeline. Zero-valued config fields fall back to
// DefaultConfig.
func NewPipeline(cfg Config) *Pipeline {
	def := DefaultConfig()
	if cfg.MaxChunkLen <= 0 {
		cfg.MaxChunkLen = def.MaxChunkLen
	}
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = def.MaxDocumentBytes
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = def.Parallelism
	}
	return &Pipeline{cfg: cfg}
}

// Integrate runs the full import: validate, chunk, analyze every chunk,
// aggregate document-level insights, and append the results to the session
// memory store. The commit is atomic per document: on any error nothing is
// appended.
func (p *Pipeline) Integrate(ctx context.Context, doc ExtractedDocument, store *memory.Store) (*ImportResult, error) {
	if err := p.validate(doc); err != nil {
		return nil, err
	}

	content := doc.Content
	if t := strings.ToLower(doc.DeclaredType); t == "md" || t == "markdown" {
		content = FlattenMarkdown(content)
		if strings.TrimSpace(content) == "" {
			return nil, errors.Wrapf(ErrEmptyDocument, "document %q", doc.Title)
		}
	}

	chunks := Chunk(content, p.cfg.MaxChunkLen)
	analyses, err := p.analyzeChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	insights := ExtractDocumentInsights(content)
	now := time.Now()

	metadata := ImportedDocument{
		ID:           uuid.NewString(),
		Title:        doc.Title,
		Type:         strings.ToLower(doc.DeclaredType),
		ImportedAt:   now,
		WordCount:    len(strings.Fields(content)),
		SizeBytes:    doc.SizeBytes,
		DocumentType: insights.DocumentType,
		OverallTone:  insights.OverallTone,
	}

	imported := make([]memory.ImportedChunk, len(chunks))
	for i, chunk := range chunks {
		imported[i] = memory.ImportedChunk{
			Content:   chunk,
			Source:    doc.Title,
			Analysis:  analyses[i],
			Timestamp: now,
		}
	}
	// Everything succeeded; this is the single commit point.
	store.AddImportedChunks(imported)

	slog.Info("document integrated",
		"title", doc.Title,
		"type", metadata.Type,
		"class", insights.DocumentType,
		"chunks", len(chunks),
		"words", metadata.WordCount)

	return &ImportResult{
		ChunksProcessed: len(chunks),
		Summary:         buildSummary(metadata, insights),
		Insights:        insights,
		Metadata:        metadata,
	}, nil
}

// AnalyzeChunk runs the full extraction suite over one chunk.
func AnalyzeChunk(chunk string) analysis.SignalBundle {
	return analysis.Analyze(chunk)
}

// analyzeChunks analyzes all chunks with bounded parallelism, restoring
// document order in the result slice.
func (p *Pipeline) analyzeChunks(ctx context.Context, chunks []string) ([]analysis.SignalBundle, error) {
	analyses := make([]analysis.SignalBundle, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Parallelism)
	for i, chunk := range chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			analyses[i] = AnalyzeChunk(chunk)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "chunk analysis canceled")
	}
	return analyses, nil
}

func (p *Pipeline) validate(doc ExtractedDocument) error {
	declared := strings.ToLower(doc.DeclaredType)
	if _, ok := supportedTypes[declared]; !ok {
		return errors.Wrapf(ErrUnsupportedType, "type %q", doc.DeclaredType)
	}
	if strings.TrimSpace(doc.Content) == "" {
		return errors.Wrapf(ErrEmptyDocument, "document %q", doc.Title)
	}
	if int64(len(doc.Content)) > p.cfg.MaxDocumentBytes {
		return errors.Wrapf(ErrDocumentTooLarge, "%d bytes (limit %d)", len(doc.Content), p.cfg.MaxDocumentBytes)
	}
	return nil
}

// buildSummary renders the human-readable import summary: class, size, tone,
// leading topics, and up to three growth themes.
func buildSummary(metadata ImportedDocument, insights DocumentInsights) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %q as %s (%d words, %s tone).",
		metadata.Title, insights.DocumentType, metadata.WordCount, insights.OverallTone)

	if len(insights.KeyTopics) > 0 {
		topics := insights.KeyTopics
		if len(topics) > 3 {
			topics = topics[:3]
		}
		fmt.Fprintf(&b, " Main topics: %s.", strings.Join(topics, ", "))
	}
	if len(insights.GrowthIndicators) > 0 {
		themes := insights.GrowthIndicators
		if len(themes) > 3 {
			themes = themes[:3]
		}
		fmt.Fprintf(&b, " Growth themes: %s.", strings.Join(themes, ", "))
	}
	return b.String()
}
