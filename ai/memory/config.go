package memory

// Config holds the tunable constants of the memory store: window caps,
// retrieval weights, and summary sizes. The defaults mirror the behavior the
// product shipped with; none of the exact numbers is load-bearing, but the
// relative weighting (shared words < theme match < emotion match) is.
type Config struct {
	// MaxTurns caps the conversation turn window.
	MaxTurns int
	// MaxEmotionalSamples caps the emotional pattern window.
	MaxEmotionalSamples int
	// MaxImportedChunks caps the imported document chunk window.
	MaxImportedChunks int

	// SimilarTopK is how many similar turns retrieval returns.
	SimilarTopK int
	// MinSharedWordLen is the exclusive length floor for similarity words.
	MinSharedWordLen int

	// SharedWordWeight scores each shared word in imported-chunk retrieval.
	SharedWordWeight int
	// EmotionMatchWeight scores a chunk whose emotion matches the current one.
	EmotionMatchWeight int
	// ThemeMatchWeight scores a chunk sharing a theme with the input's topics.
	ThemeMatchWeight int

	// PatternWindow is how many recent turns feed the pattern summary.
	PatternWindow int
	// TrendWindow is how many recent samples feed the emotional trend.
	TrendWindow int
	// TrendMinSamples is the minimum sample count before a trend is reported.
	TrendMinSamples int

	// ExcerptLen caps imported-context excerpts in the formatted summary.
	ExcerptLen int
}

// DefaultConfig returns the shipped defaults.
func DefaultConfig() Config {
	return Config{
		MaxTurns:            50,
		MaxEmotionalSamples: 50,
		MaxImportedChunks:   200,
		SimilarTopK:         3,
		MinSharedWordLen:    3,
		SharedWordWeight:    2,
		EmotionMatchWeight:  5,
		ThemeMatchWeight:    3,
		PatternWindow:       10,
		TrendWindow:         7,
		TrendMinSamples:     3,
		ExcerptLen:          200,
	}
}

// normalize fills zero fields with defaults so a partially specified config
// cannot produce degenerate windows.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.MaxTurns <= 0 {
		c.MaxTurns = def.MaxTurns
	}
	if c.MaxEmotionalSamples <= 0 {
		c.MaxEmotionalSamples = def.MaxEmotionalSamples
	}
	if c.MaxImportedChunks <= 0 {
		c.MaxImportedChunks = def.MaxImportedChunks
	}
	if c.SimilarTopK <= 0 {
		c.SimilarTopK = def.SimilarTopK
	}
	if c.MinSharedWordLen <= 0 {
		c.MinSharedWordLen = def.MinSharedWordLen
	}
	if c.SharedWordWeight <= 0 {
		c.SharedWordWeight = def.SharedWordWeight
	}
	if c.EmotionMatchWeight <= 0 {
		c.EmotionMatchWeight = def.EmotionMatchWeight
	}
	if c.ThemeMatchWeight <= 0 {
		c.ThemeMatchWeight = def.ThemeMatchWeight
	}
	if c.PatternWindow <= 0 {
		c.PatternWindow = def.PatternWindow
	}
	if c.TrendWindow <= 0 {
		c.TrendWindow = def.TrendWindow
	}
	if c.TrendMinSamples <= 0 {
		c.TrendMinSamples = def.TrendMinSamples
	}
	if c.ExcerptLen <= 0 {
		c.ExcerptLen = def.ExcerptLen
	}
	return c
}
