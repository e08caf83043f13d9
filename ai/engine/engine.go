// Package engine composes the per-turn pipeline: signal extraction, persona
// selection, memory retrieval, response caching, and the external model call.
// It is the only place that talks to the model and the only writer of the
// response cache and the session memory stores.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/hrygo/mindsense/ai/analysis"
	"github.com/hrygo/mindsense/ai/cache"
	"github.com/hrygo/mindsense/ai/core/llm"
	"github.com/hrygo/mindsense/ai/docimport"
	"github.com/hrygo/mindsense/ai/memory"
	"github.com/hrygo/mindsense/ai/metrics"
	"github.com/hrygo/mindsense/ai/persona"
)

// FallbackMessage is returned verbatim when the model call fails. The turn
// is not recorded, so a degraded answer never becomes conversation history.
const FallbackMessage = "I'm having a little trouble gathering my thoughts right now. Give me a moment and ask me again?"

// genericInstruction stands in when no persona definition can be rendered.
const genericInstruction = "You are a warm, supportive companion in a personal-growth conversation. Reply in one or two sentences and end with exactly one follow-up question."

// recentActivityWindow controls when recent pattern context is attached.
const recentActivityWindow = 24 * time.Hour

// DefaultCacheTTL is how long a generated response stays reusable.
const DefaultCacheTTL = 10 * time.Minute

// Config tunes the engine.
type Config struct {
	CacheCapacity int
	CacheTTL      time.Duration

	// ModelLabel tags token metrics. Usually the configured model name.
	ModelLabel string
}

// DefaultConfig returns the shipped engine defaults.
func DefaultConfig() Config {
	return Config{
		CacheCapacity: cache.DefaultCapacity,
		CacheTTL:      DefaultCacheTTL,
	}
}

// ChatResult is the outcome of one conversation turn.
type ChatResult struct {
	SessionID string           `json:"session_id"`
	Response  string           `json:"response"`
	Persona   persona.ID       `json:"persona"`
	Emotion   analysis.Emotion `json:"emotion"`
	Energy    analysis.Energy  `json:"energy"`
	Topics    []analysis.Topic `json:"topics"`
	CacheHit  bool             `json:"cache_hit"`
	Fallback  bool             `json:"fallback"`
	Stats     *llm.CallStats   `json:"stats,omitempty"`
}

// InsightsReport is a read-only view of a session's accumulated patterns.
type InsightsReport struct {
	SessionID string                `json:"session_id"`
	Turns     int                   `json:"turns"`
	Patterns  memory.PatternSummary `json:"patterns"`
	Trend     *memory.Trend         `json:"trend,omitempty"`
}

// Engine orchestrates conversation turns and document imports.
type Engine struct {
	llm        llm.Service
	cache      *cache.ResponseCache
	sessions   *SessionManager
	pipeline   *docimport.Pipeline
	exporter   *metrics.PrometheusExporter
	cacheTTL   time.Duration
	modelLabel string
}

// New creates an Engine. The exporter may be nil when metrics are not wired.
func New(cfg Config, svc llm.Service, sessions *SessionManager, pipeline *docimport.Pipeline, exporter *metrics.PrometheusExporter) *Engine {
	if cfg.CacheCapacity <= 0 {
		cfg.CacheCapacity = cache.DefaultCapacity
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.ModelLabel == "" {
		cfg.ModelLabel = "unknown"
	}
	e := &Engine{
		llm:        svc,
		cache:      cache.New(cfg.CacheCapacity),
		sessions:   sessions,
		pipeline:   pipeline,
		exporter:   exporter,
		cacheTTL:   cfg.CacheTTL,
		modelLabel: cfg.ModelLabel,
	}
	if exporter != nil {
		sessions.OnEvict(func(*Session) { exporter.RecordSessionEviction() })
	}
	return e
}

// Sessions exposes the session manager for the serving layer.
func (e *Engine) Sessions() *SessionManager {
	return e.sessions
}

// Chat runs one conversation turn for the user. Model failures are absorbed
// here: the caller always gets a valid ChatResult, with Fallback set when
// the canned message was used.
func (e *Engine) Chat(ctx context.Context, userID, input string) *ChatResult {
	session := e.sessions.Get(userID)
	session.mu.Lock()
	defer session.mu.Unlock()
	session.touch(time.Now())

	started := time.Now()

	signals := analysis.Analyze(input)
	selected := persona.Select(signals.Emotion, signals.Energy, persona.SessionContext{
		Preferred: session.preferredPersona,
	})
	memoryContext := session.store.FormatContextForModel(input, signals.Emotion)
	// The cache is engine-wide but responses embed the session's memory
	// context, so the key carries the session ID to keep entries private.
	key := cache.NormalizeKey(session.ID, string(selected), input, string(signals.Emotion))

	result := &ChatResult{
		SessionID: session.ID,
		Persona:   selected,
		Emotion:   signals.Emotion,
		Energy:    signals.Energy,
		Topics:    signals.Topics,
	}

	if cached, ok := e.cache.Get(key); ok {
		slog.Debug("response cache hit", "session_id", session.ID, "persona", selected)
		if e.exporter != nil {
			e.exporter.RecordCacheHit()
			e.exporter.RecordChatTurn(string(selected), time.Since(started), true)
		}
		result.Response = cached
		result.CacheHit = true
		return result
	}
	if e.exporter != nil {
		e.exporter.RecordCacheMiss()
	}

	systemPrompt := e.buildSystemPrompt(session, selected, input, signals, memoryContext)
	messages := llm.FormatMessages(systemPrompt, input, nil)

	callStart := time.Now()
	content, stats, err := e.llm.Chat(ctx, messages)
	if err != nil {
		slog.Warn("model call failed, serving fallback",
			"session_id", session.ID,
			"persona", selected,
			"error", err)
		if e.exporter != nil {
			e.exporter.RecordFallback()
			e.exporter.RecordChatTurn(string(selected), time.Since(started), false)
		}
		return fallbackResult(session.ID)
	}

	e.cache.Set(key, content, e.cacheTTL)

	now := time.Now()
	session.store.RecordTurn(memory.ConversationTurn{
		Timestamp:  now,
		UserInput:  input,
		AIResponse: content,
		Emotion:    signals.Emotion,
		Topics:     signals.Topics,
	})
	session.store.RecordEmotionalSample(memory.EmotionalSample{
		State:     signals.Emotion,
		Timestamp: now,
		Topics:    signals.Topics,
	})

	if e.exporter != nil {
		e.exporter.RecordChatTurn(string(selected), time.Since(started), true)
		e.exporter.RecordModelLatency(e.modelLabel, time.Since(callStart))
		if stats != nil {
			e.exporter.RecordModelTokens(e.modelLabel, "prompt", stats.PromptTokens)
			e.exporter.RecordModelTokens(e.modelLabel, "completion", stats.CompletionTokens)
		}
	}

	result.Response = content
	result.Stats = stats
	return result
}

// ImportDocument runs the import pipeline against the user's session memory.
func (e *Engine) ImportDocument(ctx context.Context, userID string, doc docimport.ExtractedDocument) (*docimport.ImportResult, error) {
	session := e.sessions.Get(userID)
	session.mu.Lock()
	defer session.mu.Unlock()
	session.touch(time.Now())

	result, err := e.pipeline.Integrate(ctx, doc, session.store)
	if e.exporter != nil {
		if err != nil {
			e.exporter.RecordDocumentImport("unknown", 0, false)
		} else {
			e.exporter.RecordDocumentImport(string(result.Insights.DocumentType), result.ChunksProcessed, true)
		}
	}
	return result, err
}

// Insights returns the read-only pattern view for a user's live session.
func (e *Engine) Insights(userID string) (*InsightsReport, bool) {
	session, ok := e.sessions.Lookup(userID)
	if !ok {
		return nil, false
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	return &InsightsReport{
		SessionID: session.ID,
		Turns:     len(session.store.Turns()),
		Patterns:  session.store.RecentPatternSummary(),
		Trend:     session.store.EmotionalTrend(),
	}, true
}

// buildSystemPrompt assembles the persona fragment, the memory context, and,
// when the user has been active recently, a short pattern block.
func (e *Engine) buildSystemPrompt(session *Session, selected persona.ID, input string, signals analysis.SignalBundle, memoryContext string) string {
	fragment, ok := persona.RenderPrompt(selected, input, persona.UserState{
		Emotion: signals.Emotion,
		Energy:  signals.Energy,
	}, session.profanityAllowed)
	if !ok {
		fragment = genericInstruction
	}

	parts := []string{fragment, memoryContext}
	if block := recentPatternBlock(session.store); block != "" {
		parts = append(parts, block)
	}
	return strings.Join(parts, "\n\n")
}

// recentPatternBlock summarizes dominant recent patterns when the last turn
// happened inside the activity window. Quiet sessions get nothing extra.
func recentPatternBlock(store *memory.Store) string {
	turns := store.Turns()
	if len(turns) == 0 {
		return ""
	}
	if time.Since(turns[len(turns)-1].Timestamp) > recentActivityWindow {
		return ""
	}

	summary := store.RecentPatternSummary()
	emotion := dominantKey(summary.Emotions)
	topic := dominantKey(summary.Topics)
	if emotion == "" && topic == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("Recent patterns:")
	if emotion != "" {
		fmt.Fprintf(&b, " the user has mostly felt %s lately.", emotion)
	}
	if topic != "" {
		fmt.Fprintf(&b, " Conversations keep returning to %s.", topic)
	}
	return b.String()
}

// dominantKey picks the highest-count key; ties go alphabetically so the
// block is stable across runs.
func dominantKey[K ~string](counts map[K]int) string {
	keys := make([]K, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) == 0 {
		return ""
	}
	return string(keys[0])
}

func fallbackResult(sessionID string) *ChatResult {
	return &ChatResult{
		SessionID: sessionID,
		Response:  FallbackMessage,
		Persona:   persona.DefaultID,
		Emotion:   analysis.EmotionNeutral,
		Energy:    analysis.EnergyMedium,
		Topics:    []analysis.Topic{analysis.TopicGeneral},
		Fallback:  true,
	}
}
