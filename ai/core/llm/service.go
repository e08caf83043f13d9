package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Message represents a chat message.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// CallStats carries token usage and timing for a single model call.
type CallStats struct {
	PromptTokens     int   `json:"prompt_tokens"`
	CompletionTokens int   `json:"completion_tokens"`
	TotalTokens      int   `json:"total_tokens"`
	CacheReadTokens  int   `json:"cache_read_tokens,omitempty"`
	TotalDurationMs  int64 `json:"total_duration_ms"`
}

// Service is the model-call interface the chat engine depends on.
type Service interface {
	// Chat performs a synchronous completion. Returns content, statistics,
	// and error.
	Chat(ctx context.Context, messages []Message) (string, *CallStats, error)

	// Warmup sends a lightweight ping to establish the connection.
	Warmup(ctx context.Context)
}

// Config represents model service configuration.
type Config struct {
	Provider    string // deepseek, openai, siliconflow, ollama
	Model       string
	APIKey      string
	BaseURL     string
	MaxTokens   int     // default: 512
	Temperature float32 // default: 0.8
	Timeout     int     // request timeout in seconds (default: 60)

	// RequestsPerMinute throttles outbound calls. Zero disables throttling.
	RequestsPerMinute int
}

type service struct {
	client      *openai.Client
	model       string
	provider    string
	maxTokens   int
	temperature float32
	timeout     int
	limiter     *rate.Limiter
}

// NewService creates a model Service for the configured provider. Every
// provider speaks the OpenAI-compatible chat API; only the base URL differs.
func NewService(cfg *Config) (Service, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("llm: model is required")
	}

	httpClient := newHTTPClient()
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.HTTPClient = httpClient

	switch cfg.Provider {
	case "deepseek":
		clientConfig.BaseURL = orDefault(cfg.BaseURL, "https://api.deepseek.com")
	case "siliconflow":
		clientConfig.BaseURL = orDefault(cfg.BaseURL, "https://api.siliconflow.cn/v1")
	case "ollama":
		clientConfig.BaseURL = orDefault(cfg.BaseURL, "http://localhost:11434/v1")
	case "openai":
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = cfg.BaseURL
		}
	default:
		// Generic fallback for any other OpenAI-compatible provider.
		slog.Info("using generic OpenAI-compatible provider", "provider", cfg.Provider)
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = cfg.BaseURL
		}
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 512
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.8
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute)
	}

	return &service{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		provider:    cfg.Provider,
		maxTokens:   maxTokens,
		temperature: temperature,
		timeout:     timeout,
		limiter:     limiter,
	}, nil
}

func (s *service) Chat(ctx context.Context, messages []Message) (string, *CallStats, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.timeout)*time.Second)
	defer cancel()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	slog.Debug("model chat request",
		"provider", s.provider,
		"model", s.model,
		"messages_count", len(messages),
		"max_tokens", s.maxTokens,
	)

	startTime := time.Now()

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		Messages:    convertMessages(messages),
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		slog.Error("model chat request failed", "error", err)
		return "", nil, fmt.Errorf("model chat failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		slog.Warn("empty response from model")
		return "", nil, fmt.Errorf("empty response from model")
	}

	totalDuration := time.Since(startTime)

	stats := &CallStats{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
		TotalDurationMs:  totalDuration.Milliseconds(),
	}
	if resp.Usage.PromptTokensDetails != nil && resp.Usage.PromptTokensDetails.CachedTokens > 0 {
		stats.CacheReadTokens = resp.Usage.PromptTokensDetails.CachedTokens
	}

	slog.Debug("model chat response received",
		"content_length", len(resp.Choices[0].Message.Content),
		"total_tokens", stats.TotalTokens,
		"duration_ms", totalDuration.Milliseconds(),
	)

	return resp.Choices[0].Message.Content, stats, nil
}

func (s *service) Warmup(ctx context.Context) {
	warmupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	startTime := time.Now()

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   1,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Hi"},
		},
	}

	_, err := s.client.CreateChatCompletion(warmupCtx, req)
	duration := time.Since(startTime)

	if err != nil {
		slog.Warn("model warmup ping failed, first request may be slower",
			"provider", s.provider,
			"model", s.model,
			"error", err,
			"duration_ms", duration.Milliseconds(),
		)
		return
	}

	slog.Info("model connection warmed up",
		"provider", s.provider,
		"model", s.model,
		"duration_ms", duration.Milliseconds(),
	)
}

func convertMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case "system":
			role = openai.ChatMessageRoleSystem
		case "assistant":
			role = openai.ChatMessageRoleAssistant
		}
		out[i] = openai.ChatCompletionMessage{Role: role, Content: m.Content}
	}
	return out
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// SystemPrompt builds a system-role message.
func SystemPrompt(content string) Message {
	return Message{Role: "system", Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// AssistantMessage builds an assistant-role message.
func AssistantMessage(content string) Message {
	return Message{Role: "assistant", Content: content}
}

// FormatMessages assembles the standard prompt layout: optional system
// prompt, prior history, then the current user turn.
func FormatMessages(systemPrompt string, userContent string, history []Message) []Message {
	messages := []Message{}
	if systemPrompt != "" {
		messages = append(messages, SystemPrompt(systemPrompt))
	}
	messages = append(messages, history...)
	messages = append(messages, UserMessage(userContent))
	return messages
}
