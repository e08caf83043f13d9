package llm

import (
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceRequiresModel(t *testing.T) {
	_, err := NewService(&Config{Provider: "openai"})
	assert.Error(t, err)
}

func TestNewServiceDefaults(t *testing.T) {
	svc, err := NewService(&Config{Provider: "deepseek", Model: "deepseek-chat"})
	require.NoError(t, err)

	s, ok := svc.(*service)
	require.True(t, ok)
	assert.Equal(t, 512, s.maxTokens)
	assert.Equal(t, float32(0.8), s.temperature)
	assert.Equal(t, 60, s.timeout)
	assert.Nil(t, s.limiter, "throttling is off by default")
}

func TestNewServiceRateLimiter(t *testing.T) {
	svc, err := NewService(&Config{Provider: "openai", Model: "gpt-4o-mini", RequestsPerMinute: 30})
	require.NoError(t, err)

	s := svc.(*service)
	require.NotNil(t, s.limiter)
	assert.InDelta(t, 0.5, float64(s.limiter.Limit()), 1e-9)
	assert.Equal(t, 30, s.limiter.Burst())
}

func TestConvertMessages(t *testing.T) {
	messages := []Message{
		{Role: "system", Content: "stay in character"},
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi there"},
		{Role: "tool", Content: "falls back to user"},
	}

	converted := convertMessages(messages)

	require.Len(t, converted, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, converted[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, converted[1].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, converted[2].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, converted[3].Role)
	assert.Equal(t, "stay in character", converted[0].Content)
}

func TestFormatMessages(t *testing.T) {
	history := []Message{
		UserMessage("earlier question"),
		AssistantMessage("earlier answer"),
	}

	messages := FormatMessages("persona prompt", "current question", history)

	require.Len(t, messages, 4)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "persona prompt", messages[0].Content)
	assert.Equal(t, "current question", messages[3].Content)

	noSystem := FormatMessages("", "only question", nil)
	require.Len(t, noSystem, 1)
	assert.Equal(t, "user", noSystem[0].Role)
}
