package server

import (
	"strings"
	"time"

	"github.com/hrygo/mindsense/ai/analysis"
	"github.com/hrygo/mindsense/ai/memory"
	"github.com/hrygo/mindsense/store"
)

func joinTopics(topics []analysis.Topic) string {
	parts := make([]string, len(topics))
	for i, topic := range topics {
		parts[i] = string(topic)
	}
	return strings.Join(parts, ",")
}

func splitTopics(s string) []analysis.Topic {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	topics := make([]analysis.Topic, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			topics = append(topics, analysis.Topic(p))
		}
	}
	return topics
}

func turnToRecord(userID, sessionID string, turn memory.ConversationTurn) *store.ConversationTurn {
	return &store.ConversationTurn{
		UserID:     userID,
		SessionID:  sessionID,
		UserInput:  turn.UserInput,
		AIResponse: turn.AIResponse,
		Emotion:    string(turn.Emotion),
		Topics:     joinTopics(turn.Topics),
		CreatedTs:  turn.Timestamp.Unix(),
	}
}

func recordToTurn(record *store.ConversationTurn) memory.ConversationTurn {
	return memory.ConversationTurn{
		Timestamp:  time.Unix(record.CreatedTs, 0),
		UserInput:  record.UserInput,
		AIResponse: record.AIResponse,
		Emotion:    analysis.Emotion(record.Emotion),
		Topics:     splitTopics(record.Topics),
	}
}

func sampleToRecord(userID string, sample memory.EmotionalSample) *store.EmotionalSample {
	return &store.EmotionalSample{
		UserID:    userID,
		State:     string(sample.State),
		Topics:    joinTopics(sample.Topics),
		CreatedTs: sample.Timestamp.Unix(),
	}
}

func recordToSample(record *store.EmotionalSample) memory.EmotionalSample {
	return memory.EmotionalSample{
		State:     analysis.Emotion(record.State),
		Timestamp: time.Unix(record.CreatedTs, 0),
		Topics:    splitTopics(record.Topics),
	}
}

func recordToChunk(record *store.DocumentChunk, title string) memory.ImportedChunk {
	return memory.ImportedChunk{
		Content:   record.Content,
		Source:    title,
		Timestamp: time.Unix(record.CreatedTs, 0),
		Analysis: analysis.SignalBundle{
			Emotion: analysis.Emotion(record.Emotion),
			Topics:  splitTopics(record.Topics),
		},
	}
}
