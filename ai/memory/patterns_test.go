package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/mindsense/ai/analysis"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		hour     int
		expected TimeBucket
	}{
		{6, BucketMorning},
		{11, BucketMorning},
		{12, BucketAfternoon},
		{16, BucketAfternoon},
		{17, BucketEvening},
		{21, BucketEvening},
		{22, BucketNight},
		{2, BucketNight},
		{5, BucketNight},
	}
	for _, tt := range tests {
		ts := time.Date(2026, 3, 1, tt.hour, 30, 0, 0, time.UTC)
		assert.Equal(t, tt.expected, BucketFor(ts), "hour %d", tt.hour)
	}
}

func TestRecentPatternSummary(t *testing.T) {
	s := NewStore(DefaultConfig())

	morning := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

	s.RecordTurn(ConversationTurn{Timestamp: morning, Emotion: analysis.EmotionHappy, Topics: []analysis.Topic{analysis.TopicWork}})
	s.RecordTurn(ConversationTurn{Timestamp: evening, Emotion: analysis.EmotionHappy, Topics: []analysis.Topic{analysis.TopicWork, analysis.TopicHealth}})
	s.RecordTurn(ConversationTurn{Timestamp: evening, Emotion: analysis.EmotionSad, Topics: []analysis.Topic{analysis.TopicGeneral}})

	summary := s.RecentPatternSummary()

	assert.Equal(t, 2, summary.Emotions[analysis.EmotionHappy])
	assert.Equal(t, 1, summary.Emotions[analysis.EmotionSad])
	assert.Equal(t, 2, summary.Topics[analysis.TopicWork])
	assert.Equal(t, 1, summary.Topics[analysis.TopicHealth])
	assert.Equal(t, 1, summary.TimeOfDay[BucketMorning])
	assert.Equal(t, 2, summary.TimeOfDay[BucketEvening])
}

func TestRecentPatternSummaryWindowsLastTen(t *testing.T) {
	s := NewStore(DefaultConfig())

	// 5 sad turns followed by 10 happy turns: only the last 10 count.
	for i := 0; i < 5; i++ {
		s.RecordTurn(ConversationTurn{Timestamp: time.Now(), Emotion: analysis.EmotionSad})
	}
	for i := 0; i < 10; i++ {
		s.RecordTurn(ConversationTurn{Timestamp: time.Now(), Emotion: analysis.EmotionHappy})
	}

	summary := s.RecentPatternSummary()
	assert.Equal(t, 10, summary.Emotions[analysis.EmotionHappy])
	assert.Zero(t, summary.Emotions[analysis.EmotionSad])
}

func sampleOf(e analysis.Emotion) EmotionalSample {
	return EmotionalSample{State: e, Timestamp: time.Now()}
}

func TestEmotionalTrendInsufficientData(t *testing.T) {
	s := NewStore(DefaultConfig())
	assert.Nil(t, s.EmotionalTrend())

	s.RecordEmotionalSample(sampleOf(analysis.EmotionHappy))
	s.RecordEmotionalSample(sampleOf(analysis.EmotionHappy))
	assert.Nil(t, s.EmotionalTrend(), "two samples are not enough")

	s.RecordEmotionalSample(sampleOf(analysis.EmotionHappy))
	assert.NotNil(t, s.EmotionalTrend(), "three samples are enough")
}

func TestEmotionalTrendClassification(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.RecordEmotionalSample(sampleOf(analysis.EmotionExcited))    // improving
	s.RecordEmotionalSample(sampleOf(analysis.EmotionMotivated))  // improving
	s.RecordEmotionalSample(sampleOf(analysis.EmotionNeutral))    // stable
	s.RecordEmotionalSample(sampleOf(analysis.EmotionStressed))   // concerning

	trend := s.EmotionalTrend()
	require.NotNil(t, trend)
	assert.Equal(t, 2, trend.Improving)
	assert.Equal(t, 1, trend.Stable)
	assert.Equal(t, 1, trend.Concerning)
	assert.Equal(t, TrendImproving, trend.Direction())
}

func TestEmotionalTrendWindowsLastSeven(t *testing.T) {
	s := NewStore(DefaultConfig())
	// 4 concerning samples pushed out of the window by 7 improving ones.
	for i := 0; i < 4; i++ {
		s.RecordEmotionalSample(sampleOf(analysis.EmotionSad))
	}
	for i := 0; i < 7; i++ {
		s.RecordEmotionalSample(sampleOf(analysis.EmotionContent))
	}

	trend := s.EmotionalTrend()
	require.NotNil(t, trend)
	assert.Equal(t, 7, trend.Improving)
	assert.Zero(t, trend.Concerning)
}

func TestTrendDirectionTieGoesToConcerning(t *testing.T) {
	trend := Trend{Improving: 2, Stable: 0, Concerning: 2}
	assert.Equal(t, TrendConcerning, trend.Direction())
}
