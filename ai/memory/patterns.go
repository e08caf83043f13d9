package memory

import (
	"time"

	"github.com/hrygo/mindsense/ai/analysis"
)

// TimeBucket partitions the day for pattern summaries.
type TimeBucket string

const (
	BucketMorning   TimeBucket = "morning"   // 06:00-12:00
	BucketAfternoon TimeBucket = "afternoon" // 12:00-17:00
	BucketEvening   TimeBucket = "evening"   // 17:00-22:00
	BucketNight     TimeBucket = "night"     // everything else
)

// BucketFor classifies a timestamp into its time-of-day bucket.
func BucketFor(t time.Time) TimeBucket {
	switch h := t.Hour(); {
	case h >= 6 && h < 12:
		return BucketMorning
	case h >= 12 && h < 17:
		return BucketAfternoon
	case h >= 17 && h < 22:
		return BucketEvening
	default:
		return BucketNight
	}
}

// PatternSummary aggregates the most recent turns by emotion, topic, and
// time of day.
type PatternSummary struct {
	Emotions  map[analysis.Emotion]int `json:"emotions"`
	Topics    map[analysis.Topic]int   `json:"topics"`
	TimeOfDay map[TimeBucket]int       `json:"time_of_day"`
}

// RecentPatternSummary computes counts over the most recent turns
// (Config.PatternWindow of them). All maps are non-nil, possibly empty.
func (s *Store) RecentPatternSummary() PatternSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := PatternSummary{
		Emotions:  make(map[analysis.Emotion]int),
		Topics:    make(map[analysis.Topic]int),
		TimeOfDay: make(map[TimeBucket]int),
	}

	recent := s.turns
	if len(recent) > s.cfg.PatternWindow {
		recent = recent[len(recent)-s.cfg.PatternWindow:]
	}
	for _, turn := range recent {
		summary.Emotions[turn.Emotion]++
		for _, topic := range turn.Topics {
			summary.Topics[topic]++
		}
		summary.TimeOfDay[BucketFor(turn.Timestamp)]++
	}
	return summary
}

// TrendDirection is the overall direction of the recent emotional trend.
type TrendDirection string

const (
	TrendImproving  TrendDirection = "improving"
	TrendStable     TrendDirection = "stable"
	TrendConcerning TrendDirection = "concerning"
)

// Trend holds the bucket counts over the recent emotional samples.
type Trend struct {
	Improving  int `json:"improving"`
	Stable     int `json:"stable"`
	Concerning int `json:"concerning"`
}

// Direction reduces the counts to one direction. Concerning wins ties with
// improving: when the picture is mixed, err toward attention.
func (t Trend) Direction() TrendDirection {
	switch {
	case t.Concerning >= t.Improving && t.Concerning > t.Stable:
		return TrendConcerning
	case t.Improving > t.Stable:
		return TrendImproving
	default:
		return TrendStable
	}
}

// improvingEmotions and concerningEmotions are the fixed trend membership
// lists; everything else counts as stable.
var improvingEmotions = map[analysis.Emotion]struct{}{
	analysis.EmotionExcited:   {},
	analysis.EmotionHappy:     {},
	analysis.EmotionMotivated: {},
	analysis.EmotionContent:   {},
}

var concerningEmotions = map[analysis.Emotion]struct{}{
	analysis.EmotionStressed:    {},
	analysis.EmotionAnxious:     {},
	analysis.EmotionOverwhelmed: {},
	analysis.EmotionSad:         {},
}

// EmotionalTrend classifies the most recent emotional samples
// (Config.TrendWindow of them) into improving/stable/concerning counts.
// Returns nil when fewer than Config.TrendMinSamples samples exist, which
// callers treat as "insufficient data", not as an error.
func (s *Store) EmotionalTrend() *Trend {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.samples) < s.cfg.TrendMinSamples {
		return nil
	}

	recent := s.samples
	if len(recent) > s.cfg.TrendWindow {
		recent = recent[len(recent)-s.cfg.TrendWindow:]
	}

	var trend Trend
	for _, sample := range recent {
		switch {
		case isImproving(sample.State):
			trend.Improving++
		case isConcerning(sample.State):
			trend.Concerning++
		default:
			trend.Stable++
		}
	}
	return &trend
}

func isImproving(e analysis.Emotion) bool {
	_, ok := improvingEmotions[e]
	return ok
}

func isConcerning(e analysis.Emotion) bool {
	_, ok := concerningEmotions[e]
	return ok
}
