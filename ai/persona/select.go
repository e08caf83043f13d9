package persona

import (
	"github.com/hrygo/mindsense/ai/analysis"
)

// SessionContext carries per-session hints into persona selection.
type SessionContext struct {
	// Preferred pins the session to one persona regardless of emotion.
	// Zero value means no preference.
	Preferred ID
}

// Select maps the detected emotional state to a persona.
// The switch is exhaustive over analysis.Emotion so adding an emotion without
// deciding its persona is a compile-review-visible gap, not a silent default.
func Select(emotion analysis.Emotion, energy analysis.Energy, sctx SessionContext) ID {
	if sctx.Preferred != "" {
		if _, ok := definitions[sctx.Preferred]; ok {
			return sctx.Preferred
		}
	}

	switch emotion {
	case analysis.EmotionExcited:
		return Coach
	case analysis.EmotionMotivated:
		return Coach
	case analysis.EmotionStressed:
		return Friend
	case analysis.EmotionConfused:
		return Mentor
	case analysis.EmotionAngry:
		return Challenger
	case analysis.EmotionSad:
		return Therapist
	case analysis.EmotionOverwhelmed:
		return Therapist
	case analysis.EmotionContent:
		return Sage
	case analysis.EmotionHappy:
		return Sage
	case analysis.EmotionAnxious, analysis.EmotionNeutral:
		return DefaultID
	default:
		// Unknown or garbage tags resolve to the declared default.
		return DefaultID
	}
}
