package persona

import (
	"fmt"
	"strings"

	"github.com/hrygo/mindsense/ai/analysis"
	"github.com/hrygo/mindsense/ai/internal/strutil"
)

// UserState is the slice of the current analysis that prompt rendering needs.
type UserState struct {
	Emotion analysis.Emotion
	Energy  analysis.Energy
}

// maxInputExcerpt caps how much of the raw user input is echoed into the
// prompt fragment.
const maxInputExcerpt = 300

// RenderPrompt compiles a persona definition plus the current user state into
// a system-prompt fragment. The second return is false if id is unknown;
// callers then fall back to a generic instruction.
//
// The output is an instruction for the model, not a user-facing response.
func RenderPrompt(id ID, userInput string, state UserState, profanityAllowed bool) (string, bool) {
	def, ok := Lookup(id)
	if !ok {
		return "", false
	}

	example, ok := def.Examples[state.Emotion]
	if !ok {
		example = def.DefaultExample
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s\n", def.Name, def.Personality)
	fmt.Fprintf(&b, "Conversation style: %s.\n", def.ConversationStyle)
	if len(def.SpeechPatterns) > 0 {
		fmt.Fprintf(&b, "Phrases you naturally use: %s.\n", strings.Join(def.SpeechPatterns, " / "))
	}
	fmt.Fprintf(&b, "\nThe user currently reads as %s with %s energy.\n", state.Emotion, state.Energy)
	fmt.Fprintf(&b, "Example of your voice in this situation: %q\n", example)
	fmt.Fprintf(&b, "\nThe user said: %q\n", strutil.Truncate(strutil.NormalizeSpace(userInput), maxInputExcerpt))

	b.WriteString("\nRules:\n")
	b.WriteString("- Stay fully in character; never mention being an AI or a persona.\n")
	if profanityAllowed {
		b.WriteString("- Casual profanity is fine if it fits the moment.\n")
	} else {
		b.WriteString("- Keep the language clean; no profanity.\n")
	}
	b.WriteString("- Reply in one or two sentences.\n")
	b.WriteString("- End with exactly one follow-up question.\n")

	return b.String(), true
}
