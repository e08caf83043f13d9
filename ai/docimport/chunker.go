package docimport

import (
	"regexp"
	"strings"
)

// MinChunkLen is the noise filter: fragments shorter than this are dropped.
const MinChunkLen = 50

var (
	paragraphSplitter = regexp.MustCompile(`\n\s*\n`)
	// Sentence boundary: terminal punctuation followed by whitespace.
	sentenceBoundary = regexp.MustCompile(`([.!?])\s+`)
)

// Chunk splits content into analysis-sized pieces. Paragraphs (blank-line
// separated) are the primary unit; a paragraph longer than maxLen is split
// on sentence boundaries and greedily packed into chunks not exceeding
// maxLen. Chunks shorter than MinChunkLen are dropped. Order follows the
// document; no sentence is duplicated or skipped except by the noise filter.
func Chunk(content string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = 1000
	}

	var chunks []string
	for _, para := range paragraphSplitter.Split(content, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(para) <= maxLen {
			if len(para) >= MinChunkLen {
				chunks = append(chunks, para)
			}
			continue
		}
		for _, packed := range packSentences(splitIntoSentences(para), maxLen) {
			if len(packed) >= MinChunkLen {
				chunks = append(chunks, packed)
			}
		}
	}
	return chunks
}

// splitIntoSentences cuts text after terminal punctuation, keeping the
// punctuation with its sentence.
func splitIntoSentences(text string) []string {
	marked := sentenceBoundary.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// packSentences greedily packs sentences into chunks of at most maxLen.
// A single sentence longer than maxLen is hard-wrapped at rune boundaries
// so no chunk ever exceeds the limit.
func packSentences(sentences []string, maxLen int) []string {
	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, sentence := range sentences {
		if len(sentence) > maxLen {
			flush()
			chunks = append(chunks, hardWrap(sentence, maxLen)...)
			continue
		}
		if current.Len() > 0 && current.Len()+1+len(sentence) > maxLen {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sentence)
	}
	flush()
	return chunks
}

// hardWrap splits an oversized sentence at rune boundaries.
func hardWrap(s string, maxLen int) []string {
	runes := []rune(s)
	var parts []string
	for len(runes) > 0 {
		n := maxLen
		if n > len(runes) {
			n = len(runes)
		}
		// Count bytes, not runes, against maxLen so multi-byte text cannot
		// produce an oversized chunk.
		for n > 0 && len(string(runes[:n])) > maxLen {
			n--
		}
		parts = append(parts, string(runes[:n]))
		runes = runes[n:]
	}
	return parts
}
