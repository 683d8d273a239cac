package ingest

import (
	"regexp"
	"strings"
)

// A sentence ends at ., ! or ? followed by whitespace. Go's RE2 has no
// lookbehind, so boundaries are located by index and the punctuation is
// kept with the preceding sentence.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// SplitSentences splits text on sentence boundaries, trimming each sentence
// and dropping empties.
func SplitSentences(text string) []string {
	var sentences []string
	last := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[last : loc[0]+1]); s != "" {
			sentences = append(sentences, s)
		}
		last = loc[1]
	}
	if last < len(text) {
		if s := strings.TrimSpace(text[last:]); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// SplitIntoChunks splits text into chunks of up to maxChars characters, never
// breaking inside a sentence. A chunk exceeds maxChars only when a single
// sentence alone does - sentence integrity wins over strict budget compliance.
func SplitIntoChunks(text string, maxChars int) []string {
	if text == "" {
		return nil
	}

	var chunks []string
	var current []string
	currentLen := 0

	for _, sentence := range SplitSentences(text) {
		sLen := len(sentence)
		if currentLen+sLen > maxChars && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{sentence}
			currentLen = sLen
		} else {
			current = append(current, sentence)
			currentLen += sLen + 1 // joining space
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}
