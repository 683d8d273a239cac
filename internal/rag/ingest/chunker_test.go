package ingest

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "Terminators_Kept_With_Sentence",
			text:     "First one. Second one! Third one?",
			expected: []string{"First one.", "Second one!", "Third one?"},
		},
		{
			name:     "Trailing_Text_Without_Terminator",
			text:     "Complete sentence. trailing fragment",
			expected: []string{"Complete sentence.", "trailing fragment"},
		},
		{
			name:     "Newline_As_Boundary_Whitespace",
			text:     "Line one.\nLine two.",
			expected: []string{"Line one.", "Line two."},
		},
		{
			name:     "No_Terminator_At_All",
			text:     "just a fragment",
			expected: []string{"just a fragment"},
		},
		{
			name:     "Empty_Input",
			text:     "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitSentences(%q) = %v; want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestSplitIntoChunks(t *testing.T) {
	t.Run("Flushes_Before_Overflow", func(t *testing.T) {
		// Three 10-char sentences with a 25-char budget: the first two fit
		// together, the third starts a new chunk.
		text := "aaaaaaaaa. bbbbbbbbb. ccccccccc."
		chunks := SplitIntoChunks(text, 25)

		expected := []string{"aaaaaaaaa. bbbbbbbbb.", "ccccccccc."}
		if !reflect.DeepEqual(chunks, expected) {
			t.Errorf("got %v; want %v", chunks, expected)
		}
	})

	t.Run("Chunks_Respect_Budget", func(t *testing.T) {
		text := strings.Repeat("A reasonably sized sentence about nothing much. ", 40)
		maxChars := 200
		for i, chunk := range SplitIntoChunks(text, maxChars) {
			if len(chunk) > maxChars {
				t.Errorf("chunk %d has %d chars, budget is %d", i, len(chunk), maxChars)
			}
		}
	})

	t.Run("Oversized_Sentence_Kept_Whole", func(t *testing.T) {
		sentence := strings.Repeat("word ", 30) // no terminator, one sentence
		chunks := SplitIntoChunks(sentence, 20)

		if len(chunks) != 1 {
			t.Fatalf("Expected 1 chunk for an unbreakable sentence, got %d", len(chunks))
		}
		if len(chunks[0]) <= 20 {
			t.Errorf("Oversized sentence should exceed budget, got %d chars", len(chunks[0]))
		}
	})

	t.Run("Sentences_Joined_With_Single_Space", func(t *testing.T) {
		text := "One.   Two.\n\nThree."
		chunks := SplitIntoChunks(text, 100)

		if len(chunks) != 1 {
			t.Fatalf("Expected 1 chunk, got %d", len(chunks))
		}
		if chunks[0] != "One. Two. Three." {
			t.Errorf("got %q; want %q", chunks[0], "One. Two. Three.")
		}
	})

	t.Run("Empty_Input", func(t *testing.T) {
		if chunks := SplitIntoChunks("", 100); chunks != nil {
			t.Errorf("Expected nil for empty input, got %v", chunks)
		}
	})
}
