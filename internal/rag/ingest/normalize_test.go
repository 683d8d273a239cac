package ingest

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"CRLF_To_Newline", "one\r\ntwo", "one\ntwo"},
		{"Bare_CR_To_Newline", "one\rtwo", "one\ntwo"},
		{"Excess_Newlines_Collapse", "para one\n\n\n\n\npara two", "para one\n\npara two"},
		{"Paragraph_Break_Preserved", "para one\n\npara two", "para one\n\npara two"},
		{"Trimmed", "  \n text \n ", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.expected {
				t.Errorf("Normalize(%q) = %q; want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestFlattenSpaces(t *testing.T) {
	got := flattenSpaces("C  ONCLUSION   reached")
	if got != "C ONCLUSION reached" {
		t.Errorf("flattenSpaces collapsed wrong: %q", got)
	}
	// newlines survive, only space runs collapse
	if flattenSpaces("a\n\nb") != "a\n\nb" {
		t.Error("flattenSpaces should leave newlines alone")
	}
}
