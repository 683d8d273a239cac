package answer

import (
	"fmt"
	"strings"

	"github.com/avashisht/paperbase/internal/config"
	"github.com/avashisht/paperbase/internal/domain/commonModels"
)

// ContextBundle is the prompt-ready context plus per-document provenance for
// the documents that actually made it into the prompt.
type ContextBundle struct {
	Context   string
	Retrieved []commonModels.RetrievedDocument
}

// BuildContext assembles ranked matches into a bounded prompt context.
// Each document is capped at PerDocumentCap characters and the whole context
// stays under MaxContextChars minus a safety margin. The first document is
// always included, truncated to the remaining budget if necessary, so the
// model never answers from an empty context when matches exist. A trailing
// note records how many of the retrieved documents were shown.
func BuildContext(matches []commonModels.Match) ContextBundle {
	if len(matches) == 0 {
		return ContextBundle{Context: config.NoContextMessage}
	}

	budget := config.MaxContextChars - config.ContextSafetyMargin
	var parts []string
	var retrieved []commonModels.RetrievedDocument
	total := 0

	for i, m := range matches {
		text := m.Text
		if len(text) > config.PerDocumentCap {
			text = text[:config.PerDocumentCap]
		}
		block := formatHeader(i+1, m.Metadata) + "\n" + text

		if total+len(block) > budget {
			if len(parts) == 0 {
				// Nothing fits whole; keep a truncated first document.
				parts = append(parts, block[:budget])
				retrieved = append(retrieved, describeMatch(i+1, m))
			}
			break
		}

		parts = append(parts, block)
		total += len(block) + 2
		retrieved = append(retrieved, describeMatch(i+1, m))
	}

	if len(retrieved) < len(matches) {
		parts = append(parts, fmt.Sprintf("[Showing %d of %d retrieved documents]", len(retrieved), len(matches)))
	}

	return ContextBundle{
		Context:   strings.Join(parts, "\n\n"),
		Retrieved: retrieved,
	}
}

func formatHeader(index int, meta commonModels.ChunkMetadata) string {
	if meta.Section != "" {
		return fmt.Sprintf("[Document %d] (Source: %s, Section: %s)", index, meta.Source, meta.Section)
	}
	return fmt.Sprintf("[Document %d] (Source: %s)", index, meta.Source)
}

func describeMatch(index int, m commonModels.Match) commonModels.RetrievedDocument {
	snippet := m.Text
	if len(snippet) > config.SnippetLength {
		snippet = snippet[:config.SnippetLength]
	}
	return commonModels.RetrievedDocument{
		DocIndex:   index,
		Source:     m.Metadata.Source,
		Section:    m.Metadata.Section,
		ChunkIndex: m.Metadata.ChunkIndex,
		Distance:   m.Distance,
		Similarity: similarity(m.Distance),
		Snippet:    snippet,
	}
}

// similarity converts cosine distance back to a display score in [0, 1].
func similarity(distance float64) float64 {
	s := 1 - distance
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
