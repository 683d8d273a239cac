package ingest

import (
	"regexp"
	"slices"
	"strings"
)

const (
	SectionAbstract     = "abstract"
	SectionIntroduction = "introduction"
	SectionConclusion   = "conclusion"
)

// SectionNames is the fixed ingestion order for extracted sections.
var SectionNames = []string{SectionAbstract, SectionIntroduction, SectionConclusion}

// SectionSet maps each section name to its extracted body. All three keys are
// always present; a body is non-empty only when it cleared the accepting
// strategy's minimum-length gate.
type SectionSet map[string]string

// SectionResult is the outcome of one extraction run.
type SectionResult struct {
	Sections      SectionSet
	SectionsFound []string
	Method        string
}

func emptySections() SectionSet {
	return SectionSet{
		SectionAbstract:     "",
		SectionIntroduction: "",
		SectionConclusion:   "",
	}
}

// sectionRule pairs a section name with its ordered pattern list and
// acceptance bounds. Patterns are data, not logic - tuning the heuristics
// means editing these tables.
type sectionRule struct {
	name     string
	minChars int
	maxChars int // 0 means uncapped
	patterns []*regexp.Regexp
}

// Strategy 1: headings anchored at line start, boundaries consumed. Handles
// Roman or Arabic numbering and kerning-split headings ("C ONCLUSION").
var preciseRules = []sectionRule{
	{
		name:     SectionAbstract,
		minChars: 50,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)(?:^|\n)\s*Abstract\s*[—:\-–]\s*(.*?)\s*(?:Index Terms|Keywords|(?:I\.|1\.?|II\.)\s*Introduction)`),
			regexp.MustCompile(`(?is)(?:^|\n)\s*Abstract\s*\n\s*(.*?)\s*(?:Index Terms|Keywords|Introduction)`),
			regexp.MustCompile(`(?is)(?:^|\n)\s*Abstract\s*[—:\-–]?\s*(.*?)\s*(?:\n\s*\n\s*(?:I\.|1\.?|Introduction))`),
		},
	},
	{
		name:     SectionIntroduction,
		minChars: 100,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)(?:^|\n)\s*(?:I\.|1\.?)\s*Introduction\s*(.*?)\s*(?:(?:II\.|2\.?)\s*[A-Z]|\n\s*\n)`),
			regexp.MustCompile(`(?is)(?:^|\n)\s*Introduction\s*\n\s*(.*?)\s*(?:(?:II\.|2\.)\s*[A-Z]|Background|Method)`),
			regexp.MustCompile(`(?is)(?:^|\n)\s*(?:I\.|1\.?)\s*Introduction\s*(.*?)\s*(?:Related Work|Literature|Background|Methodology|II\.)`),
		},
	},
	{
		name:     SectionConclusion,
		minChars: 50,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)(?:^|\n)\s*(?:IV\.|V\.|VI\.|VII\.|VIII\.|IX\.|X\.|4\.?|5\.?|6\.?|7\.?|8\.?|9\.?|10\.?)\s*C\s*onclusions?\s*(.*?)\s*(?:References|Acknowledge?ment|$)`),
			regexp.MustCompile(`(?is)(?:^|\n)\s*C\s*onclusions?\s*\n\s*(.*?)\s*(?:References|Bibliography|$)`),
			regexp.MustCompile(`(?is)(?:^|\n)\s*(?:IV\.|V\.|VI\.|VII\.|7\.?|8\.?)\s*C\s*onclusions?\s*[—:\-–]?\s*(.*?)\s*(?:References|$)`),
		},
	},
}

// Strategy 2: looser headings with the closing boundary not required to be a
// recognized heading token; captures are hard-capped to stop runaway matches.
var relaxedRules = []sectionRule{
	{
		name:     SectionAbstract,
		minChars: 50,
		maxChars: 2000,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)(?:^|\n)\s*Abstract\s*[—:\-–]?\s*(.*?)\s*\n\s*(?:Index Terms|Keywords|I\.|1\.|Introduction)`),
		},
	},
	{
		name:     SectionIntroduction,
		minChars: 100,
		maxChars: 5000,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)(?:^|\n)\s*(?:I\.|1\.?|)\s*Introduction\s*(.*?)\s*\n\s*(?:II\.|2\.|Related|Background|Method)`),
		},
	},
	{
		name:     SectionConclusion,
		minChars: 50,
		maxChars: 3000,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)(?:^|\n)\s*(?:IV\.|V\.|VI\.|VII\.|VIII\.|IX\.|X\.|4\.?|5\.?|6\.?|7\.?|8\.?|9\.?|10\.?|)\s*C\s*onclusions?\s*[—:\-–]?\s*(.*?)\s*(?:\n\s*(?:References|Acknowledge?ment)|$)`),
		},
	},
}

// Strategy 3: each heading must be the sole content of its line, optionally
// prefixed with a digit and period. Conclusion numbering ranges 4-10.
var numberedRules = []sectionRule{
	{
		name:     SectionAbstract,
		minChars: 50,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)(?:^|\n)\s*Abstract\s*[:\-]?\s*\n\s*(.*?)\s*(?:\n\s*1\s*\.|\n\s*\n)`),
		},
	},
	{
		name:     SectionIntroduction,
		minChars: 100,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)(?:^|\n)\s*1\s*\.?\s*Introduction\s*\n\s*(.*?)\s*\n\s*2\s*\.`),
		},
	},
	{
		name:     SectionConclusion,
		minChars: 50,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)(?:^|\n)\s*(?:[4-9]|10)\s*\.?\s*C\s*onclusions?\s*\n\s*(.*?)\s*(?:\n\s*(?:References|Acknowledge?ment)|$)`),
		},
	},
}

// Strategy 4 header line: section name standalone on its line with optional
// numbering. A references line terminates scanning entirely.
var headerLine = regexp.MustCompile(`^(?:\d+\s*\.?\s*)?(abstract|introduction|conclusion|conclusions|references)$`)

const lineSectionMinChars = 50

type strategy struct {
	name      string
	threshold int
	extract   func(normalized, raw string) (SectionSet, []string)
}

var strategies = []strategy{
	{"precise_patterns", 2, func(n, _ string) (SectionSet, []string) { return applyRules(n, preciseRules) }},
	{"relaxed_patterns", 2, func(n, _ string) (SectionSet, []string) { return applyRules(n, relaxedRules) }},
	{"numbered_patterns", 2, func(n, _ string) (SectionSet, []string) { return applyRules(n, numberedRules) }},
	{"line_detection", 1, func(_, r string) (SectionSet, []string) { return extractByLines(r) }},
}

// ExtractSections isolates abstract/introduction/conclusion bodies from
// linearized document text. Strategies run in fixed priority order and the
// first one whose found-count meets its threshold wins; the threshold keeps a
// low-confidence strategy from claiming text belonging to unrelated sections.
// Extraction is a pure function of its input.
func ExtractSections(fullText string) SectionResult {
	normalized := flattenSpaces(Normalize(fullText))

	for _, s := range strategies {
		sections, found := s.extract(normalized, fullText)
		if len(found) >= s.threshold {
			return SectionResult{Sections: sections, SectionsFound: found, Method: s.name}
		}
	}
	return SectionResult{Sections: emptySections(), SectionsFound: nil, Method: "failed"}
}

func applyRules(text string, rules []sectionRule) (SectionSet, []string) {
	sections := emptySections()
	var found []string

	for _, rule := range rules {
		for _, re := range rule.patterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			body := strings.TrimSpace(m[1])
			if len(body) <= rule.minChars {
				// Too short to be the real section; a later pattern may
				// still capture it properly.
				continue
			}
			if rule.maxChars > 0 && len(body) > rule.maxChars {
				body = body[:rule.maxChars]
			}
			sections[rule.name] = body
			found = append(found, rule.name)
			break
		}
	}
	return sections, found
}

// extractByLines scans the raw newline-preserving text line by line,
// accumulating content under the most recent standalone header line.
func extractByLines(raw string) (SectionSet, []string) {
	sections := emptySections()
	var found []string
	current := ""
	var buf []string

	flush := func() {
		if current == "" || len(buf) == 0 {
			return
		}
		content := strings.TrimSpace(strings.Join(buf, "\n"))
		if len(content) > lineSectionMinChars {
			sections[current] = content
			if !slices.Contains(found, current) {
				found = append(found, current)
			}
		}
	}

scan:
	for _, line := range strings.Split(raw, "\n") {
		m := headerLine.FindStringSubmatch(strings.ToLower(strings.TrimSpace(line)))
		if m == nil {
			if current != "" {
				buf = append(buf, line)
			}
			continue
		}

		flush()
		switch m[1] {
		case SectionAbstract, SectionIntroduction:
			current, buf = m[1], nil
		case "conclusion", "conclusions":
			current, buf = SectionConclusion, nil
		case "references":
			current = ""
			break scan
		}
	}
	flush()

	return sections, found
}
