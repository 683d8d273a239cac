package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/avashisht/paperbase/internal/config"
	"github.com/avashisht/paperbase/internal/domain/commonModels"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

var (
	beforeAbstract = regexp.MustCompile(`(?is)(.*?)\s*Abstract`)
)

func getDocType(docPath string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".txt", ".rtf", ".odt":
		return commonModels.DOCX
	default:
		return commonModels.ERR
	}
}

// ExtractDocument runs the raw text extractor for the file type and returns
// an immutable Document with full linear text, page count and a best-effort
// title. Extraction failure is the caller's ExtractionFailure case.
func ExtractDocument(path string, displayName string) (commonModels.Document, error) {
	docType := getDocType(path)
	if docType == commonModels.ERR {
		return commonModels.Document{}, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}

	var text string
	var pages int
	var err error

	switch docType {
	case commonModels.PDF:
		text, pages, err = extractPDF(path)
	default:
		text, err = cat.File(path)
		pages = 1
	}
	if err != nil {
		return commonModels.Document{}, err
	}

	title := displayName
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if docType == commonModels.PDF {
		if detected := detectPaperTitle(text); detected != "" {
			title = detected
		}
	}

	return commonModels.Document{
		Id:                  path,
		Title:               title,
		Text:                text,
		Pages:               pages,
		ContentType:         docType,
		LastIngestTimestamp: time.Now(),
	}, nil
}

func extractPDF(path string) (string, int, error) {
	logger.Debug("extractPDF", "attempting extraction", path)
	f, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	numPages := f.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// Log and continue with the remaining pages
			logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String(), numPages, nil
}

// protectExtract guards against the pdf library hanging on malformed
// content streams.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PageExtractTimeout):
		return "", errors.New("page extraction timeout")
	}
}

// detectPaperTitle guesses the paper title from the text preceding the first
// Abstract heading. Titles sit in the first few hundred characters; the first
// sentence-ish piece of reasonable length usually is it.
func detectPaperTitle(text string) string {
	header := text
	if len(header) > 1000 {
		header = header[:1000]
	}

	m := beforeAbstract.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	candidate := whitespaceRuns.ReplaceAllString(strings.TrimSpace(m[1]), " ")
	first, _, _ := strings.Cut(candidate, ".")
	first = strings.TrimSpace(first)
	if len(first) > 10 {
		return first
	}
	return ""
}
