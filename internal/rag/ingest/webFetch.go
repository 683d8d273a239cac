package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/avashisht/paperbase/internal/config"
	"github.com/avashisht/paperbase/internal/customHttpClient"
	"golang.org/x/net/html"
)

// WebPage is the best-effort result of fetching one web source.
type WebPage struct {
	URL   string
	Title string
	Text  string
}

// Fetcher retrieves a page title and main text for a URL. Injected so
// ingestion tests do not touch the network.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (WebPage, error)
}

type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: customHttpClient.GetClient()}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (WebPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return WebPage{}, fmt.Errorf("building request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", config.WebUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return WebPage{}, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return WebPage{}, fmt.Errorf("fetching %s: unexpected status %d", pageURL, resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "html") {
		return WebPage{}, fmt.Errorf("fetching %s: unsupported content type %q", pageURL, contentType)
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return WebPage{}, fmt.Errorf("parsing %s: %w", pageURL, err)
	}

	title := findTitle(root)
	if title == "" {
		if u, err := url.Parse(pageURL); err == nil {
			title = u.Host
		}
	}

	return WebPage{URL: pageURL, Title: title, Text: mainText(root)}, nil
}

func findTitle(root *html.Node) string {
	if n := findElement(root, "title"); n != nil {
		return strings.TrimSpace(nodeText(n))
	}
	return ""
}

// mainText extracts paragraph text, preferring an <article> subtree when the
// page has one. Paragraphs are joined with blank lines so the normalizer
// keeps them apart.
func mainText(root *html.Node) string {
	scope := root
	if article := findElement(root, "article"); article != nil {
		scope = article
	}

	var paragraphs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "p":
				if text := strings.TrimSpace(nodeText(n)); text != "" {
					paragraphs = append(paragraphs, text)
				}
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(scope)

	return strings.Join(paragraphs, "\n\n")
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, name); found != nil {
			return found
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}
