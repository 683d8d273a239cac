package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	page := `<html><head><title>Release Notes</title></head><body>
		<nav><p>navigation junk</p></nav>
		<article>
			<h1>Release Notes</h1>
			<p>Version two ships incremental checkpoints.</p>
			<script>console.log("ignore me")</script>
			<p>Upgrade requires a full resync.</p>
		</article>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("Fetcher must send a User-Agent")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	f := &HTTPFetcher{client: srv.Client()}
	got, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if got.Title != "Release Notes" {
		t.Errorf("Title got %q", got.Title)
	}
	if !strings.Contains(got.Text, "incremental checkpoints") || !strings.Contains(got.Text, "full resync") {
		t.Errorf("Article paragraphs missing from text: %q", got.Text)
	}
	// the <article> scope excludes surrounding chrome
	if strings.Contains(got.Text, "navigation junk") {
		t.Error("Text outside <article> must be excluded")
	}
	if strings.Contains(got.Text, "ignore me") {
		t.Error("Script content must be excluded")
	}
}

func TestHTTPFetcher_NoArticleFallsBackToAllParagraphs(t *testing.T) {
	page := `<html><head></head><body>
		<p>Paragraph one.</p>
		<div><p>Paragraph two.</p></div>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	f := &HTTPFetcher{client: srv.Client()}
	got, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(got.Text, "Paragraph one.") || !strings.Contains(got.Text, "Paragraph two.") {
		t.Errorf("Expected all paragraphs, got %q", got.Text)
	}
	// no <title>: host is the fallback
	if got.Title == "" {
		t.Error("Title should fall back to the host")
	}
}

func TestHTTPFetcher_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
	}{
		{"Not_Found", http.StatusNotFound, "text/html"},
		{"Server_Error", http.StatusInternalServerError, "text/html"},
		{"Not_HTML", http.StatusOK, "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			f := &HTTPFetcher{client: srv.Client()}
			if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
