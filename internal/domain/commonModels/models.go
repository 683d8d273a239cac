package commonModels

import "time"

type Document struct {
	Id                  string    `json:"source_id"`
	Title               string    `json:"title"`
	Text                string    `json:"text"`
	Pages               int       `json:"pages"`
	ContentType         DocType   `json:"content_type"`
	LastIngestTimestamp time.Time `json:"ingested_at"`
}

// ChunkRecord is the unit persisted to the vector store: one bounded,
// sentence-aligned span of text plus its deterministic id and metadata.
type ChunkRecord struct {
	ChunkId  string        `json:"chunk_id"`
	Text     string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ChunkMetadata is the payload schema stored per chunk. Section is set for
// paper sections; SourceType is set for web and plain-document sources.
type ChunkMetadata struct {
	Source     string `json:"source"`
	Title      string `json:"title"`
	Section    string `json:"section,omitempty"`
	SourceType string `json:"source_type,omitempty"`
	ChunkIndex int    `json:"chunk_index"`
}

// Match is one ranked vector search hit. Distance follows the cosine-distance
// convention: 0 identical, larger further apart.
type Match struct {
	Text     string
	Metadata ChunkMetadata
	Distance float64
}

// RetrievedDocument carries per-hit provenance for display alongside an answer.
type RetrievedDocument struct {
	DocIndex   int     `json:"doc_index"`
	Source     string  `json:"source"`
	Section    string  `json:"section,omitempty"`
	ChunkIndex int     `json:"chunk_index"`
	Distance   float64 `json:"distance"`
	Similarity float64 `json:"similarity"`
	Snippet    string  `json:"snippet"`
}

type DocType string

var (
	PDF  DocType = "PDF"
	DOCX DocType = "DOCX"
	WEB  DocType = "WEB"
	ERR  DocType = "ERROR"
)
