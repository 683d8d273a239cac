package ingest

import (
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"regexp"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// MakeChunkID derives a short deterministic id for a (sourceKey, ordinal)
// pair. Re-ingesting the same source with the same chunking parameters
// reproduces identical ids, which makes vector store upserts idempotent.
func MakeChunkID(sourceKey string, ordinal int) string {
	base := fmt.Sprintf("%s::%d", sourceKey, ordinal)
	base = whitespaceRuns.ReplaceAllString(base, "_")
	sum := sha1.Sum([]byte(base))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
