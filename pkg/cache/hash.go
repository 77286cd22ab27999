package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a stage-scoped cache key: the stage name followed by the
// SHA-256 digest of the JSON-encoded parts. Layout keys digest the document
// hash together with the option block; artifact keys digest the layout hash
// with the format name. The full 256-bit digest is kept so distinct
// documents can never share a key.
func hashKey(stage string, parts ...any) string {
	blob, _ := json.Marshal(parts)
	sum := sha256.Sum256(blob)
	return stage + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 digest of data. This is the content hash
// used for documents and layouts throughout the pipeline.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
