package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashTable computes a content hash of a table's logical rows.
// Rows are length-prefixed so that ["ab"] and ["a", "b"] hash differently,
// and the header is marked so a header row never collides with a body row.
func HashTable(header []string, body [][]string) string {
	h := sha256.New()
	writeRow := func(tag byte, row []string) {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(row)))
		h.Write([]byte{tag})
		h.Write(n[:])
		for _, cell := range row {
			binary.BigEndian.PutUint64(n[:], uint64(len(cell)))
			h.Write(n[:])
			h.Write([]byte(cell))
		}
	}
	if header != nil {
		writeRow('h', header)
	}
	for _, row := range body {
		writeRow('r', row)
	}
	return hex.EncodeToString(h.Sum(nil))
}
