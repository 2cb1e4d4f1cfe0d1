package util

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/cloudflare/cfssl/log"
)

// CalculateHash computes the sha256 digest of msg.
func CalculateHash(msg []byte) ([]byte, error) {
	h := sha256.New()
	if _, err := h.Write(msg); err != nil {
		log.Info(err)
		return nil, err
	}
	return h.Sum(nil), nil
}

// HashHex computes the lowercase hex sha256 digest of msg.
func HashHex(msg []byte) string {
	sum := sha256.Sum256(msg)
	return hex.EncodeToString(sum[:])
}

// CanonicalJSON encodes v deterministically: object keys sorted at every
// nesting level, numbers kept verbatim, no HTML escaping. Sealed-block hashes
// are recomputed from this encoding, so it must be stable across runs.
func CanonicalJSON(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	// Round-trip through interface{} so every object becomes a map, which
	// encoding/json writes with sorted keys.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var decoded interface{}
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(decoded); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}
