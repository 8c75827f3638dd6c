package fetcher

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	plerrors "github.com/princespaghetti/plfetch/internal/errors"
)

// Indent is the per-level indentation used for saved snapshots.
const Indent = "    "

// FormatJSON validates a response body and re-indents it.
// Keys keep their original order and number literals are copied as received.
// The result has no trailing newline.
func FormatJSON(body []byte) ([]byte, error) {
	body = bytes.TrimSpace(body)

	if !utf8.Valid(body) {
		return nil, &plerrors.FetchError{Op: "decode payload", Err: plerrors.ErrInvalidUTF8}
	}

	if !json.Valid(body) {
		// Unmarshal again only to surface the parser's position and reason.
		var v any
		err := json.Unmarshal(body, &v)
		if err == nil {
			err = plerrors.ErrInvalidJSON
		} else {
			err = fmt.Errorf("%w: %v", plerrors.ErrInvalidJSON, err)
		}
		return nil, &plerrors.FetchError{Op: "parse payload", Err: err}
	}

	var out bytes.Buffer
	if err := json.Indent(&out, body, "", Indent); err != nil {
		return nil, &plerrors.FetchError{Op: "format payload", Err: err}
	}
	return out.Bytes(), nil
}

// ComputeSHA256 computes the SHA256 hash of data and returns it as a hex string.
func ComputeSHA256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
