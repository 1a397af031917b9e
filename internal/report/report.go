// Package report renders the country summary as a JSON document.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

// Indent is the per-level indentation of the rendered document.
const Indent = "    "

// Encode renders counts as a pretty-printed JSON array of
// {"country": ..., "count": ...} objects, in the order given, followed by a
// newline. An empty or nil slice renders as [].
func Encode(counts []codetest.CountryCount) ([]byte, error) {
	if counts == nil {
		counts = []codetest.CountryCount{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(counts); err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a document produced by Encode.
func Decode(data []byte) ([]codetest.CountryCount, error) {
	var counts []codetest.CountryCount
	if err := json.Unmarshal(data, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	return counts, nil
}
