// Package json provides a JSON codec for anonymask results, mappings and
// configuration.
package json

import (
	"bytes"
	"encoding/json"

	"github.com/zoobzio/anonymask"
)

// jsonCodec implements anonymask.Codec for JSON.
type jsonCodec struct{}

// New returns a JSON codec. Output is compact and does not HTML-escape, so
// template placeholders such as <NAME_1> survive verbatim.
func New() anonymask.Codec {
	return &jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON without a trailing newline.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
