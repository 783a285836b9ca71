// Package xml provides an XML codec for anonymask results, mappings and
// configuration.
package xml

import (
	"encoding/xml"

	"github.com/zoobzio/anonymask"
)

// xmlCodec implements anonymask.Codec for XML.
type xmlCodec struct{}

// New returns an XML codec. A Mapping encodes as a list of
// <entry placeholder="...">value</entry> elements.
func New() anonymask.Codec {
	return &xmlCodec{}
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as an XML document with a standard header.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return body, nil
	}
	return append([]byte(xml.Header), body...), nil
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
