// Package bson provides a BSON codec for anonymask results, mappings and
// configuration, for callers that keep them in MongoDB.
package bson

import (
	"github.com/zoobzio/anonymask"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements anonymask.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec. Only documents (structs and string-keyed maps)
// can be encoded at the top level.
func New() anonymask.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as a BSON document.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes a BSON document into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
