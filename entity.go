package anonymask

import (
	"encoding/xml"
	"fmt"
	"sort"
)

// Occurrence is a located PII instance. Start and End are half-open byte
// offsets into the original text and Value equals text[Start:End].
//
// String and GoString render only the category and span, so an occurrence
// that ends up in a log line or error message does not disclose its value.
type Occurrence struct {
	Category string `json:"entity_type" yaml:"entity_type" xml:"entity_type,attr" msgpack:"entity_type" bson:"entity_type"`
	Value    string `json:"value" yaml:"value" xml:"value" msgpack:"value" bson:"value"`
	Start    int    `json:"start" yaml:"start" xml:"start,attr" msgpack:"start" bson:"start"`
	End      int    `json:"end" yaml:"end" xml:"end,attr" msgpack:"end" bson:"end"`
}

// Len returns the span length in bytes.
func (o Occurrence) Len() int {
	return o.End - o.Start
}

// Overlaps reports whether the two spans share at least one byte.
func (o Occurrence) Overlaps(other Occurrence) bool {
	return o.Start < other.End && other.Start < o.End
}

// Masked returns a category-aware partial mask of the value for display.
func (o Occurrence) Masked() string {
	return MaskerFor(o.Category).Mask(o.Value)
}

func (o Occurrence) String() string {
	return fmt.Sprintf("%s[%d:%d]", o.Category, o.Start, o.End)
}

// GoString keeps %#v from printing the value.
func (o Occurrence) GoString() string {
	return "anonymask.Occurrence{" + o.String() + "}"
}

// Mapping is the placeholder → original value table needed to reverse
// an anonymization.
type Mapping map[string]string

// Keys returns the placeholders in sorted order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy of the mapping.
func (m Mapping) Clone() Mapping {
	if m == nil {
		return nil
	}
	clone := make(Mapping, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

// xmlMappingEntry is one placeholder in the XML form of a Mapping.
type xmlMappingEntry struct {
	Placeholder string `xml:"placeholder,attr"`
	Value       string `xml:",chardata"`
}

type xmlMapping struct {
	Entries []xmlMappingEntry `xml:"entry"`
}

// MarshalXML encodes the mapping as a list of entry elements, sorted by placeholder.
func (m Mapping) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	doc := xmlMapping{Entries: make([]xmlMappingEntry, 0, len(m))}
	for _, k := range m.Keys() {
		doc.Entries = append(doc.Entries, xmlMappingEntry{Placeholder: k, Value: m[k]})
	}
	return e.EncodeElement(doc, start)
}

// UnmarshalXML decodes the entry list produced by MarshalXML.
func (m *Mapping) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var doc xmlMapping
	if err := d.DecodeElement(&doc, &start); err != nil {
		return err
	}
	out := make(Mapping, len(doc.Entries))
	for _, entry := range doc.Entries {
		out[entry.Placeholder] = entry.Value
	}
	*m = out
	return nil
}

// Result is the envelope returned by an anonymization call.
// Entities are ordered by Start; repeated values appear once per occurrence
// while Mapping holds one entry per distinct value.
type Result struct {
	XMLName        xml.Name     `json:"-" yaml:"-" xml:"result" msgpack:"-" bson:"-"`
	AnonymizedText string       `json:"anonymized_text" yaml:"anonymized_text" xml:"anonymized_text" msgpack:"anonymized_text" bson:"anonymized_text"`
	Mapping        Mapping      `json:"mapping" yaml:"mapping" xml:"mapping" msgpack:"mapping" bson:"mapping"`
	Entities       []Occurrence `json:"entities" yaml:"entities" xml:"entities>entity" msgpack:"entities" bson:"entities"`
}

// emptyResult returns a result for text with no occurrences.
func emptyResult(text string) *Result {
	return &Result{
		AnonymizedText: text,
		Mapping:        Mapping{},
		Entities:       []Occurrence{},
	}
}

// Clone returns a deep copy of the result.
func (r Result) Clone() Result {
	clone := Result{
		AnonymizedText: r.AnonymizedText,
		Mapping:        r.Mapping.Clone(),
	}
	if r.Entities != nil {
		clone.Entities = make([]Occurrence, len(r.Entities))
		copy(clone.Entities, r.Entities)
	}
	return clone
}
