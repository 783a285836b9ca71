// Package anonymask replaces personally identifiable information in text
// with opaque placeholders and restores the original text afterwards.
//
// Text is masked before it is handed to an untrusted consumer, such as a
// hosted language model, and the consumer's reply is restored with the
// mapping returned by the masking call.
//
// # Pipeline
//
// Each call runs four stages:
//
//   - Built-in detection: lexical patterns for email, phone, ssn,
//     credit_card, ip_address and url, scanned in that priority order.
//   - Custom matching: exact matches of caller-supplied values, optionally
//     case-insensitive and word-boundary constrained.
//   - Span resolution: overlapping occurrences collapse to one. The earlier
//     start wins, then the longer span, then built-in over custom.
//   - Substitution: each distinct (category, value) pair gets one
//     placeholder for the whole call.
//
// # Basic Usage
//
//	a, _ := anonymask.New([]string{"email", "phone"})
//
//	res, _ := a.AnonymizeWithCustom(ctx,
//	    "John Doe <john@example.com> called from 555-123-4567",
//	    map[string][]string{"name": {"John Doe"}},
//	)
//	// res.AnonymizedText: "NAME_… <EMAIL_…> called from PHONE_…"
//
//	reply := callModel(res.AnonymizedText)
//	restored := a.Deanonymize(ctx, reply, res.Mapping)
//
// # Placeholder Formats
//
//   - standard: EMAIL_3f2a… (32 random hex characters)
//   - short: EMAIL_1, EMAIL_2, … numbered per category in first-seen order
//   - template: any string using {type}, {counter} and {uuid}, for example
//     "<{type}:{counter}>". A template must contain {uuid}, or both {type}
//     and {counter}.
//
// Placeholders never occur in the input text, so restoring is exact.
//
// # Concurrency
//
// An Anonymizer is immutable and safe for concurrent use. Mappings, counters
// and placeholder caches live for one call only.
//
// # Structs
//
// Fields processes tagged struct fields with one shared mapping:
//
//	type Ticket struct {
//	    Owner string `anonymize:"name"`
//	    Body  string `anonymize:"scan"`
//	}
//
//	fields, _ := anonymask.NewFields[Ticket](a)
//	masked, mapping, _ := fields.Anonymize(ctx, &ticket, nil)
//
// # Sealing Mappings
//
// SealMapping encodes a mapping with any Codec and encrypts it with AES or
// XChaCha20, for callers that must keep a mapping across a process
// boundary. DeriveKey turns a passphrase into a key.
//
// # Codec Providers
//
// The following codec implementations are available as sub-packages:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//
// # Observability
//
// Operations emit capitan signals carrying categories, counts, sizes and
// durations. Events and errors never include original values.
package anonymask
