// Package testing provides test utilities for anonymask.
package testing

import (
	"testing"

	"github.com/zoobzio/anonymask"
)

// SampleText contains one instance of every built-in category.
const SampleText = "Mail john@example.com or call 555-123-4567. SSN 123-45-6789, " +
	"card 4111-1111-1111-1111, host 192.168.1.100, docs https://example.com/a."

// TestKey returns a valid 32-byte key for AES-256 and XChaCha20.
func TestKey(tb testing.TB) []byte {
	tb.Helper()
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestEncryptor returns an AES encryptor configured for testing.
func TestEncryptor(tb testing.TB) anonymask.Encryptor {
	tb.Helper()
	enc, err := anonymask.AES(TestKey(tb))
	if err != nil {
		tb.Fatalf("AES() error: %v", err)
	}
	return enc
}

// TestAnonymizer returns an anonymizer with every built-in category enabled.
func TestAnonymizer(tb testing.TB, opts ...anonymask.Option) *anonymask.Anonymizer {
	tb.Helper()
	a, err := anonymask.New(anonymask.Categories(), opts...)
	if err != nil {
		tb.Fatalf("New() error: %v", err)
	}
	return a
}

// Contact is a nested test type.
type Contact struct {
	Name  string `json:"name" yaml:"name" anonymize:"name"`
	Notes string `json:"notes" yaml:"notes" anonymize:"scan"`
}

// Ticket is a test type exercising every supported field shape.
type Ticket struct {
	ID       string            `json:"id" yaml:"id"`
	Owner    string            `json:"owner" yaml:"owner" anonymize:"name"`
	Company  string            `json:"company" yaml:"company" anonymize:"company"`
	Body     string            `json:"body" yaml:"body" anonymize:"scan"`
	Raw      []byte            `json:"raw" yaml:"raw" anonymize:"scan"`
	Comments []string          `json:"comments" yaml:"comments" anonymize:"scan"`
	Headers  map[string]string `json:"headers" yaml:"headers" anonymize:"scan"`
	Contact  *Contact          `json:"contact" yaml:"contact"`
}

// Clone implements Cloner[Ticket].
func (t Ticket) Clone() Ticket {
	clone := t
	if t.Raw != nil {
		clone.Raw = append([]byte(nil), t.Raw...)
	}
	if t.Comments != nil {
		clone.Comments = append([]string(nil), t.Comments...)
	}
	if t.Headers != nil {
		clone.Headers = make(map[string]string, len(t.Headers))
		for k, v := range t.Headers {
			clone.Headers[k] = v
		}
	}
	if t.Contact != nil {
		c := *t.Contact
		clone.Contact = &c
	}
	return clone
}

// SampleTicket returns a populated Ticket.
func SampleTicket() Ticket {
	return Ticket{
		ID:       "T-1",
		Owner:    "Jane Roe",
		Company:  "Acme Corp",
		Body:     "Jane Roe of Acme Corp wrote from jane@acme.com",
		Raw:      []byte("callback 555-987-6543"),
		Comments: []string{"ask Jane Roe", "no PII here"},
		Headers:  map[string]string{"from": "jane@acme.com", "via": "10.0.0.7"},
		Contact:  &Contact{Name: "Rick Deckard", Notes: "Rick Deckard: rick@tyrell.com"},
	}
}
