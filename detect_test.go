package anonymask

import (
	"reflect"
	"testing"
)

func TestCategories(t *testing.T) {
	want := []string{"email", "phone", "ssn", "credit_card", "ip_address", "url"}
	if got := Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestIsBuiltinCategory(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"email", true},
		{"ip_address", true},
		{"Email", false},
		{"name", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsBuiltinCategory(tt.name); got != tt.want {
			t.Errorf("IsBuiltinCategory(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDetect_Patterns(t *testing.T) {
	tests := []struct {
		category string
		text     string
		want     string
	}{
		{CategoryEmail, "Contact john@email.com.", "john@email.com"},
		{CategoryEmail, "to: a.b+tag@mail.example.org", "a.b+tag@mail.example.org"},
		{CategoryPhone, "call 555-123-4567 now", "555-123-4567"},
		{CategoryPhone, "call (555) 123-4567 now", "(555) 123-4567"},
		{CategoryPhone, "call 555.123.4567 now", "555.123.4567"},
		{CategoryPhone, "call +1 555 123 4567 now", "+1 555 123 4567"},
		{CategoryPhone, "call 555-1234 now", "555-1234"},
		{CategoryPhone, "ext 555-123 now", "555-123"},
		{CategorySSN, "SSN: 123-45-6789", "123-45-6789"},
		{CategorySSN, "SSN: 123456789", "123456789"},
		{CategoryCreditCard, "card 4111-1111-1111-1111", "4111-1111-1111-1111"},
		{CategoryCreditCard, "card 4111 1111 1111 1111", "4111 1111 1111 1111"},
		{CategoryCreditCard, "card 4111111111111111", "4111111111111111"},
		{CategoryIPAddress, "host 192.168.1.100, up", "192.168.1.100"},
		{CategoryIPAddress, "host 2001:db8::1 up", "2001:db8::1"},
		{CategoryIPAddress, "host fe80::1 up", "fe80::1"},
		{CategoryIPAddress, "host 2001:0db8:85a3:0000:0000:8a2e:0370:7334 up", "2001:0db8:85a3:0000:0000:8a2e:0370:7334"},
		{CategoryIPAddress, "mapped ::ffff:192.168.0.1 up", "::ffff:192.168.0.1"},
		{CategoryIPAddress, "compat ::192.168.0.1 up", "::192.168.0.1"},
		{CategoryIPAddress, "nat64 64:ff9b::10.0.0.1 up", "64:ff9b::10.0.0.1"},
		{CategoryIPAddress, "full 0:0:0:0:0:ffff:10.1.2.3 up", "0:0:0:0:0:ffff:10.1.2.3"},
		{CategoryURL, "see https://example.com/path?q=1.", "https://example.com/path?q=1"},
		{CategoryURL, "see http://example.com", "http://example.com"},
		{CategoryURL, "(see https://example.com/x)", "https://example.com/x"},
		{CategoryURL, "see https://en.wikipedia.org/wiki/Go_(language)", "https://en.wikipedia.org/wiki/Go_(language)"},
	}

	for _, tt := range tests {
		t.Run(tt.category+"/"+tt.want, func(t *testing.T) {
			d := newDetector([]string{tt.category})
			got := d.detect(tt.text)
			if len(got) != 1 {
				t.Fatalf("detect(%q) = %v, want one occurrence", tt.text, got)
			}
			o := got[0]
			if o.Value != tt.want {
				t.Errorf("detect(%q) value = %q, want %q", tt.text, o.Value, tt.want)
			}
			if o.Category != tt.category {
				t.Errorf("detect(%q) category = %q, want %q", tt.text, o.Category, tt.category)
			}
			if tt.text[o.Start:o.End] != o.Value {
				t.Errorf("detect(%q) span [%d:%d] does not match value", tt.text, o.Start, o.End)
			}
		})
	}
}

func TestDetect_NoMatch(t *testing.T) {
	tests := []struct {
		category string
		text     string
	}{
		{CategoryEmail, "no at sign here"},
		{CategoryEmail, "user@localhost"},
		{CategoryIPAddress, "version 999.999.999.999"},
		{CategoryIPAddress, "time 10:30"},
		{CategoryIPAddress, "scope a::b::c"},
		{CategoryURL, "ftp://example.com"},
		{CategoryURL, "https:// nothing"},
		{CategorySSN, "order 1234567890"},
	}
	for _, tt := range tests {
		d := newDetector([]string{tt.category})
		if got := d.detect(tt.text); len(got) != 0 {
			t.Errorf("detect(%q) for %s = %v, want none", tt.text, tt.category, got)
		}
	}
}

func TestDetect_OnlyEnabled(t *testing.T) {
	d := newDetector([]string{CategoryEmail})
	got := d.detect("john@email.com 555-123-4567")
	if len(got) != 1 || got[0].Category != CategoryEmail {
		t.Errorf("detect() = %v, want only the email", got)
	}
}

func TestDetect_Empty(t *testing.T) {
	d := newDetector(Categories())
	if got := d.detect(""); len(got) != 0 {
		t.Errorf("detect(\"\") = %v, want none", got)
	}
	if got := newDetector(nil).detect("john@email.com"); len(got) != 0 {
		t.Errorf("detect() with no categories = %v, want none", got)
	}
}

func TestDetect_OrderedByStart(t *testing.T) {
	d := newDetector(Categories())
	text := "SSN 123-45-6789 then john@email.com then 555-123-4567"
	got := d.detect(text)
	if len(got) != 3 {
		t.Fatalf("detect() = %v, want 3 occurrences", got)
	}
	wantCats := []string{CategorySSN, CategoryEmail, CategoryPhone}
	for i, o := range got {
		if o.Category != wantCats[i] {
			t.Errorf("detect()[%d].Category = %q, want %q", i, o.Category, wantCats[i])
		}
		if i > 0 && got[i-1].Start > o.Start {
			t.Errorf("detect() not ordered by start: %v", got)
		}
	}
}

func TestDetect_Repeats(t *testing.T) {
	d := newDetector([]string{CategoryEmail})
	got := d.detect("john@email.com and john@email.com")
	if len(got) != 2 {
		t.Fatalf("detect() = %v, want 2 occurrences", got)
	}
	if got[0].Start == got[1].Start {
		t.Errorf("repeats share a start offset: %v", got)
	}
}
