package anonymask

import (
	"errors"
	"regexp"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		format   string
		wantKind formatKind
		wantErr  bool
	}{
		{"", formatStandard, false},
		{"standard", formatStandard, false},
		{"short", formatShort, false},
		{"[{type}_{counter}]", formatTemplate, false},
		{"<{uuid}>", formatTemplate, false},
		{"{type}-{uuid}", formatTemplate, false},
		{"{{type}:{counter}}", formatTemplate, false},
		{"{type}", 0, true},
		{"{counter}", 0, true},
		{"plain", 0, true},
		{"{type}_{count}", 0, true},
		{"{name}{uuid}", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := parseFormat(tt.format)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Errorf("parseFormat(%q) error = %v, want ErrInvalidFormat", tt.format, err)
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("parseFormat(%q) error should satisfy ErrInvalidConfig", tt.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFormat(%q) error = %v", tt.format, err)
			}
			if got.kind != tt.wantKind {
				t.Errorf("parseFormat(%q).kind = %v, want %v", tt.format, got.kind, tt.wantKind)
			}
		})
	}
}

func TestDisplayPrefix(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"email", "EMAIL"},
		{"credit_card", "CREDIT_CARD"},
		{"home address", "HOME_ADDRESS"},
		{"a--b", "A_B"},
		{"naïve", "NAÏVE"},
		{"", "ENTITY"},
	}
	for _, tt := range tests {
		if got := displayPrefix(tt.category); got != tt.want {
			t.Errorf("displayPrefix(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func mustFormat(t *testing.T, format string) placeholderFormat {
	t.Helper()
	f, err := parseFormat(format)
	if err != nil {
		t.Fatalf("parseFormat(%q) error = %v", format, err)
	}
	return f
}

func TestSynthesizer_Standard(t *testing.T) {
	syn := newSynthesizer(mustFormat(t, FormatStandard), true, "text")
	p, err := syn.placeholder(Occurrence{Category: "email", Value: "a@b.co"})
	if err != nil {
		t.Fatalf("placeholder() error = %v", err)
	}
	if !regexp.MustCompile(`^EMAIL_[0-9a-f]{32}$`).MatchString(p) {
		t.Errorf("placeholder() = %q, want EMAIL_<32 hex>", p)
	}
}

func TestSynthesizer_Short(t *testing.T) {
	syn := newSynthesizer(mustFormat(t, FormatShort), true, "text")
	seq := []struct {
		category, value, want string
	}{
		{"email", "a@b.co", "EMAIL_1"},
		{"phone", "555-1234", "PHONE_1"},
		{"email", "c@d.co", "EMAIL_2"},
		{"email", "a@b.co", "EMAIL_1"},
		{"name", "a@b.co", "NAME_1"},
	}
	for _, s := range seq {
		got, err := syn.placeholder(Occurrence{Category: s.category, Value: s.value})
		if err != nil {
			t.Fatalf("placeholder() error = %v", err)
		}
		if got != s.want {
			t.Errorf("placeholder(%s, %q) = %q, want %q", s.category, s.value, got, s.want)
		}
	}
	if len(syn.mapping) != 4 {
		t.Errorf("len(mapping) = %d, want 4", len(syn.mapping))
	}
}

func TestSynthesizer_Template(t *testing.T) {
	tests := []struct {
		format string
		want   *regexp.Regexp
	}{
		{"[{type}:{counter}]", regexp.MustCompile(`^\[NAME:1\]$`)},
		{"<<{uuid}>>", regexp.MustCompile(`^<<[0-9a-f]{32}>>$`)},
		{"{type}-{uuid}-{uuid}", regexp.MustCompile(`^NAME-([0-9a-f]{32})-([0-9a-f]{32})$`)},
	}
	for _, tt := range tests {
		syn := newSynthesizer(mustFormat(t, tt.format), true, "text")
		got, err := syn.placeholder(Occurrence{Category: "name", Value: "John"})
		if err != nil {
			t.Fatalf("placeholder() error = %v", err)
		}
		m := tt.want.FindStringSubmatch(got)
		if m == nil {
			t.Errorf("format %q: placeholder() = %q, want match of %s", tt.format, got, tt.want)
			continue
		}
		if len(m) == 3 && m[1] != m[2] {
			t.Errorf("format %q: {uuid} tokens differ within one placeholder: %q", tt.format, got)
		}
	}
}

func TestSynthesizer_CaseInsensitiveReuse(t *testing.T) {
	syn := newSynthesizer(mustFormat(t, FormatShort), false, "text")
	first, _ := syn.placeholder(Occurrence{Category: "name", Value: "John"})
	second, _ := syn.placeholder(Occurrence{Category: "name", Value: "JOHN"})
	if first != second {
		t.Errorf("case-insensitive reuse: %q != %q", first, second)
	}
	if syn.mapping[first] != "John" {
		t.Errorf("mapping[%q] = %q, want first-seen spelling %q", first, syn.mapping[first], "John")
	}

	sensitive := newSynthesizer(mustFormat(t, FormatShort), true, "text")
	a, _ := sensitive.placeholder(Occurrence{Category: "name", Value: "John"})
	b, _ := sensitive.placeholder(Occurrence{Category: "name", Value: "JOHN"})
	if a == b {
		t.Errorf("case-sensitive mode reused %q for different spellings", a)
	}
}

func TestSynthesizer_SkipsPlaceholdersInSource(t *testing.T) {
	source := "EMAIL_1 and EMAIL_2 are literal"
	syn := newSynthesizer(mustFormat(t, FormatShort), true, source)
	got, err := syn.placeholder(Occurrence{Category: "email", Value: "a@b.co"})
	if err != nil {
		t.Fatalf("placeholder() error = %v", err)
	}
	if got != "EMAIL_3" {
		t.Errorf("placeholder() = %q, want EMAIL_3", got)
	}
}

func TestSynthesizer_SkipsCrossCategoryCollision(t *testing.T) {
	syn := newSynthesizer(mustFormat(t, "{type}{counter}"), true, "x")
	var first string
	for i := 0; i < 11; i++ {
		p, err := syn.placeholder(Occurrence{Category: "a", Value: string(rune('a' + i))})
		if err != nil {
			t.Fatalf("placeholder() error = %v", err)
		}
		if i == 10 {
			first = p
		}
	}
	if first != "A11" {
		t.Fatalf("11th placeholder = %q, want A11", first)
	}
	p, err := syn.placeholder(Occurrence{Category: "a1", Value: "v"})
	if err != nil {
		t.Fatalf("placeholder() error = %v", err)
	}
	if p == "A11" {
		t.Errorf("placeholder() reused %q across categories", p)
	}
	if p != "A12" {
		t.Errorf("placeholder() = %q, want A12", p)
	}
}
