package anonymask

import (
	"net/netip"
	"regexp"
	"sort"
	"strings"
)

// Built-in categories, listed in scan priority order.
const (
	CategoryEmail      = "email"
	CategoryPhone      = "phone"
	CategorySSN        = "ssn"
	CategoryCreditCard = "credit_card"
	CategoryIPAddress  = "ip_address"
	CategoryURL        = "url"
)

// pattern pairs a compiled regex with its category. refine may adjust or
// reject a raw match; it returns the final span and whether to keep it.
type pattern struct {
	category string
	re       *regexp.Regexp
	refine   func(text string, start, end int) (int, int, bool)
}

// ipv4Octets matches a dotted quad with each octet in 0-255.
const ipv4Octets = `(?:(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)\.){3}(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)`

// builtinPatterns holds one pattern per built-in category in priority order.
// Compiled once; regexp.Regexp is safe for concurrent use.
var builtinPatterns = []pattern{
	{
		category: CategoryEmail,
		re:       regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
	},
	{
		// 555-123-4567, (555) 123-4567, 555.123.4567, +1 555 123 4567, 555-1234, 555-123
		category: CategoryPhone,
		re: regexp.MustCompile(`(?:\+1[-.\s]?|\b1[-.\s])?(?:\(\d{3}\)\s?|\b\d{3}[-.\s]?)\d{3}[-.\s]?\d{4}\b` +
			`|\b\d{3}[-.]\d{3,4}\b`),
	},
	{
		category: CategorySSN,
		re:       regexp.MustCompile(`\b\d{3}-?\d{2}-?\d{4}\b`),
	},
	{
		category: CategoryCreditCard,
		re:       regexp.MustCompile(`\b(?:\d{4}[- ]?){3}\d{4}\b`),
	},
	{
		category: CategoryIPAddress,
		re: regexp.MustCompile(`\b` + ipv4Octets + `\b` +
			// IPv4-mapped and IPv4-compatible forms: ::ffff:192.168.0.1, 64:ff9b::10.0.0.1
			`|(?:[0-9A-Fa-f]{1,4}:){6}` + ipv4Octets + `\b` +
			`|(?:[0-9A-Fa-f]{1,4}:){0,5}[0-9A-Fa-f]{0,4}::(?:[0-9A-Fa-f]{1,4}:){0,5}` + ipv4Octets + `\b` +
			`|(?:[0-9A-Fa-f]{1,4}:){7}[0-9A-Fa-f]{1,4}` +
			`|(?:[0-9A-Fa-f]{1,4}:){0,6}[0-9A-Fa-f]{0,4}::(?:[0-9A-Fa-f]{1,4}:){0,6}[0-9A-Fa-f]{0,4}`),
		refine: refineIP,
	},
	{
		category: CategoryURL,
		re:       regexp.MustCompile(`\bhttps?://(?:[A-Za-z0-9\-._~:/?#\[\]@!$&'()*+,;=]|%[0-9A-Fa-f]{2})+`),
		refine:   refineURL,
	},
}

// builtinIndex maps a category name to its position in builtinPatterns.
var builtinIndex = func() map[string]int {
	idx := make(map[string]int, len(builtinPatterns))
	for i, p := range builtinPatterns {
		idx[p.category] = i
	}
	return idx
}()

// Categories returns the built-in category names in scan priority order.
func Categories() []string {
	out := make([]string, len(builtinPatterns))
	for i, p := range builtinPatterns {
		out[i] = p.category
	}
	return out
}

// IsBuiltinCategory reports whether name is a built-in category.
func IsBuiltinCategory(name string) bool {
	_, ok := builtinIndex[name]
	return ok
}

// detector applies the enabled built-in patterns.
type detector struct {
	patterns []pattern
}

// newDetector returns a detector for the given categories, which must
// already be normalized and validated.
func newDetector(categories []string) detector {
	enabled := make(map[string]bool, len(categories))
	for _, c := range categories {
		enabled[c] = true
	}
	d := detector{}
	for _, p := range builtinPatterns {
		if enabled[p.category] {
			d.patterns = append(d.patterns, p)
		}
	}
	return d
}

// detect returns the occurrences of every enabled category ordered by start.
// Matches never overlap within one category; equal starts keep priority order.
func (d detector) detect(text string) []Occurrence {
	var out []Occurrence
	for _, p := range d.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			if p.refine != nil {
				var ok bool
				if start, end, ok = p.refine(text, start, end); !ok {
					continue
				}
			}
			if end <= start {
				continue
			}
			out = append(out, Occurrence{
				Category: p.category,
				Value:    text[start:end],
				Start:    start,
				End:      end,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// refineIP validates IPv6 candidates, including those ending in a dotted
// quad; plain IPv4 is fully validated by the regex.
func refineIP(text string, start, end int) (int, int, bool) {
	candidate := text[start:end]
	if !strings.Contains(candidate, ":") {
		return start, end, true
	}
	if !strings.ContainsAny(candidate, "0123456789abcdefABCDEF") {
		return 0, 0, false
	}
	if start > 0 && isAddrByte(text[start-1]) {
		return 0, 0, false
	}
	if end < len(text) && isAddrByte(text[end]) {
		return 0, 0, false
	}
	addr, err := netip.ParseAddr(candidate)
	if err != nil || !addr.Is6() {
		return 0, 0, false
	}
	return start, end, true
}

// isAddrByte reports bytes that may not border an IPv6 literal.
func isAddrByte(b byte) bool {
	return b == ':' || b == '.' || b == '_' ||
		(b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// refineURL drops trailing sentence punctuation and unbalanced closing brackets.
func refineURL(text string, start, end int) (int, int, bool) {
	for end > start {
		last := text[end-1]
		switch last {
		case '.', ',', ';', ':', '!', '?', '\'':
			end--
			continue
		case ')':
			if strings.Count(text[start:end], "(") < strings.Count(text[start:end], ")") {
				end--
				continue
			}
		case ']':
			if strings.Count(text[start:end], "[") < strings.Count(text[start:end], "]") {
				end--
				continue
			}
		}
		break
	}
	value := text[start:end]
	scheme := strings.Index(value, "://") + len("://")
	if len(value) <= scheme {
		return 0, 0, false
	}
	return start, end, true
}
