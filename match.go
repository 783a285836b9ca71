package anonymask

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// matcher finds exact occurrences of caller-supplied values.
type matcher struct {
	caseSensitive bool
	wordBoundary  bool
}

// match returns every occurrence of every value in custom, ordered by start.
// Categories are visited in sorted name order and values in caller order, so
// equal spans resolve the same way on every call. Occurrences of one value
// may overlap each other; the span resolver settles that.
func (m matcher) match(text string, custom map[string][]string) []Occurrence {
	if len(custom) == 0 || text == "" {
		return nil
	}

	categories := make([]string, 0, len(custom))
	for c := range custom {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var out []Occurrence
	for _, category := range categories {
		for _, value := range custom[category] {
			if value == "" {
				continue
			}
			out = m.appendMatches(out, text, category, value)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// appendMatches appends all accepted matches of value in text.
func (m matcher) appendMatches(out []Occurrence, text, category, value string) []Occurrence {
	for i := 0; i < len(text); {
		start, end, ok := m.find(text, value, i)
		if !ok {
			break
		}
		if !m.wordBoundary || onWordBoundary(text, start, end) {
			out = append(out, Occurrence{
				Category: category,
				Value:    text[start:end],
				Start:    start,
				End:      end,
			})
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		i = start + size
	}
	return out
}

// find locates the next match of value at or after byte offset from.
func (m matcher) find(text, value string, from int) (int, int, bool) {
	if m.caseSensitive {
		idx := strings.Index(text[from:], value)
		if idx < 0 {
			return 0, 0, false
		}
		start := from + idx
		return start, start + len(value), true
	}

	for i := from; i < len(text); {
		if n, ok := foldPrefix(text[i:], value); ok {
			return i, i + n, true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return 0, 0, false
}

// foldPrefix reports whether s starts with value under Unicode simple case
// folding, and how many bytes of s the match consumed. The consumed length
// can differ from len(value) when folded runes have different widths.
func foldPrefix(s, value string) (int, bool) {
	n := 0
	for _, want := range value {
		if n >= len(s) {
			return 0, false
		}
		got, size := utf8.DecodeRuneInString(s[n:])
		if !equalFold(got, want) {
			return 0, false
		}
		n += size
	}
	return n, true
}

// equalFold reports whether two runes are equal under simple case folding.
func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// onWordBoundary reports whether text[start:end] is not flanked by a letter or digit.
func onWordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isAlnum(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isAlnum(r) {
			return false
		}
	}
	return true
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
