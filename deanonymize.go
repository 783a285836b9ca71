package anonymask

import (
	"sort"
	"strings"
)

// Deanonymize replaces every mapping key found in text with its original
// value in a single left-to-right pass. Where keys overlap, the longest one
// wins, so a placeholder that prefixes another never corrupts it.
// Placeholders missing from mapping are left verbatim; restored values are
// never rescanned.
func Deanonymize(text string, mapping Mapping) string {
	if text == "" || len(mapping) == 0 {
		return text
	}
	r := newRestorer(mapping)
	if r == nil {
		return text
	}
	return r.Replace(text)
}

// newRestorer builds a replacer whose pairs are ordered longest key first.
// strings.Replacer prefers earlier pairs when several match at one position.
// Empty keys are skipped. It returns nil when no usable key remains.
func newRestorer(mapping Mapping) *strings.Replacer {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		if k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, mapping[k])
	}
	return strings.NewReplacer(pairs...)
}

// marked locates a placeholder written into anonymized output.
type marked struct {
	start, end int
	occurrence Occurrence
}

// misread replays the restore scan over out and reports the first key it
// would read anywhere other than exactly at a written placeholder: a key
// formed from a placeholder and its neighboring text, or one that starts in
// literal text. near is the occurrence closest to the misread.
func misread(out string, marks []marked, mapping Mapping) (key string, near Occurrence, bad bool) {
	byFirst := make(map[byte][]string)
	for k := range mapping {
		if k != "" {
			byFirst[k[0]] = append(byFirst[k[0]], k)
		}
	}

	m := 0
	for i := 0; i < len(out); {
		key := longestKeyAt(out, i, byFirst[out[i]])
		if m < len(marks) && marks[m].start == i {
			if len(key) != marks[m].end-marks[m].start {
				return key, marks[m].occurrence, true
			}
			i = marks[m].end
			m++
			continue
		}
		if key != "" {
			switch {
			case m < len(marks):
				near = marks[m].occurrence
			case m > 0:
				near = marks[m-1].occurrence
			}
			return key, near, true
		}
		i++
	}
	return "", Occurrence{}, false
}

// longestKeyAt returns the longest of keys that starts at text[i:], the
// one strings.Replacer picks given pairs ordered longest first.
func longestKeyAt(text string, i int, keys []string) string {
	best := ""
	for _, k := range keys {
		if len(k) > len(best) && strings.HasPrefix(text[i:], k) {
			best = k
		}
	}
	return best
}

// countPresent reports how many distinct mapping keys occur in text.
func countPresent(text string, mapping Mapping) int {
	n := 0
	for k := range mapping {
		if k != "" && strings.Contains(text, k) {
			n++
		}
	}
	return n
}
