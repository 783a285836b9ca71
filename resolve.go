package anonymask

import "sort"

// resolveSpans merges built-in and custom occurrences into one start-ordered,
// non-overlapping sequence. On overlap the earlier start wins, then the
// longer span, then the occurrence that came first in union order
// (built-in before custom). Repeats of a value at distinct positions do not
// overlap and are all kept. A non-zero limit keeps only the first limit
// survivors.
func resolveSpans(builtin, custom []Occurrence, limit uint) []Occurrence {
	union := make([]Occurrence, 0, len(builtin)+len(custom))
	union = append(union, builtin...)
	union = append(union, custom...)

	// Stable sort keeps union order for identical (start, length) pairs.
	sort.SliceStable(union, func(i, j int) bool {
		if union[i].Start != union[j].Start {
			return union[i].Start < union[j].Start
		}
		return union[i].Len() > union[j].Len()
	})

	resolved := make([]Occurrence, 0, len(union))
	for _, o := range union {
		if len(resolved) > 0 && o.Overlaps(resolved[len(resolved)-1]) {
			continue
		}
		resolved = append(resolved, o)
	}

	if limit > 0 && uint(len(resolved)) > limit {
		resolved = resolved[:limit]
	}
	return resolved
}
