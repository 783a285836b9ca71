package anonymask

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Template tokens.
const (
	tokenType    = "type"
	tokenCounter = "counter"
	tokenUUID    = "uuid"
)

type formatKind int

const (
	formatStandard formatKind = iota
	formatShort
	formatTemplate
)

// segment is either literal text or a single template token.
type segment struct {
	literal string
	token   string
}

// placeholderFormat is a parsed Config.PlaceholderFormat.
type placeholderFormat struct {
	kind     formatKind
	segments []segment
}

// parseFormat parses a format selector or template.
// Templates may only reference {type}, {counter} and {uuid}, and must
// contain {uuid} or both {type} and {counter} so placeholders stay unique.
func parseFormat(format string) (placeholderFormat, error) {
	switch format {
	case "", FormatStandard:
		return placeholderFormat{kind: formatStandard}, nil
	case FormatShort:
		return placeholderFormat{kind: formatShort}, nil
	}

	var segments []segment
	var literal strings.Builder
	seen := map[string]bool{}
	rest := format
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			literal.WriteString(rest)
			break
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			literal.WriteString(rest)
			break
		}
		name := rest[open+1 : open+closing]
		if strings.ContainsRune(name, '{') {
			// Stray brace: keep it literal and rescan from the next one.
			literal.WriteString(rest[:open+1])
			rest = rest[open+1:]
			continue
		}
		switch name {
		case tokenType, tokenCounter, tokenUUID:
		default:
			return placeholderFormat{}, &ConfigError{
				Err:   ErrInvalidFormat,
				Field: "placeholder_format",
				Value: format,
				Hint:  "{type}, {counter} or {uuid}",
			}
		}
		literal.WriteString(rest[:open])
		if literal.Len() > 0 {
			segments = append(segments, segment{literal: literal.String()})
			literal.Reset()
		}
		segments = append(segments, segment{token: name})
		seen[name] = true
		rest = rest[open+closing+1:]
	}
	if literal.Len() > 0 {
		segments = append(segments, segment{literal: literal.String()})
	}

	if !seen[tokenUUID] && !(seen[tokenType] && seen[tokenCounter]) {
		return placeholderFormat{}, newConfigError(ErrInvalidFormat, "placeholder_format", format)
	}
	return placeholderFormat{kind: formatTemplate, segments: segments}, nil
}

// synthesizer mints placeholders for one call. It is never shared between
// calls, so its cache and counters need no locking.
type synthesizer struct {
	format        placeholderFormat
	caseSensitive bool
	source        string            // text being anonymized; placeholders never occur in it
	cache         map[string]string // (category, value) key → placeholder
	counters      map[string]int    // display prefix → last counter
	retired       map[string]bool   // placeholders the restore scan misread; never minted again
	mapping       Mapping
}

func newSynthesizer(format placeholderFormat, caseSensitive bool, source string) *synthesizer {
	return &synthesizer{
		format:        format,
		caseSensitive: caseSensitive,
		source:        source,
		cache:         make(map[string]string),
		counters:      make(map[string]int),
		mapping:       Mapping{},
	}
}

// placeholder returns the placeholder for o, minting one on first sight of
// its (category, value) pair.
func (s *synthesizer) placeholder(o Occurrence) (string, error) {
	value := o.Value
	if !s.caseSensitive {
		value = strings.ToLower(value)
	}
	key := o.Category + "\x00" + value
	if p, ok := s.cache[key]; ok {
		return p, nil
	}

	prefix := displayPrefix(o.Category)
	// Each collision with the source text or a retired placeholder consumes
	// one counter or id, so the bound is the number of candidates that can
	// be rejected.
	for attempt := 0; attempt <= len(s.source)+len(s.retired)+1; attempt++ {
		s.counters[prefix]++
		p, err := s.render(prefix, s.counters[prefix])
		if err != nil {
			return "", newSpanError(ErrPlaceholderExhausted, o, err)
		}
		if _, taken := s.mapping[p]; taken || s.retired[p] {
			continue
		}
		if strings.Contains(s.source, p) {
			continue
		}
		s.cache[key] = p
		s.mapping[p] = o.Value
		return p, nil
	}
	return "", newSpanError(ErrPlaceholderExhausted, o, nil)
}

// substitute writes a placeholder over every span of text. Spans must be
// start-ordered and disjoint. Placeholders are minted in start order so
// counters follow first-seen order; writing forward into a builder yields
// the same text as replacing spans back to front. The returned marks locate
// each placeholder in the output.
func (s *synthesizer) substitute(text string, spans []Occurrence) (string, []marked, error) {
	if len(spans) == 0 {
		return text, nil, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	marks := make([]marked, 0, len(spans))
	last := 0
	for _, o := range spans {
		p, err := s.placeholder(o)
		if err != nil {
			return "", nil, err
		}
		b.WriteString(text[last:o.Start])
		marks = append(marks, marked{start: b.Len(), end: b.Len() + len(p), occurrence: o})
		b.WriteString(p)
		last = o.End
	}
	b.WriteString(text[last:])
	return b.String(), marks, nil
}

// render formats one candidate placeholder.
func (s *synthesizer) render(prefix string, counter int) (string, error) {
	switch s.format.kind {
	case formatShort:
		return prefix + "_" + strconv.Itoa(counter), nil
	case formatTemplate:
		var b strings.Builder
		var id string
		for _, seg := range s.format.segments {
			switch seg.token {
			case "":
				b.WriteString(seg.literal)
			case tokenType:
				b.WriteString(prefix)
			case tokenCounter:
				b.WriteString(strconv.Itoa(counter))
			case tokenUUID:
				if id == "" {
					var err error
					if id, err = randomID(); err != nil {
						return "", err
					}
				}
				b.WriteString(id)
			}
		}
		return b.String(), nil
	default:
		id, err := randomID()
		if err != nil {
			return "", err
		}
		return prefix + "_" + id, nil
	}
}

// randomID returns 32 hex characters from a version 4 UUID.
// uuid.NewRandom reads crypto/rand and is safe for concurrent use.
func randomID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(id.String(), "-", ""), nil
}

// displayPrefix uppercases a category and collapses each run of
// non-alphanumeric runes into one underscore.
func displayPrefix(category string) string {
	if category == "" {
		return "ENTITY"
	}
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToUpper(category) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore {
			b.WriteByte('_')
			underscore = true
		}
	}
	return b.String()
}
