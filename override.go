package anonymask

import "strings"

// Override interfaces let a type bypass reflection-based field processing.
// When the clone of a value implements one of them, Fields calls it instead
// of walking tagged fields. The receiver is always a clone, so mutations
// are safe.

// Anonymizable bypasses reflection for Fields.Anonymize.
// Implementations pass each sensitive field through the session so that
// every field shares one placeholder table.
type Anonymizable interface {
	AnonymizeFields(s *Session) error
}

// Restorable bypasses reflection for Fields.Deanonymize.
type Restorable interface {
	RestoreFields(mapping Mapping) error
}

// Session mints placeholders across the fields of one value.
// A session lives for a single Fields.Anonymize call and is not safe for
// concurrent use.
type Session struct {
	anonymizer *Anonymizer
	syn        *synthesizer
	custom     map[string][]string
	entities   int
	outputs    []sessionOutput
}

// sessionOutput is one string handed back by Scan or Replace.
type sessionOutput struct {
	text  string
	marks []marked
}

func newSession(a *Anonymizer, sources []string, custom map[string][]string, retired map[string]bool) *Session {
	syn := newSynthesizer(a.format, a.config.CaseSensitive, joinSources(sources))
	syn.retired = retired
	return &Session{
		anonymizer: a,
		syn:        syn,
		custom:     custom,
	}
}

// Scan runs detection and custom matching over text and returns it with
// every surviving occurrence replaced.
func (s *Session) Scan(text string) (string, error) {
	s.extend(text)
	spans := s.anonymizer.spans(text, s.custom)
	out, marks, err := s.syn.substitute(text, spans)
	if err != nil {
		return "", err
	}
	s.entities += len(spans)
	s.outputs = append(s.outputs, sessionOutput{text: out, marks: marks})
	return out, nil
}

// Replace treats the whole of value as one entity of category and returns
// its placeholder. Empty values are returned unchanged.
func (s *Session) Replace(category, value string) (string, error) {
	if value == "" {
		return value, nil
	}
	s.extend(value)
	o := Occurrence{Category: category, Value: value, Start: 0, End: len(value)}
	p, err := s.syn.placeholder(o)
	if err != nil {
		return "", err
	}
	s.entities++
	s.outputs = append(s.outputs, sessionOutput{
		text:  p,
		marks: []marked{{start: 0, end: len(p), occurrence: o}},
	})
	return p, nil
}

// Mapping returns the placeholders minted so far.
func (s *Session) Mapping() Mapping {
	return s.syn.mapping
}

// misread checks every output against the final mapping, since a
// placeholder minted for a later field can be misread in an earlier one.
func (s *Session) misread() (string, Occurrence, bool) {
	for _, out := range s.outputs {
		if key, near, bad := misread(out.text, out.marks, s.syn.mapping); bad {
			return key, near, true
		}
	}
	return "", Occurrence{}, false
}

// extend adds text to the collision source when it was not known up front,
// as happens for override implementations. A substring of the source needs
// no extension: a placeholder absent from the source is absent from it too.
func (s *Session) extend(text string) {
	if text != "" && !strings.Contains(s.syn.source, text) {
		s.syn.source += sourceSeparator + text
	}
}

// sourceSeparator joins field texts so a placeholder cannot be found
// straddling two fields.
const sourceSeparator = "\x00"

func joinSources(sources []string) string {
	return strings.Join(sources, sourceSeparator)
}
