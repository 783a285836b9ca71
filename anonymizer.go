package anonymask

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Anonymizer replaces PII in text with placeholders and records how to
// reverse the substitution.
//
// An Anonymizer is immutable after New and safe for concurrent use. Every
// call builds its own occurrence list, placeholder cache and counters.
type Anonymizer struct {
	categories []string
	config     Config
	format     placeholderFormat
	detector   detector
	matcher    matcher
}

// New builds an anonymizer for the given built-in categories.
// Names are matched case-insensitively and de-duplicated. An empty list
// disables built-in detection; custom entities still work.
func New(categories []string, opts ...Option) (*Anonymizer, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	format, err := parseFormat(cfg.PlaceholderFormat)
	if err != nil {
		return nil, err
	}
	normalized, err := normalizeCategories(categories)
	if err != nil {
		return nil, err
	}

	a := &Anonymizer{
		categories: normalized,
		config:     cfg,
		format:     format,
		detector:   newDetector(normalized),
		matcher: matcher{
			caseSensitive: cfg.CaseSensitive,
			wordBoundary:  cfg.WordBoundaryCheck,
		},
	}

	emitAnonymizerCreated(context.Background(), normalized, cfg.PlaceholderFormat)
	return a, nil
}

// Categories returns the enabled built-in categories in scan priority order.
func (a *Anonymizer) Categories() []string {
	out := make([]string, len(a.categories))
	copy(out, a.categories)
	return out
}

// Config returns the configuration the anonymizer was built with.
func (a *Anonymizer) Config() Config {
	return a.config
}

// Anonymize replaces every enabled built-in occurrence in text.
// Empty text yields an empty result, not an error.
func (a *Anonymizer) Anonymize(ctx context.Context, text string) (*Result, error) {
	return a.AnonymizeWithCustom(ctx, text, nil)
}

// AnonymizeWithCustom is Anonymize plus exact matching of caller-supplied
// values, keyed by category. A nil map behaves exactly like Anonymize.
func (a *Anonymizer) AnonymizeWithCustom(ctx context.Context, text string, custom map[string][]string) (*Result, error) {
	start := time.Now()

	entities := a.spans(text, custom)
	anonymized, mapping, err := a.rewrite(text, entities)
	if err != nil {
		emitAnonymizeComplete(ctx, len(text), 0, 0, time.Since(start), err)
		return nil, err
	}

	result := &Result{
		AnonymizedText: anonymized,
		Mapping:        mapping,
		Entities:       entities,
	}
	emitAnonymizeComplete(ctx, len(text), len(entities), len(mapping), time.Since(start), nil)
	return result, nil
}

// Deanonymize restores text using mapping and emits a completion event.
// It behaves exactly like the package-level Deanonymize.
func (a *Anonymizer) Deanonymize(ctx context.Context, text string, mapping Mapping) string {
	start := time.Now()
	out := Deanonymize(text, mapping)
	emitDeanonymizeComplete(ctx, len(text), len(mapping), countPresent(text, mapping), time.Since(start))
	return out
}

// spans detects and resolves the occurrences to replace in text. The
// result is start-ordered, never overlaps and is never nil.
func (a *Anonymizer) spans(text string, custom map[string][]string) []Occurrence {
	if text == "" {
		return []Occurrence{}
	}
	return resolveSpans(a.detector.detect(text), a.matcher.match(text, custom), a.config.MaxEntities)
}

// rewrite replaces spans in text with placeholders. A placeholder that the
// restore scan would misread next to its neighbors is retired and the text
// is minted again, so the output always reverses exactly.
func (a *Anonymizer) rewrite(text string, spans []Occurrence) (string, Mapping, error) {
	retired := make(map[string]bool)
	for {
		syn := newSynthesizer(a.format, a.config.CaseSensitive, text)
		syn.retired = retired
		out, marks, err := syn.substitute(text, spans)
		if err != nil {
			return "", nil, err
		}
		key, near, bad := misread(out, marks, syn.mapping)
		if !bad {
			return out, syn.mapping, nil
		}
		if len(retired) > len(text)+len(spans) {
			return "", nil, newSpanError(ErrPlaceholderExhausted, near, nil)
		}
		retired[key] = true
	}
}

// normalizeCategories lowercases, validates and de-duplicates category
// names, returning them in scan priority order.
func normalizeCategories(categories []string) ([]string, error) {
	enabled := make(map[string]bool, len(categories))
	for _, c := range categories {
		name := strings.ToLower(strings.TrimSpace(c))
		if !IsBuiltinCategory(name) {
			return nil, &ConfigError{
				Err:   ErrUnknownCategory,
				Field: "categories",
				Value: c,
				Hint:  suggestCategory(name),
			}
		}
		enabled[name] = true
	}

	out := make([]string, 0, len(enabled))
	for name := range enabled {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool {
		return builtinIndex[out[i]] < builtinIndex[out[j]]
	})
	return out, nil
}

// categoryAliases maps common alternate spellings to built-in categories.
var categoryAliases = map[string]string{
	"mail":            CategoryEmail,
	"e-mail":          CategoryEmail,
	"email_address":   CategoryEmail,
	"tel":             CategoryPhone,
	"telephone":       CategoryPhone,
	"phone_number":    CategoryPhone,
	"mobile":          CategoryPhone,
	"social":          CategorySSN,
	"social_security": CategorySSN,
	"cc":              CategoryCreditCard,
	"card":            CategoryCreditCard,
	"creditcard":      CategoryCreditCard,
	"credit-card":     CategoryCreditCard,
	"ip":              CategoryIPAddress,
	"ipv4":            CategoryIPAddress,
	"ipv6":            CategoryIPAddress,
	"ip-address":      CategoryIPAddress,
	"uri":             CategoryURL,
	"link":            CategoryURL,
	"website":         CategoryURL,
}

// suggestCategory returns the built-in category most likely meant by name,
// or "" when nothing is close.
func suggestCategory(name string) string {
	if alias, ok := categoryAliases[name]; ok {
		return alias
	}
	best, bestDist := "", 3
	for _, p := range builtinPatterns {
		if d := editDistance(name, p.category); d < bestDist {
			best, bestDist = p.category, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b, by rune.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
