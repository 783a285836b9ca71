package anonymask

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Placeholder format selectors. Any other non-empty value is treated as a
// template containing {type}, {counter} and/or {uuid} tokens.
const (
	// FormatStandard mints TYPE_<random hex id>.
	FormatStandard = "standard"

	// FormatShort mints TYPE_<n> with a per-category counter starting at 1.
	FormatShort = "short"
)

// Environment variables read by LoadEnvConfig.
const (
	EnvCaseSensitive     = "ANONYMASK_CASE_SENSITIVE"
	EnvWordBoundaryCheck = "ANONYMASK_WORD_BOUNDARY_CHECK"
	EnvPlaceholderFormat = "ANONYMASK_PLACEHOLDER_FORMAT"
	EnvMaxEntities       = "ANONYMASK_MAX_ENTITIES"
)

// Config controls matching and placeholder behavior.
// A Config is copied into an Anonymizer at construction and never mutated.
type Config struct {
	// CaseSensitive controls custom value matching and placeholder reuse.
	CaseSensitive bool `json:"case_sensitive" yaml:"case_sensitive" xml:"case_sensitive" msgpack:"case_sensitive" bson:"case_sensitive"`

	// WordBoundaryCheck rejects custom matches flanked by a letter or digit,
	// so "John" does not match inside "Johnson".
	WordBoundaryCheck bool `json:"word_boundary_check" yaml:"word_boundary_check" xml:"word_boundary_check" msgpack:"word_boundary_check" bson:"word_boundary_check"`

	// PlaceholderFormat is "standard", "short", or a template.
	PlaceholderFormat string `json:"placeholder_format" yaml:"placeholder_format" xml:"placeholder_format" msgpack:"placeholder_format" bson:"placeholder_format"`

	// MaxEntities caps the occurrences replaced per call. Zero means unlimited.
	MaxEntities uint `json:"max_entities" yaml:"max_entities" xml:"max_entities" msgpack:"max_entities" bson:"max_entities"`
}

// DefaultConfig returns case-sensitive matching, no boundary check,
// standard placeholders and no entity limit.
func DefaultConfig() Config {
	return Config{
		CaseSensitive:     true,
		WordBoundaryCheck: false,
		PlaceholderFormat: FormatStandard,
		MaxEntities:       0,
	}
}

// Validate checks that the placeholder format can mint unique placeholders.
func (c Config) Validate() error {
	_, err := parseFormat(c.PlaceholderFormat)
	return err
}

// Option configures an Anonymizer.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}

// WithCaseSensitive sets whether custom matching is case-sensitive.
func WithCaseSensitive(enabled bool) Option {
	return func(c *Config) { c.CaseSensitive = enabled }
}

// WithWordBoundaryCheck sets whether custom matches must sit on word boundaries.
func WithWordBoundaryCheck(enabled bool) Option {
	return func(c *Config) { c.WordBoundaryCheck = enabled }
}

// WithPlaceholderFormat sets the placeholder format.
func WithPlaceholderFormat(format string) Option {
	return func(c *Config) { c.PlaceholderFormat = format }
}

// WithMaxEntities caps the occurrences replaced per call.
func WithMaxEntities(limit uint) Option {
	return func(c *Config) { c.MaxEntities = limit }
}

// LoadConfig decodes a configuration document over DefaultConfig and validates it.
// Fields missing from the document keep their defaults.
func LoadConfig(codec Codec, data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := codec.Unmarshal(data, &cfg); err != nil {
		return Config{}, newCodecError(ErrUnmarshal, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEnvConfig builds a configuration from ANONYMASK_* variables.
// Variables are read from the given dotenv files first; the process
// environment takes precedence. Missing files are an error only when named
// explicitly.
func LoadEnvConfig(files ...string) (Config, error) {
	vars := map[string]string{}
	if len(files) > 0 {
		read, err := godotenv.Read(files...)
		if err != nil {
			return Config{}, fmt.Errorf("read env files: %w", err)
		}
		vars = read
	}
	for _, key := range []string{EnvCaseSensitive, EnvWordBoundaryCheck, EnvPlaceholderFormat, EnvMaxEntities} {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}

	cfg := DefaultConfig()
	if v, ok := vars[EnvCaseSensitive]; ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, newConfigError(ErrInvalidConfig, EnvCaseSensitive, v)
		}
		cfg.CaseSensitive = b
	}
	if v, ok := vars[EnvWordBoundaryCheck]; ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, newConfigError(ErrInvalidConfig, EnvWordBoundaryCheck, v)
		}
		cfg.WordBoundaryCheck = b
	}
	if v, ok := vars[EnvPlaceholderFormat]; ok && v != "" {
		cfg.PlaceholderFormat = v
	}
	if v, ok := vars[EnvMaxEntities]; ok {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 0)
		if err != nil {
			return Config{}, newConfigError(ErrInvalidConfig, EnvMaxEntities, v)
		}
		cfg.MaxEntities = uint(n)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
