package anonymask

import (
	"strings"
	"sync"
)

// registryKey identifies an anonymizer by its normalized categories and
// configuration.
type registryKey struct {
	categories string
	config     Config
}

var (
	registry   = make(map[registryKey]*Anonymizer)
	registryMu sync.RWMutex
)

// Use returns a shared anonymizer for the given categories and options,
// building it on first use. Anonymizers are immutable, so one instance can
// serve every caller with the same settings.
func Use(categories []string, opts ...Option) (*Anonymizer, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	normalized, err := normalizeCategories(categories)
	if err != nil {
		return nil, err
	}
	key := registryKey{categories: strings.Join(normalized, ","), config: cfg}

	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached, nil
	}
	registryMu.RUnlock()

	registryMu.Lock()
	defer registryMu.Unlock()

	if cached, ok := registry[key]; ok {
		return cached, nil
	}

	a, err := New(normalized, WithConfig(cfg))
	if err != nil {
		return nil, err
	}
	registry[key] = a
	return a, nil
}

// Reset clears the shared anonymizers.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[registryKey]*Anonymizer)
}

