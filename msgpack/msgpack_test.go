package msgpack

import (
	"reflect"
	"testing"

	"github.com/zoobzio/anonymask"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/msgpack" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/msgpack")
	}
}

func TestMarshal_CompactInts(t *testing.T) {
	c := New()

	data, err := c.Marshal(int64(5))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if len(data) != 1 {
		t.Errorf("Marshal(5) = %x, want a single fixint byte", data)
	}
}

func TestResultRoundTrip(t *testing.T) {
	c := New()

	original := anonymask.Result{
		AnonymizedText: "SSN SSN_1, card CREDIT_CARD_1",
		Mapping:        anonymask.Mapping{"SSN_1": "123-45-6789", "CREDIT_CARD_1": "4111 1111 1111 1111"},
		Entities: []anonymask.Occurrence{
			{Category: "ssn", Value: "123-45-6789", Start: 4, End: 15},
			{Category: "credit_card", Value: "4111 1111 1111 1111", Start: 22, End: 41},
		},
	}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored anonymask.Result
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if !reflect.DeepEqual(restored, original) {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestUnmarshal_UnknownField(t *testing.T) {
	c := New()

	data, err := c.Marshal(map[string]any{"anonymized_text": "x", "extra": 1})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var v anonymask.Result
	if err := c.Unmarshal(data, &v); err == nil {
		t.Error("Unmarshal() should reject unknown fields")
	}
}

func TestLoadConfig(t *testing.T) {
	c := New()

	data, err := c.Marshal(map[string]any{"placeholder_format": "short", "max_entities": 7})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	cfg, err := anonymask.LoadConfig(c, data)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.PlaceholderFormat != anonymask.FormatShort || cfg.MaxEntities != 7 || !cfg.CaseSensitive {
		t.Errorf("LoadConfig() = %+v", cfg)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v anonymask.Mapping
	err := c.Unmarshal([]byte{0xc1}, &v)
	if err == nil {
		t.Error("Unmarshal() should return error for invalid MessagePack")
	}
}
