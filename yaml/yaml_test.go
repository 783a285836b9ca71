package yaml

import (
	"errors"
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
	if c.ContentType() != "application/yaml" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/yaml")
	}
}

func TestMarshal_SortedMapping(t *testing.T) {
	c := New()

	data, err := c.Marshal(anonymask.Mapping{"PHONE_1": "555-1234", "EMAIL_1": "a@b.co"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := "EMAIL_1: a@b.co\nPHONE_1: 555-1234\n"
	if string(data) != want {
		t.Errorf("Marshal() = %q, want %q", data, want)
	}
}

func TestResultRoundTrip(t *testing.T) {
	c := New()

	original := anonymask.Result{
		AnonymizedText: "Call PHONE_1 or PHONE_2",
		Mapping:        anonymask.Mapping{"PHONE_1": "555-1234", "PHONE_2": "(555) 123-4567"},
		Entities: []anonymask.Occurrence{
			{Category: "phone", Value: "555-1234", Start: 5, End: 13},
			{Category: "phone", Value: "(555) 123-4567", Start: 17, End: 31},
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

func TestLoadConfig(t *testing.T) {
	doc := "case_sensitive: false\nplaceholder_format: \"[{type}:{counter}]\"\nmax_entities: 50\n"

	cfg, err := anonymask.LoadConfig(New(), []byte(doc))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	want := anonymask.Config{CaseSensitive: false, PlaceholderFormat: "[{type}:{counter}]", MaxEntities: 50}
	if cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := anonymask.LoadConfig(New(), nil)
	if err != nil {
		t.Fatalf("LoadConfig(empty) error: %v", err)
	}
	if cfg != anonymask.DefaultConfig() {
		t.Errorf("LoadConfig(empty) = %+v, want defaults", cfg)
	}
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	_, err := anonymask.LoadConfig(New(), []byte("placeholder_format: short\nmax_entity: 3\n"))
	if !errors.Is(err, anonymask.ErrUnmarshal) {
		t.Errorf("LoadConfig() error = %v, want ErrUnmarshal", err)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v anonymask.Mapping
	err := c.Unmarshal([]byte("invalid: yaml: content: ["), &v)
	if err == nil {
		t.Error("Unmarshal() should return error for invalid YAML")
	}
}
