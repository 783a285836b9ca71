package anonymask

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

// Struct tag read by Fields.
const (
	// TagAnonymize marks a field for anonymization. The value "scan" runs
	// detection over the field text; any other value names the category of
	// an entity that spans the whole field.
	TagAnonymize = "anonymize"

	// TagScan is the TagAnonymize value requesting detection.
	TagScan = "scan"
)

func init() {
	sentinel.Tag(TagAnonymize)
}

// fieldKind is the shape of a tagged field.
type fieldKind int

const (
	fieldString fieldKind = iota
	fieldBytes
	fieldStrings
	fieldStringMap
)

// fieldPlan describes how to reach and transform a single field.
type fieldPlan struct {
	index      []int  // reflect.Value.FieldByIndex access path
	name       string // dotted field name for error messages
	category   string // entity category, empty for scanned fields
	ptrIndices []int  // positions in index that need a pointer dereference
	kind       fieldKind
}

// typePlans is the cached plan list for one struct type.
type typePlans struct {
	typeName string
	fields   []fieldPlan
}

var planCache sync.Map // reflect.Type → *typePlans

// Fields anonymizes and restores tagged struct fields. All fields of one
// value share a placeholder table, so a name repeated across fields gets
// one placeholder.
//
// Fields is safe for concurrent use.
type Fields[T Cloner[T]] struct {
	anonymizer *Anonymizer
	plans      *typePlans
}

// NewFields builds a field processor for T using a's categories and
// configuration. T must be a struct type.
func NewFields[T Cloner[T]](a *Anonymizer) (*Fields[T], error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil anonymizer", ErrInvalidConfig)
	}
	plans, err := plansFor[T]()
	if err != nil {
		return nil, err
	}
	return &Fields[T]{anonymizer: a, plans: plans}, nil
}

// plansFor returns the cached plans for T, building them on first use.
func plansFor[T any]() (*typePlans, error) {
	rt := reflect.TypeFor[T]()
	if cached, ok := planCache.Load(rt); ok {
		return cached.(*typePlans), nil
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrInvalidTag, rt)
	}

	spec := sentinel.Scan[T]()
	plans := &typePlans{typeName: spec.TypeName}
	if err := buildPlans(plans, spec, nil, nil, ""); err != nil {
		return nil, err
	}

	actual, _ := planCache.LoadOrStore(rt, plans)
	return actual.(*typePlans), nil
}

// buildPlans walks fields and nested structs in declaration order.
func buildPlans(plans *typePlans, spec sentinel.Metadata, parentIndex, ptrIndices []int, prefix string) error {
	for _, field := range spec.Fields {
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if prefix != "" {
			fullName = prefix + "." + field.Name
		}

		tag, tagged := field.Tags[TagAnonymize]

		if !tagged && field.Kind == sentinel.KindStruct {
			if nested := scanNestedType(field.ReflectType); nested != nil {
				if err := buildPlans(plans, *nested, fullIndex, ptrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		if !tagged && field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct {
			if nested := scanNestedType(field.ReflectType.Elem()); nested != nil {
				nestedPtrs := append(append([]int{}, ptrIndices...), len(fullIndex)-1)
				if err := buildPlans(plans, *nested, fullIndex, nestedPtrs, fullName); err != nil {
					return err
				}
			}
			continue
		}

		if !tagged {
			continue
		}

		tag = strings.TrimSpace(tag)
		if tag == "" {
			return fmt.Errorf("%w: empty %s tag on field %s", ErrInvalidTag, TagAnonymize, fullName)
		}
		kind, ok := kindOf(field.ReflectType)
		if !ok {
			return fmt.Errorf("%w: field %s has unsupported type %s", ErrInvalidTag, fullName, field.ReflectType)
		}

		plan := fieldPlan{
			index:      fullIndex,
			name:       fullName,
			ptrIndices: ptrIndices,
			kind:       kind,
		}
		if tag != TagScan {
			plan.category = tag
		}
		plans.fields = append(plans.fields, plan)
	}
	return nil
}

// kindOf classifies the field types Fields can rewrite.
func kindOf(rt reflect.Type) (fieldKind, bool) {
	switch {
	case rt.Kind() == reflect.String:
		return fieldString, true
	case rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.Uint8:
		return fieldBytes, true
	case rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.String:
		return fieldStrings, true
	case rt.Kind() == reflect.Map && rt.Elem().Kind() == reflect.String:
		return fieldStringMap, true
	}
	return 0, false
}

// scanNestedType returns metadata for a nested struct, preferring the
// sentinel cache and falling back to reading the anonymize tag directly.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return &spec
	}
	if rt.Kind() != reflect.Struct {
		return nil
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{},
		}
		if v, ok := sf.Tag.Lookup(TagAnonymize); ok {
			fm.Tags[TagAnonymize] = v
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}
		spec.Fields = append(spec.Fields, fm)
	}
	return &spec
}

// Anonymize returns an anonymized clone of obj and the mapping that
// restores it. Fields tagged with a category become custom entities of that
// category, and their values are also replaced wherever they appear in
// scanned fields. custom adds further entities for scanned fields.
// The original value is never modified.
func (f *Fields[T]) Anonymize(ctx context.Context, obj *T, custom map[string][]string) (*T, Mapping, error) {
	if obj == nil {
		return nil, Mapping{}, nil
	}

	start := time.Now()
	retired := make(map[string]bool)
	for {
		clone, s, err := f.anonymizeOnce(obj, custom, retired)
		if err != nil {
			emitFieldsAnonymized(ctx, f.plans.typeName, 0, 0, time.Since(start), err)
			return nil, nil, err
		}

		// A placeholder misread next to its neighbors is retired and the
		// whole value minted again, so every field reverses exactly.
		key, near, bad := s.misread()
		if !bad {
			emitFieldsAnonymized(ctx, f.plans.typeName, s.entities, len(s.Mapping()), time.Since(start), nil)
			return clone, s.Mapping(), nil
		}
		if len(retired) > len(s.syn.source)+s.entities {
			err = newSpanError(ErrPlaceholderExhausted, near, nil)
			emitFieldsAnonymized(ctx, f.plans.typeName, 0, 0, time.Since(start), err)
			return nil, nil, err
		}
		retired[key] = true
	}
}

// anonymizeOnce runs one anonymization pass over a fresh clone of obj.
func (f *Fields[T]) anonymizeOnce(obj *T, custom map[string][]string, retired map[string]bool) (*T, *Session, error) {
	clone := (*obj).Clone()

	if a, ok := any(&clone).(Anonymizable); ok {
		s := newSession(f.anonymizer, nil, custom, retired)
		if err := a.AnonymizeFields(s); err != nil {
			return nil, nil, err
		}
		return &clone, s, nil
	}

	rv := reflect.ValueOf(&clone).Elem()

	// First pass: gather every field text for collision checks and promote
	// category-tagged values to custom entities.
	var sources []string
	merged := make(map[string][]string, len(custom))
	for category, values := range custom {
		merged[category] = append([]string(nil), values...)
	}
	for _, plan := range f.plans.fields {
		field, ok := getField(rv, plan)
		if !ok {
			continue
		}
		_ = eachValue(field, plan, func(v string) (string, error) {
			sources = append(sources, v)
			if plan.category != "" && v != "" {
				merged[plan.category] = append(merged[plan.category], v)
			}
			return v, nil
		})
	}

	// Second pass: rewrite in declaration order so counters follow it.
	s := newSession(f.anonymizer, sources, merged, retired)
	for _, plan := range f.plans.fields {
		field, ok := getField(rv, plan)
		if !ok {
			continue
		}
		err := eachValue(field, plan, func(v string) (string, error) {
			if plan.category != "" {
				return s.Replace(plan.category, v)
			}
			return s.Scan(v)
		})
		if err != nil {
			return nil, nil, fmt.Errorf("anonymize field %s: %w", plan.name, err)
		}
	}
	return &clone, s, nil
}

// Deanonymize returns a clone of obj with every tagged field restored from
// mapping. Unknown placeholders are left as they are.
func (f *Fields[T]) Deanonymize(ctx context.Context, obj *T, mapping Mapping) (*T, error) {
	if obj == nil {
		return nil, nil
	}

	start := time.Now()
	clone := (*obj).Clone()

	if r, ok := any(&clone).(Restorable); ok {
		if err := r.RestoreFields(mapping); err != nil {
			emitFieldsRestored(ctx, f.plans.typeName, 0, time.Since(start), err)
			return nil, err
		}
		emitFieldsRestored(ctx, f.plans.typeName, 0, time.Since(start), nil)
		return &clone, nil
	}

	restorer := newRestorer(mapping)
	if restorer == nil {
		emitFieldsRestored(ctx, f.plans.typeName, 0, time.Since(start), nil)
		return &clone, nil
	}

	restored := 0
	rv := reflect.ValueOf(&clone).Elem()
	for _, plan := range f.plans.fields {
		field, ok := getField(rv, plan)
		if !ok {
			continue
		}
		_ = eachValue(field, plan, func(v string) (string, error) {
			out := restorer.Replace(v)
			if out != v {
				restored++
			}
			return out, nil
		})
	}

	emitFieldsRestored(ctx, f.plans.typeName, restored, time.Since(start), nil)
	return &clone, nil
}

// eachValue passes every string held by field through fn and stores the
// result. Map entries are visited in key order so minting is repeatable.
func eachValue(field reflect.Value, plan fieldPlan, fn func(string) (string, error)) error {
	switch plan.kind {
	case fieldStrings:
		for i := 0; i < field.Len(); i++ {
			elem := field.Index(i)
			if !elem.CanSet() {
				continue
			}
			out, err := fn(elem.String())
			if err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
			elem.SetString(out)
		}

	case fieldStringMap:
		keys := field.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			out, err := fn(field.MapIndex(k).String())
			if err != nil {
				return fmt.Errorf("[%v]: %w", k.Interface(), err)
			}
			field.SetMapIndex(k, reflect.ValueOf(out).Convert(field.Type().Elem()))
		}

	case fieldBytes:
		if !field.CanSet() || field.IsNil() {
			return nil
		}
		out, err := fn(string(field.Bytes()))
		if err != nil {
			return err
		}
		field.SetBytes([]byte(out))

	default:
		if !field.CanSet() {
			return nil
		}
		out, err := fn(field.String())
		if err != nil {
			return err
		}
		field.SetString(out)
	}
	return nil
}

// getField navigates a field path, dereferencing pointers as needed.
// It reports false when a pointer on the path is nil.
func getField(rv reflect.Value, plan fieldPlan) (reflect.Value, bool) {
	if len(plan.ptrIndices) == 0 {
		return rv.FieldByIndex(plan.index), true
	}

	ptrSet := make(map[int]bool, len(plan.ptrIndices))
	for _, idx := range plan.ptrIndices {
		ptrSet[idx] = true
	}

	current := rv
	for i, idx := range plan.index {
		current = current.Field(idx)
		if ptrSet[i] {
			if current.IsNil() {
				return reflect.Value{}, false
			}
			current = current.Elem()
		}
	}
	return current, true
}
