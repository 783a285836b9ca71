package anonymask

import (
	"context"
	"strings"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for anonymask events. Events carry categories, counts, sizes and
// durations; they never carry original values or placeholders.
var (
	SignalAnonymizerCreated   = capitan.NewSignal("anonymask.anonymizer.created", "Anonymizer instantiated")
	SignalAnonymizeComplete   = capitan.NewSignal("anonymask.anonymize.complete", "Anonymize operation finished")
	SignalDeanonymizeComplete = capitan.NewSignal("anonymask.deanonymize.complete", "Deanonymize operation finished")
	SignalFieldsAnonymized    = capitan.NewSignal("anonymask.fields.anonymized", "Struct fields anonymized")
	SignalFieldsRestored      = capitan.NewSignal("anonymask.fields.restored", "Struct fields restored")
	SignalMappingSealed       = capitan.NewSignal("anonymask.mapping.sealed", "Mapping encrypted for storage")
	SignalMappingOpened       = capitan.NewSignal("anonymask.mapping.opened", "Sealed mapping decrypted")
)

// Keys for typed event data.
var (
	KeyCategories    = capitan.NewStringKey("categories")
	KeyFormat        = capitan.NewStringKey("format")
	KeyTypeName      = capitan.NewStringKey("type_name")
	KeyContentType   = capitan.NewStringKey("content_type")
	KeyInputSize     = capitan.NewIntKey("input_size")
	KeyEntityCount   = capitan.NewIntKey("entity_count")
	KeyMappingSize   = capitan.NewIntKey("mapping_size")
	KeyRestoredCount = capitan.NewIntKey("restored_count")
	KeyDuration      = capitan.NewDurationKey("duration")
	KeyError         = capitan.NewErrorKey("error")
)

// emit sends fields on sig, routing to capitan.Error when err is set.
func emit(ctx context.Context, sig capitan.Signal, err error, fields ...capitan.Field) {
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, sig, fields...)
		return
	}
	capitan.Emit(ctx, sig, fields...)
}

// emitAnonymizerCreated emits an event when an anonymizer is constructed.
func emitAnonymizerCreated(ctx context.Context, categories []string, format string) {
	capitan.Emit(ctx, SignalAnonymizerCreated,
		KeyCategories.Field(strings.Join(categories, ",")),
		KeyFormat.Field(format),
	)
}

// emitAnonymizeComplete emits an event when an anonymize call finishes.
func emitAnonymizeComplete(ctx context.Context, inputSize, entities, mappingSize int, duration time.Duration, err error) {
	emit(ctx, SignalAnonymizeComplete, err,
		KeyInputSize.Field(inputSize),
		KeyEntityCount.Field(entities),
		KeyMappingSize.Field(mappingSize),
		KeyDuration.Field(duration),
	)
}

// emitDeanonymizeComplete emits an event when a deanonymize call finishes.
func emitDeanonymizeComplete(ctx context.Context, inputSize, mappingSize, restored int, duration time.Duration) {
	capitan.Emit(ctx, SignalDeanonymizeComplete,
		KeyInputSize.Field(inputSize),
		KeyMappingSize.Field(mappingSize),
		KeyRestoredCount.Field(restored),
		KeyDuration.Field(duration),
	)
}

// emitFieldsAnonymized emits an event when a struct has been anonymized.
func emitFieldsAnonymized(ctx context.Context, typeName string, entities, mappingSize int, duration time.Duration, err error) {
	emit(ctx, SignalFieldsAnonymized, err,
		KeyTypeName.Field(typeName),
		KeyEntityCount.Field(entities),
		KeyMappingSize.Field(mappingSize),
		KeyDuration.Field(duration),
	)
}

// emitFieldsRestored emits an event when a struct has been restored.
func emitFieldsRestored(ctx context.Context, typeName string, restored int, duration time.Duration, err error) {
	emit(ctx, SignalFieldsRestored, err,
		KeyTypeName.Field(typeName),
		KeyRestoredCount.Field(restored),
		KeyDuration.Field(duration),
	)
}

// emitMappingSealed emits an event when a mapping has been sealed.
func emitMappingSealed(ctx context.Context, contentType string, mappingSize, size int, err error) {
	emit(ctx, SignalMappingSealed, err,
		KeyContentType.Field(contentType),
		KeyMappingSize.Field(mappingSize),
		KeyInputSize.Field(size),
	)
}

// emitMappingOpened emits an event when a sealed mapping has been opened.
func emitMappingOpened(ctx context.Context, contentType string, size, mappingSize int, err error) {
	emit(ctx, SignalMappingOpened, err,
		KeyContentType.Field(contentType),
		KeyInputSize.Field(size),
		KeyMappingSize.Field(mappingSize),
	)
}
