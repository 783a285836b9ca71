package anonymask

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitAnonymizerCreated(_ *testing.T) {
	// Should not panic
	emitAnonymizerCreated(context.Background(), []string{"email", "phone"}, FormatShort)
}

func TestEmitAnonymizeComplete_Success(_ *testing.T) {
	emitAnonymizeComplete(context.Background(), 128, 3, 2, 100*time.Millisecond, nil)
}

func TestEmitAnonymizeComplete_Error(_ *testing.T) {
	emitAnonymizeComplete(context.Background(), 128, 0, 0, 100*time.Millisecond, errors.New("test error"))
}

func TestEmitDeanonymizeComplete(_ *testing.T) {
	emitDeanonymizeComplete(context.Background(), 64, 2, 2, 10*time.Millisecond)
}

func TestEmitFieldsAnonymized_Success(_ *testing.T) {
	emitFieldsAnonymized(context.Background(), "Ticket", 5, 4, 100*time.Millisecond, nil)
}

func TestEmitFieldsAnonymized_Error(_ *testing.T) {
	emitFieldsAnonymized(context.Background(), "Ticket", 0, 0, 100*time.Millisecond, errors.New("test error"))
}

func TestEmitFieldsRestored_Success(_ *testing.T) {
	emitFieldsRestored(context.Background(), "Ticket", 5, 10*time.Millisecond, nil)
}

func TestEmitFieldsRestored_Error(_ *testing.T) {
	emitFieldsRestored(context.Background(), "Ticket", 0, 10*time.Millisecond, errors.New("test error"))
}

func TestEmitMappingSealed_Success(_ *testing.T) {
	emitMappingSealed(context.Background(), "application/json", 3, 96, nil)
}

func TestEmitMappingSealed_Error(_ *testing.T) {
	emitMappingSealed(context.Background(), "application/json", 3, 0, errors.New("test error"))
}

func TestEmitMappingOpened_Success(_ *testing.T) {
	emitMappingOpened(context.Background(), "application/json", 96, 3, nil)
}

func TestEmitMappingOpened_Error(_ *testing.T) {
	emitMappingOpened(context.Background(), "application/json", 96, 0, errors.New("test error"))
}
