package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsMatchesCopies(t *testing.T) {
	err := ErrSlotUnavailable.WithMessage("slot %s taken", "10:00")

	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected copy to match sentinel")
	}
	if errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("expected different codes not to match")
	}
	if ErrSlotUnavailable.Message == err.Message {
		t.Fatalf("WithMessage must not mutate the sentinel")
	}
}

func TestFromUnwrapsChain(t *testing.T) {
	cause := errors.New("stripe down")
	wrapped := fmt.Errorf("create booking: %w", ErrCheckout.Wrap(cause))

	got := From(wrapped)
	if got.Code != CodeCheckout {
		t.Fatalf("expected %s, got %s", CodeCheckout, got.Code)
	}
	if !errors.Is(got, cause) {
		t.Fatalf("expected cause to be reachable")
	}
}

func TestFromPlainErrorIsInternal(t *testing.T) {
	got := From(errors.New("boom"))
	if got.Status != http.StatusInternalServerError || got.Code != CodeInternal {
		t.Fatalf("unexpected mapping: %d %s", got.Status, got.Code)
	}
	if From(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestValidationDetails(t *testing.T) {
	err := Validation("validation failed", map[string]string{"customerInfo.email": "This field is required"})
	fields, ok := err.Details.(map[string]string)
	if !ok || fields["customerInfo.email"] == "" {
		t.Fatalf("expected field details, got %#v", err.Details)
	}

	if Validation("no fields", nil).Details != nil {
		t.Fatalf("expected nil details when no fields given")
	}
}
