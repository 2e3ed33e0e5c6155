package response

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"decor-booking/internal/data/entity"

	"github.com/google/uuid"
)

func TestBookingToResponseOmitsCheckoutSession(t *testing.T) {
	session := "cs_test_secret"
	booking := &entity.Booking{
		BaseNoDelete:      entity.BaseNoDelete{ID: uuid.New()},
		BookingDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:         "14:00",
		EndTime:           "18:00",
		Status:            entity.BookingStatusPending,
		CheckoutSessionID: &session,
	}

	data, err := json.Marshal(BookingToResponse(booking))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	body := string(data)
	if strings.Contains(body, session) || strings.Contains(body, "checkoutSessionId") {
		t.Errorf("booking response exposes checkout session: %s", body)
	}
	if !strings.Contains(body, `"date":"2026-03-10"`) || !strings.Contains(body, `"addons":[]`) {
		t.Errorf("body = %s", body)
	}
}
