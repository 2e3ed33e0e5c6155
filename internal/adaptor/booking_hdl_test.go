package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"decor-booking/internal/data/entity"
	"decor-booking/internal/dto/request"
	"decor-booking/internal/dto/response"
	"decor-booking/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type fakeBookingService struct {
	createErr    error
	gotKey       string
	gotCreate    *request.CreateBookingRequest
	gotList      *request.ListBookingsRequest
	gotBookingID string
	gotStatus    string
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest, key string) (*response.CreateBookingResponse, error) {
	f.gotCreate = req
	f.gotKey = key
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &response.CreateBookingResponse{
		Booking:     response.BookingResponse{ID: "b-1", Status: entity.BookingStatusPending},
		CheckoutURL: "https://checkout.stripe.com/c/pay/cs_1",
		SessionID:   "cs_1",
	}, nil
}

func (f *fakeBookingService) ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	f.gotList = req
	return response.NewPaginatedResponse([]response.BookingResponse{{ID: "b-1"}}, req.GetLimit(), req.GetOffset(), 1), nil
}

func (f *fakeBookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	f.gotBookingID = bookingID
	return nil, apperror.ErrBookingNotFound
}

func (f *fakeBookingService) UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	f.gotBookingID = bookingID
	f.gotStatus = req.Status
	return &response.BookingResponse{ID: bookingID, Status: entity.BookingStatus(req.Status)}, nil
}

func (f *fakeBookingService) CancelOrphanedBookings(ctx context.Context) (int64, error) {
	return 0, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return env
}

func bookingRouter(svc *fakeBookingService) http.Handler {
	h := NewBookingHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/bookings", h.CreateBooking)
	r.Get("/api/bookings", h.ListBookings)
	r.Get("/api/bookings/{id}", h.GetBooking)
	r.Patch("/api/admin/bookings/{id}/status", h.UpdateBookingStatus)
	return r
}

func TestCreateBookingHandler(t *testing.T) {
	svc := &fakeBookingService{}
	body := `{"occasion":"birthday","themeId":"11111111-1111-4111-8111-111111111111","guestCount":30}`

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Idempotency-Key", " retry-1 ")
	rec := httptest.NewRecorder()
	bookingRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if !env.Success || !strings.Contains(string(env.Data), `"checkoutUrl":"https://checkout.stripe.com/c/pay/cs_1"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
	if svc.gotKey != "retry-1" {
		t.Errorf("idempotency key = %q", svc.gotKey)
	}
	if svc.gotCreate.GuestCount != 30 || svc.gotCreate.Occasion != "birthday" {
		t.Errorf("decoded request = %+v", svc.gotCreate)
	}
}

func TestCreateBookingHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid json", `{"occasion":`, nil, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"empty body", ``, nil, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"validation", `{}`, apperror.Validation("validation failed", map[string]string{"customerInfo.email": "This field is required"}), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"theme", `{}`, apperror.ErrThemeNotFound, http.StatusNotFound, "THEME_NOT_FOUND"},
		{"slot", `{}`, apperror.ErrSlotUnavailable, http.StatusConflict, "SLOT_UNAVAILABLE"},
		{"checkout", `{}`, apperror.ErrCheckout.WithMessage("failed to create checkout session: boom"), http.StatusInternalServerError, "CHECKOUT_ERROR"},
		{"internal", `{}`, errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeBookingService{createErr: tt.err}
			req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			bookingRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			env := decodeEnvelope(t, rec)
			if env.Success || env.Error == nil || env.Error.Code != tt.wantCode {
				t.Fatalf("body = %s, want code %s", rec.Body.String(), tt.wantCode)
			}
			if strings.Contains(rec.Body.String(), "connection refused") {
				t.Error("internal cause leaked to client")
			}
		})
	}
}

func TestCreateBookingHandlerValidationDetails(t *testing.T) {
	svc := &fakeBookingService{createErr: apperror.Validation("validation failed", map[string]string{
		"customerInfo.email": "This field is required",
	})}
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	bookingRouter(svc).ServeHTTP(rec, req)

	env := decodeEnvelope(t, rec)
	if env.Error.Details["customerInfo.email"] == "" {
		t.Errorf("details = %v", env.Error.Details)
	}
}

func TestListBookingsHandlerQuery(t *testing.T) {
	svc := &fakeBookingService{}
	req := httptest.NewRequest(http.MethodGet, "/api/bookings?customerId=abc&status=pending&limit=500&offset=20", nil)
	rec := httptest.NewRecorder()
	bookingRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := svc.gotList
	if got.CustomerID != "abc" || got.Status != "PENDING" || got.GetLimit() != 100 || got.GetOffset() != 20 {
		t.Errorf("parsed request = %+v", got)
	}
	if !strings.Contains(rec.Body.String(), `"meta":{"total":1,"limit":100,"offset":20,"hasMore":false}`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGetBookingHandlerNotFound(t *testing.T) {
	svc := &fakeBookingService{}
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/9d3c", nil)
	rec := httptest.NewRecorder()
	bookingRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound || svc.gotBookingID != "9d3c" {
		t.Fatalf("status = %d id = %q", rec.Code, svc.gotBookingID)
	}
	if env := decodeEnvelope(t, rec); env.Error.Code != "BOOKING_NOT_FOUND" {
		t.Errorf("code = %s", env.Error.Code)
	}
}

func TestUpdateBookingStatusHandler(t *testing.T) {
	svc := &fakeBookingService{}
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/bookings/b-7/status", strings.NewReader(`{"status":"confirmed"}`))
	rec := httptest.NewRecorder()
	bookingRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}
	if svc.gotBookingID != "b-7" || svc.gotStatus != "CONFIRMED" {
		t.Errorf("id = %q status = %q", svc.gotBookingID, svc.gotStatus)
	}
}
