package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"decor-booking/internal/data/entity"
	"decor-booking/internal/data/repository"
	"decor-booking/internal/dto/request"
	"decor-booking/internal/dto/response"
	"decor-booking/internal/idempotency"
	"decor-booking/internal/payment"
	"decor-booking/internal/pricing"
	"decor-booking/internal/slot"
	"decor-booking/pkg/apperror"
	"decor-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	orphanNote = "cancelled automatically: no checkout session was created"

	compensateTimeout = 10 * time.Second
)

type BookingService interface {
	// CreateBooking validates, prices and persists a PENDING booking, then
	// opens a hosted checkout for it. A non-empty idempotencyKey replays the
	// first successful result.
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest, idempotencyKey string) (*response.CreateBookingResponse, error)
	ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)

	// Admin
	UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)

	// Worker
	CancelOrphanedBookings(ctx context.Context) (int64, error)
}

type bookingService struct {
	repo     *repository.Repository
	checkout payment.CheckoutProvider
	idem     idempotency.Store
	clock    clock
	config   utils.BookingConfig
	currency string
	log      *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	checkout payment.CheckoutProvider,
	idem idempotency.Store,
	clk clock,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:     repo,
		checkout: checkout,
		idem:     idem,
		clock:    clk,
		config:   config.Booking,
		currency: config.Stripe.Currency,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest, idempotencyKey string) (*response.CreateBookingResponse, error) {
	var fingerprint string
	if idempotencyKey != "" {
		fingerprint = requestFingerprint(req)
		replay, err := s.replay(ctx, idempotencyKey, fingerprint)
		if err != nil {
			return nil, err
		}
		if replay != nil {
			return replay, nil
		}
	}

	// 1. Request shape
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	date, err := s.clock.parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	window, ok := slot.Find(req.TimeSlot.StartTime, req.TimeSlot.EndTime)
	if !ok {
		return nil, apperror.Validation("unknown time slot", map[string]string{
			"timeSlot": fmt.Sprintf("%s-%s is not an offered slot", req.TimeSlot.StartTime, req.TimeSlot.EndTime),
		})
	}

	// 2. Theme
	theme, err := findActiveTheme(ctx, s.repo.Theme, req.ThemeID)
	if err != nil {
		return nil, err
	}

	// 3. Slot conflict
	guardSlot := !s.config.BypassSlotCheck
	if guardSlot {
		taken, err := s.repo.Booking.ExistsActiveAtSlot(ctx, date, window.StartTime)
		if err != nil {
			return nil, fmt.Errorf("check slot: %w", err)
		}
		if taken {
			s.log.Info("Slot already booked",
				zap.String("date", req.Date),
				zap.String("start_time", window.StartTime),
			)
			return nil, apperror.ErrSlotUnavailable
		}
	}

	// Addon ids are checked before the customer write
	priced, addons, err := resolveAddons(ctx, s.repo.Addon, req.Addons, true)
	if err != nil {
		return nil, err
	}

	// 4. Customer
	customer, err := s.findOrCreateCustomer(ctx, req.CustomerInfo)
	if err != nil {
		return nil, err
	}

	// 5. Authoritative price
	breakdown := pricing.CalculateThemePrice(theme.BasePrice, req.GuestCount, req.Location.City, priced)

	// 6. Persist
	booking := s.newBooking(req, date, window, theme, customer, breakdown, addons)

	if err := s.repo.Booking.Create(ctx, booking, guardSlot); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			s.log.Info("Slot taken while booking",
				zap.String("date", req.Date),
				zap.String("start_time", window.StartTime),
			)
			return nil, apperror.ErrSlotUnavailable
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("customer_id", customer.ID.String()),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	// 7. Hosted checkout
	session, err := s.checkout.CreateSession(ctx, s.checkoutRequest(booking, theme, req.CustomerInfo.Email))
	if err != nil {
		detail := payment.ErrorDetail(err)
		s.compensate(ctx, booking, "", "checkout session failed: "+detail)
		return nil, apperror.ErrCheckout.WithMessage("failed to create checkout session: %s", detail).Wrap(err)
	}

	// 8. Link session and respond
	if err := s.repo.Booking.SetCheckoutSession(ctx, booking.ID, session.ID); err != nil {
		s.compensate(ctx, booking, session.ID, "checkout session could not be stored")
		return nil, fmt.Errorf("store checkout session: %w", err)
	}
	booking.CheckoutSessionID = &session.ID

	resp := &response.CreateBookingResponse{
		Booking:        response.BookingToResponse(booking),
		CheckoutURL:    session.URL,
		SessionID:      session.ID,
		PriceBreakdown: response.NewPriceQuoteResponse(breakdown, s.currency),
	}

	if idempotencyKey != "" {
		s.remember(ctx, idempotencyKey, fingerprint, resp)
	}

	return resp, nil
}

func (s *bookingService) newBooking(
	req *request.CreateBookingRequest,
	date time.Time,
	window slot.Window,
	theme *entity.Theme,
	customer *entity.User,
	breakdown pricing.PriceBreakdown,
	addons []*entity.Addon,
) *entity.Booking {
	now := s.clock.now()

	paymentType := entity.PaymentType(req.PaymentType)
	if paymentType == "" {
		paymentType = entity.PaymentTypeFull
	}

	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:     utils.GenerateOrderID(now.In(s.clock.loc)),
		CustomerID:  customer.ID,
		Occasion:    pricing.NormalizeOccasion(req.Occasion),
		ThemeID:     theme.ID,
		BookingDate: date,
		StartTime:   window.StartTime,
		EndTime:     window.EndTime,
		GuestCount:  req.GuestCount,
		Location: entity.Location{
			Address: strings.TrimSpace(req.Location.Address),
			City:    strings.TrimSpace(req.Location.City),
			Pincode: req.Location.Pincode,
		},
		BasePrice:         breakdown.BasePrice,
		AddonTotal:        breakdown.AddonTotal(),
		LocationSurcharge: breakdown.LocationSurcharge,
		Taxes:             breakdown.Taxes,
		TotalAmount:       breakdown.FinalAmount,
		PaymentType:       paymentType,
		Status:            entity.BookingStatusPending,
		PaymentStatus:     entity.PaymentStatusPending,
		SpecialRequests:   req.SpecialRequests,
	}

	if c := req.Location.Coordinates; c != nil {
		booking.Location.Coordinates = &entity.Coordinates{Lat: c.Lat, Lng: c.Lng}
	}

	for _, a := range addons {
		booking.Addons = append(booking.Addons, entity.BookingAddon{
			BookingID: booking.ID,
			AddonID:   a.ID,
			Name:      a.Name,
			Price:     a.Price,
		})
	}

	return booking
}

func (s *bookingService) checkoutRequest(booking *entity.Booking, theme *entity.Theme, email string) payment.CheckoutRequest {
	amount := booking.TotalAmount
	description := fmt.Sprintf("%s decoration on %s, %s-%s",
		booking.Occasion, booking.BookingDate.Format("2006-01-02"), booking.StartTime, booking.EndTime)

	if booking.PaymentType == entity.PaymentTypeToken {
		amount = pricing.DepositAmount(booking.TotalAmount)
		description = "Booking deposit: " + description
	}

	return payment.CheckoutRequest{
		BookingID:     booking.ID,
		CustomerID:    booking.CustomerID,
		OrderID:       booking.OrderID,
		AmountMinor:   pricing.ToMinorUnits(amount),
		Currency:      s.currency,
		ProductName:   theme.Name,
		Description:   description,
		CustomerEmail: email,
	}
}

// compensate cancels a booking whose checkout could not be handed off and
// expires sessionID when one was already opened. The row is kept for audit.
// Request cancellation does not stop it.
func (s *bookingService) compensate(ctx context.Context, booking *entity.Booking, sessionID, note string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensateTimeout)
	defer cancel()

	log := s.log.With(zap.String("booking_id", booking.ID.String()))

	if sessionID != "" {
		if err := s.checkout.ExpireSession(ctx, sessionID); err != nil {
			log.Error("Checkout session left open for a cancelled booking, expire it manually",
				zap.Error(err),
				zap.String("session_id", sessionID),
			)
		}
	}

	err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusPending, entity.BookingStatusCancelled, &note)
	if err != nil {
		log.Error("Failed to cancel booking after checkout failure", zap.Error(err))
		return
	}

	log.Warn("Booking cancelled after checkout failure", zap.String("note", note))
}

func (s *bookingService) findOrCreateCustomer(ctx context.Context, info *request.CustomerInfoRequest) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(info.Email))
	phone := strings.TrimSpace(info.Phone)

	user, err := s.repo.User.FindByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if user != nil {
		return user, nil
	}

	now := s.clock.now()
	user = &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     strings.TrimSpace(info.Name),
		Email:    &email,
		Phone:    &phone,
		Role:     entity.RoleCustomer,
		IsActive: true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("create customer: %w", err)
		}
		// Lost a race with a concurrent submission for the same customer
		existing, findErr := s.repo.User.FindByEmailOrPhone(ctx, email, phone)
		if findErr != nil || existing == nil {
			return nil, fmt.Errorf("create customer: %w", err)
		}
		return existing, nil
	}

	s.log.Info("Customer created", zap.String("customer_id", user.ID.String()))
	return user, nil
}

// idempotentRecord is what the store keeps per Idempotency-Key. A replay
// is only served to a request with the same fingerprint.
type idempotentRecord struct {
	Fingerprint string                          `json:"fingerprint"`
	Response    *response.CreateBookingResponse `json:"response"`
}

// requestFingerprint hashes the decoded request. Field order is fixed by the
// struct, so equal requests hash equally regardless of JSON key order.
func requestFingerprint(req *request.CreateBookingRequest) string {
	data, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (s *bookingService) replay(ctx context.Context, key, fingerprint string) (*response.CreateBookingResponse, error) {
	data, ok, err := s.idem.Get(ctx, key)
	if err != nil {
		s.log.Warn("Idempotency lookup failed, processing request", zap.Error(err))
		return nil, nil
	}
	if !ok {
		return nil, nil
	}

	var record idempotentRecord
	if err := json.Unmarshal(data, &record); err != nil || record.Response == nil {
		s.log.Warn("Stored idempotent response unreadable", zap.Error(err))
		return nil, nil
	}

	if record.Fingerprint != fingerprint {
		s.log.Warn("Idempotency key reused with a different request body")
		return nil, apperror.Validation("Idempotency-Key was already used for a different request", map[string]string{
			"Idempotency-Key": "Use a new key for a new booking request",
		})
	}

	s.log.Info("Replaying booking for idempotency key", zap.String("booking_id", record.Response.Booking.ID))
	return record.Response, nil
}

func (s *bookingService) remember(ctx context.Context, key, fingerprint string, resp *response.CreateBookingResponse) {
	data, err := json.Marshal(idempotentRecord{Fingerprint: fingerprint, Response: resp})
	if err != nil {
		s.log.Warn("Failed to encode idempotent response", zap.Error(err))
		return
	}

	ttl := time.Duration(s.config.IdempotencyTTLMins) * time.Minute
	if err := s.idem.Save(ctx, key, data, ttl); err != nil {
		s.log.Warn("Failed to store idempotent response", zap.Error(err))
	}
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	filter := entity.BookingFilter{
		Limit:  req.GetLimit(),
		Offset: req.GetOffset(),
	}
	if req.CustomerID != "" {
		id := uuid.MustParse(req.CustomerID)
		filter.CustomerID = &id
	}
	if req.Status != "" {
		status := entity.BookingStatus(req.Status)
		filter.Status = &status
	}

	bookings, err := s.repo.Booking.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, response.BookingToResponse(b))
	}

	return response.NewPaginatedResponse(items, filter.Limit, filter.Offset, total), nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperror.Validation("invalid booking ID", map[string]string{"id": "Must be a valid UUID"})
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, apperror.ErrBookingNotFound.WithMessage("booking %s not found", bookingID)
	}

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	addons, err := s.repo.Booking.FindAddons(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("get booking addons: %w", err)
	}
	booking.Addons = addons

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	next := entity.BookingStatus(req.Status)
	if !booking.Status.CanTransitionTo(next) {
		return nil, apperror.ErrInvalidTransition.WithMessage("cannot move booking from %s to %s", booking.Status, next)
	}

	err = s.repo.Booking.UpdateStatus(ctx, booking.ID, booking.Status, next, req.Note)
	if errors.Is(err, repository.ErrStaleStatus) {
		return nil, apperror.ErrInvalidTransition.WithMessage("booking %s changed status concurrently, reload and retry", bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(next)),
	)

	booking.Status = next
	booking.UpdatedAt = s.clock.now()
	if req.Note != nil {
		booking.Notes = req.Note
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelOrphanedBookings(ctx context.Context) (int64, error) {
	cutoff := s.clock.now().Add(-time.Duration(s.config.OrphanTTLMinutes) * time.Minute)

	n, err := s.repo.Booking.CancelOrphaned(ctx, cutoff, orphanNote)
	if err != nil {
		return 0, fmt.Errorf("cancel orphaned bookings: %w", err)
	}

	return n, nil
}
