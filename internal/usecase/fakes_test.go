package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"decor-booking/internal/data/entity"
	"decor-booking/internal/data/repository"
	"decor-booking/internal/idempotency"
	"decor-booking/internal/payment"
	"decor-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func testClock() clock {
	return clock{now: func() time.Time { return testNow }, loc: time.UTC}
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*entity.Booking

	// lostRace makes a guarded Create fail as if another writer won the lock
	lostRace      bool
	guardCalls    []bool
	orphanSince   time.Time
	setSessionErr error
}

func (f *fakeBookingRepo) blocked(date time.Time, start string) bool {
	for _, b := range f.bookings {
		if b.BookingDate.Equal(date) && b.StartTime == start && b.Status.BlocksSlot() {
			return true
		}
	}
	return false
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking, guardSlot bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.guardCalls = append(f.guardCalls, guardSlot)
	if guardSlot && (f.lostRace || f.blocked(booking.BookingDate, booking.StartTime)) {
		return repository.ErrSlotTaken
	}

	stored := *booking
	f.bookings = append(f.bookings, &stored)
	return nil
}

func (f *fakeBookingRepo) find(id uuid.UUID) *entity.Booking {
	for _, b := range f.bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if b := f.find(id); b != nil {
		c := *b
		return &c, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) matching(filter entity.BookingFilter) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range f.bookings {
		if filter.CustomerID != nil && b.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (f *fakeBookingRepo) FindAll(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := f.matching(filter)
	if filter.Offset >= len(all) {
		return nil, nil
	}
	end := min(filter.Offset+filter.Limit, len(all))
	return all[filter.Offset:end], nil
}

func (f *fakeBookingRepo) Count(ctx context.Context, filter entity.BookingFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.matching(filter))), nil
}

func (f *fakeBookingRepo) FindAddons(ctx context.Context, bookingID uuid.UUID) ([]entity.BookingAddon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if b := f.find(bookingID); b != nil {
		return b.Addons, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) ExistsActiveAtSlot(ctx context.Context, date time.Time, startTime string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blocked(date, startTime), nil
}

func (f *fakeBookingRepo) FindBlockedStartTimes(ctx context.Context, date time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var starts []string
	for _, b := range f.bookings {
		if b.BookingDate.Equal(date) && b.Status.BlocksSlot() {
			starts = append(starts, b.StartTime)
		}
	}
	return starts, nil
}

func (f *fakeBookingRepo) SetCheckoutSession(ctx context.Context, bookingID uuid.UUID, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setSessionErr != nil {
		return f.setSessionErr
	}
	b := f.find(bookingID)
	if b == nil {
		return errors.New("booking not found")
	}
	b.CheckoutSessionID = &sessionID
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, expected, next entity.BookingStatus, note *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	b := f.find(bookingID)
	if b == nil || b.Status != expected {
		return repository.ErrStaleStatus
	}
	b.Status = next
	if note != nil {
		b.Notes = note
	}
	return nil
}

func (f *fakeBookingRepo) CancelOrphaned(ctx context.Context, createdBefore time.Time, note string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.orphanSince = createdBefore
	var n int64
	for _, b := range f.bookings {
		if b.Status == entity.BookingStatusPending && b.CheckoutSessionID == nil && b.CreatedAt.Before(createdBefore) {
			b.Status = entity.BookingStatusCancelled
			b.Notes = &note
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email != nil && email != "" && *u.Email == email {
			return u, nil
		}
	}
	for _, u := range f.users {
		if u.Phone != nil && phone != "" && *u.Phone == phone {
			return u, nil
		}
	}
	return nil, nil
}

type fakeThemeRepo struct {
	themes []*entity.Theme
}

func (f *fakeThemeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Theme, error) {
	for _, t := range f.themes {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeThemeRepo) active(occasion *string) []*entity.Theme {
	var out []*entity.Theme
	for _, t := range f.themes {
		if t.IsActive && (occasion == nil || t.Occasion == *occasion) {
			out = append(out, t)
		}
	}
	return out
}

func (f *fakeThemeRepo) FindAll(ctx context.Context, occasion *string, limit, offset int) ([]*entity.Theme, error) {
	all := f.active(occasion)
	if offset >= len(all) {
		return nil, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (f *fakeThemeRepo) CountAll(ctx context.Context, occasion *string) (int64, error) {
	return int64(len(f.active(occasion))), nil
}

type fakeAddonRepo struct {
	addons []*entity.Addon
}

func (f *fakeAddonRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Addon, error) {
	var out []*entity.Addon
	for _, id := range ids {
		for _, a := range f.addons {
			if a.ID == id && a.IsActive {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

func (f *fakeAddonRepo) FindAllActive(ctx context.Context) ([]*entity.Addon, error) {
	var out []*entity.Addon
	for _, a := range f.addons {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeCheckout struct {
	requests []payment.CheckoutRequest
	err      error
	expired  []string

	// onCreate runs before CreateSession returns, e.g. to cancel the caller's ctx
	onCreate func()
}

func (f *fakeCheckout) CreateSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	f.requests = append(f.requests, req)
	if f.onCreate != nil {
		f.onCreate()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &payment.CheckoutSession{
		ID:  "cs_test_" + req.BookingID.String()[:8],
		URL: "https://checkout.stripe.com/c/pay/" + req.BookingID.String(),
	}, nil
}

func (f *fakeCheckout) ExpireSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.expired = append(f.expired, sessionID)
	return nil
}

var (
	themeBirthday = &entity.Theme{
		Base:      entity.Base{ID: uuid.MustParse("11111111-1111-4111-8111-111111111111")},
		Name:      "Pastel Birthday",
		Slug:      "pastel-birthday",
		Occasion:  "birthday",
		BasePrice: 8000,
		Images:    []string{"https://cdn.example.com/pastel.jpg"},
		IsActive:  true,
	}
	themeRetired = &entity.Theme{
		Base:      entity.Base{ID: uuid.MustParse("22222222-2222-4222-8222-222222222222")},
		Name:      "Retro Wedding",
		Slug:      "retro-wedding",
		Occasion:  "wedding",
		BasePrice: 50000,
		IsActive:  false,
	}
	addonBalloons = &entity.Addon{
		Base:     entity.Base{ID: uuid.MustParse("33333333-3333-4333-8333-333333333333")},
		Name:     "Balloon arch",
		Price:    300,
		IsActive: true,
	}
	addonCake = &entity.Addon{
		Base:     entity.Base{ID: uuid.MustParse("44444444-4444-4444-8444-444444444444")},
		Name:     "Cake table",
		Price:    200,
		IsActive: true,
	}
)

type testEnv struct {
	bookings *fakeBookingRepo
	users    *fakeUserRepo
	checkout *fakeCheckout
	idem     *idempotency.MemoryStore
	config   *utils.Config
	repo     *repository.Repository
}

func newTestEnv() *testEnv {
	env := &testEnv{
		bookings: &fakeBookingRepo{},
		users:    &fakeUserRepo{},
		checkout: &fakeCheckout{},
		idem:     idempotency.NewMemoryStore(),
		config: &utils.Config{
			Stripe: utils.StripeConfig{Currency: "inr"},
			Booking: utils.BookingConfig{
				OrphanTTLMinutes:   30,
				IdempotencyTTLMins: 1440,
			},
		},
	}
	env.repo = &repository.Repository{
		User:    env.users,
		Theme:   &fakeThemeRepo{themes: []*entity.Theme{themeBirthday, themeRetired}},
		Addon:   &fakeAddonRepo{addons: []*entity.Addon{addonBalloons, addonCake}},
		Booking: env.bookings,
	}
	return env
}

func (e *testEnv) bookingService() BookingService {
	return NewBookingService(e.repo, e.checkout, e.idem, testClock(), e.config, zap.NewNop())
}
