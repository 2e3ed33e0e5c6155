package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

// SlotBlockingStatuses are the statuses that hold a date/start-time slot.
var SlotBlockingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusInProgress,
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

func (s BookingStatus) BlocksSlot() bool {
	for _, b := range SlotBlockingStatuses {
		if s == b {
			return true
		}
	}
	return false
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPartial  PaymentStatus = "PARTIAL"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// PaymentType selects what the hosted checkout collects.
type PaymentType string

const (
	PaymentTypeFull  PaymentType = "FULL"
	PaymentTypeToken PaymentType = "TOKEN"
)

type Coordinates struct {
	Lat float64 `db:"latitude"`
	Lng float64 `db:"longitude"`
}

type Location struct {
	Address     string       `db:"address"`
	City        string       `db:"city"`
	Pincode     string       `db:"pincode"`
	Coordinates *Coordinates `db:"-"`
}

type Booking struct {
	BaseNoDelete
	OrderID           string        `db:"order_id"`
	CustomerID        uuid.UUID     `db:"customer_id"`
	Occasion          string        `db:"occasion"`
	ThemeID           uuid.UUID     `db:"theme_id"`
	BookingDate       time.Time     `db:"booking_date"`
	StartTime         string        `db:"start_time"`
	EndTime           string        `db:"end_time"`
	GuestCount        int           `db:"guest_count"`
	Location          Location      `db:"-"`
	BasePrice         float64       `db:"base_price"`
	AddonTotal        float64       `db:"addon_total"`
	LocationSurcharge float64       `db:"location_surcharge"`
	Taxes             float64       `db:"taxes"`
	TotalAmount       float64       `db:"total_amount"`
	PaidAmount        float64       `db:"paid_amount"`
	PaymentType       PaymentType   `db:"payment_type"`
	Status            BookingStatus `db:"status"`
	PaymentStatus     PaymentStatus `db:"payment_status"`
	CheckoutSessionID *string       `db:"checkout_session_id"`
	SpecialRequests   *string       `db:"special_requests"`
	Notes             *string       `db:"notes"`

	Addons []BookingAddon `db:"-"`
}

type BookingAddon struct {
	BookingID uuid.UUID `db:"booking_id"`
	AddonID   uuid.UUID `db:"addon_id"`
	Name      string    `db:"-"`
	Price     float64   `db:"price"`
}

// BookingFilter narrows booking listings. Nil fields are not filtered on.
type BookingFilter struct {
	CustomerID *uuid.UUID
	Status     *BookingStatus
	Limit      int
	Offset     int
}
