package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"decor-booking/internal/data/entity"
	"decor-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create persists booking and its addons in one transaction. With
	// guardSlot it takes an advisory lock on (date, start time) and fails
	// with ErrSlotTaken when a blocking booking already holds the slot.
	Create(ctx context.Context, booking *entity.Booking, guardSlot bool) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error)
	Count(ctx context.Context, filter entity.BookingFilter) (int64, error)
	FindAddons(ctx context.Context, bookingID uuid.UUID) ([]entity.BookingAddon, error)

	// Slot queries
	ExistsActiveAtSlot(ctx context.Context, date time.Time, startTime string) (bool, error)
	FindBlockedStartTimes(ctx context.Context, date time.Time) ([]string, error)

	SetCheckoutSession(ctx context.Context, bookingID uuid.UUID, sessionID string) error
	// UpdateStatus moves a booking from expected to next. It returns
	// ErrStaleStatus when the row is no longer in expected.
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, expected, next entity.BookingStatus, note *string) error
	CancelOrphaned(ctx context.Context, createdBefore time.Time, note string) (int64, error)
}

const bookingColumns = `id, order_id, customer_id, occasion, theme_id, booking_date, start_time, end_time,
	guest_count, address, city, pincode, latitude, longitude, base_price, addon_total,
	location_surcharge, taxes, total_amount, paid_amount, payment_type, status, payment_status,
	checkout_session_id, special_requests, notes, created_at, updated_at`

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var (
		booking  entity.Booking
		lat, lng *float64
	)

	err := row.Scan(
		&booking.ID,
		&booking.OrderID,
		&booking.CustomerID,
		&booking.Occasion,
		&booking.ThemeID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.GuestCount,
		&booking.Location.Address,
		&booking.Location.City,
		&booking.Location.Pincode,
		&lat,
		&lng,
		&booking.BasePrice,
		&booking.AddonTotal,
		&booking.LocationSurcharge,
		&booking.Taxes,
		&booking.TotalAmount,
		&booking.PaidAmount,
		&booking.PaymentType,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.CheckoutSessionID,
		&booking.SpecialRequests,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat != nil && lng != nil {
		booking.Location.Coordinates = &entity.Coordinates{Lat: *lat, Lng: *lng}
	}

	return &booking, nil
}

func slotLockKey(date time.Time, startTime string) string {
	return "booking-slot:" + date.Format("2006-01-02") + ":" + startTime
}

func blockingStatuses() []string {
	out := make([]string, len(entity.SlotBlockingStatuses))
	for i, s := range entity.SlotBlockingStatuses {
		out[i] = string(s)
	}
	return out
}

const existsActiveQuery = `
	SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE booking_date = $1 AND start_time = $2 AND status = ANY($3::text[])
	)
`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking, guardSlot bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin booking transaction", zap.Error(err))
		return fmt.Errorf("begin booking tx: %w", err)
	}
	// Rollback after Commit is a no-op
	defer tx.Rollback(ctx)

	if guardSlot {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`,
			slotLockKey(booking.BookingDate, booking.StartTime)); err != nil {
			r.log.Error("Failed to lock booking slot",
				zap.Error(err),
				zap.String("date", booking.BookingDate.Format("2006-01-02")),
				zap.String("start_time", booking.StartTime),
			)
			return fmt.Errorf("lock slot %s %s: %w", booking.BookingDate.Format("2006-01-02"), booking.StartTime, err)
		}

		var taken bool
		if err := tx.QueryRow(ctx, existsActiveQuery,
			booking.BookingDate, booking.StartTime, blockingStatuses()).Scan(&taken); err != nil {
			return fmt.Errorf("recheck slot: %w", err)
		}
		if taken {
			return ErrSlotTaken
		}
	}

	var lat, lng *float64
	if c := booking.Location.Coordinates; c != nil {
		lat, lng = &c.Lat, &c.Lng
	}

	query := `INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)`

	_, err = tx.Exec(ctx, query,
		booking.ID,
		booking.OrderID,
		booking.CustomerID,
		booking.Occasion,
		booking.ThemeID,
		booking.BookingDate,
		booking.StartTime,
		booking.EndTime,
		booking.GuestCount,
		booking.Location.Address,
		booking.Location.City,
		booking.Location.Pincode,
		lat,
		lng,
		booking.BasePrice,
		booking.AddonTotal,
		booking.LocationSurcharge,
		booking.Taxes,
		booking.TotalAmount,
		booking.PaidAmount,
		booking.PaymentType,
		booking.Status,
		booking.PaymentStatus,
		booking.CheckoutSessionID,
		booking.SpecialRequests,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
			zap.String("customer_id", booking.CustomerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.OrderID, err)
	}

	for _, addon := range booking.Addons {
		_, err := tx.Exec(ctx,
			`INSERT INTO booking_addons (booking_id, addon_id, price) VALUES ($1, $2, $3)`,
			booking.ID, addon.AddonID, addon.Price,
		)
		if err != nil {
			r.log.Error("Failed to create booking addon",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("addon_id", addon.AddonID.String()),
			)
			return fmt.Errorf("create booking addon %s: %w", addon.AddonID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit booking", zap.Error(err), zap.String("order_id", booking.OrderID))
		return fmt.Errorf("commit booking %s: %w", booking.OrderID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func buildBookingWhere(filter entity.BookingFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *bookingRepository) FindAll(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error) {
	where, args := buildBookingWhere(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + bookingColumns + ` FROM bookings`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context, filter entity.BookingFilter) (int64, error) {
	where, args := buildBookingWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) FindAddons(ctx context.Context, bookingID uuid.UUID) ([]entity.BookingAddon, error) {
	query := `
		SELECT ba.booking_id, ba.addon_id, a.name, ba.price
		FROM booking_addons ba
		JOIN addons a ON a.id = ba.addon_id
		WHERE ba.booking_id = $1
		ORDER BY a.name
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking addons",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find addons for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var addons []entity.BookingAddon
	for rows.Next() {
		var a entity.BookingAddon
		if err := rows.Scan(&a.BookingID, &a.AddonID, &a.Name, &a.Price); err != nil {
			return nil, fmt.Errorf("scan booking addon row: %w", err)
		}
		addons = append(addons, a)
	}

	return addons, rows.Err()
}

func (r *bookingRepository) ExistsActiveAtSlot(ctx context.Context, date time.Time, startTime string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, existsActiveQuery, date, startTime, blockingStatuses()).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check slot",
			zap.Error(err),
			zap.String("date", date.Format("2006-01-02")),
			zap.String("start_time", startTime),
		)
		return false, fmt.Errorf("check slot %s %s: %w", date.Format("2006-01-02"), startTime, err)
	}

	return exists, nil
}

func (r *bookingRepository) FindBlockedStartTimes(ctx context.Context, date time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT start_time
		FROM bookings
		WHERE booking_date = $1 AND status = ANY($2::text[])
	`

	rows, err := r.db.Query(ctx, query, date, blockingStatuses())
	if err != nil {
		r.log.Error("Failed to find blocked start times",
			zap.Error(err),
			zap.String("date", date.Format("2006-01-02")),
		)
		return nil, fmt.Errorf("find blocked start times %s: %w", date.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var starts []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan start time: %w", err)
		}
		starts = append(starts, s)
	}

	return starts, rows.Err()
}

func (r *bookingRepository) SetCheckoutSession(ctx context.Context, bookingID uuid.UUID, sessionID string) error {
	query := `UPDATE bookings SET checkout_session_id = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, sessionID)
	if err != nil {
		r.log.Error("Failed to store checkout session",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("set checkout session for booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, expected, next entity.BookingStatus, note *string) error {
	query := `
		UPDATE bookings
		SET status = $3, notes = COALESCE($4, notes), updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, bookingID, expected, next, note)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(next)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), next, err)
	}

	if result.RowsAffected() == 0 {
		return ErrStaleStatus
	}

	return nil
}

func (r *bookingRepository) CancelOrphaned(ctx context.Context, createdBefore time.Time, note string) (int64, error) {
	query := `
		UPDATE bookings
		SET status = $1, notes = $2, updated_at = NOW()
		WHERE status = $3 AND checkout_session_id IS NULL AND created_at < $4
	`

	result, err := r.db.Exec(ctx, query,
		entity.BookingStatusCancelled, note, entity.BookingStatusPending, createdBefore)
	if err != nil {
		r.log.Error("Failed to cancel orphaned bookings", zap.Error(err))
		return 0, fmt.Errorf("cancel orphaned bookings: %w", err)
	}

	return result.RowsAffected(), nil
}
