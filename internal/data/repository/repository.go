package repository

import (
	"errors"

	"decor-booking/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrSlotTaken is returned by a guarded booking insert when another
	// blocking booking already holds the same date and start time.
	ErrSlotTaken = errors.New("booking slot already taken")
	// ErrStaleStatus means a conditional status update matched no row.
	ErrStaleStatus = errors.New("booking status changed concurrently")
	// ErrDuplicate wraps unique constraint violations.
	ErrDuplicate = errors.New("duplicate record")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type Repository struct {
	User    UserRepository
	Theme   ThemeRepository
	Addon   AddonRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Theme:   NewThemeRepository(db, log),
		Addon:   NewAddonRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}
