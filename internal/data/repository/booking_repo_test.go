package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"decor-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestBuildBookingWhere(t *testing.T) {
	customer := uuid.MustParse("7b0c7c1e-2f7a-4b8e-9a49-5a1d1f3b2c10")
	pending := entity.BookingStatusPending

	tests := []struct {
		name      string
		filter    entity.BookingFilter
		wantWhere string
		wantArgs  int
	}{
		{"none", entity.BookingFilter{}, "", 0},
		{"customer", entity.BookingFilter{CustomerID: &customer}, " WHERE customer_id = $1", 1},
		{"status", entity.BookingFilter{Status: &pending}, " WHERE status = $1", 1},
		{"both", entity.BookingFilter{CustomerID: &customer, Status: &pending}, " WHERE customer_id = $1 AND status = $2", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildBookingWhere(tt.filter)
			if where != tt.wantWhere {
				t.Errorf("where = %q, want %q", where, tt.wantWhere)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args = %v", args)
			}
		})
	}

	_, args := buildBookingWhere(entity.BookingFilter{CustomerID: &customer, Status: &pending})
	if args[1] != "PENDING" {
		t.Errorf("status arg = %#v, want plain string", args[1])
	}
}

func TestSlotLockKey(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := slotLockKey(date, "14:00"); got != "booking-slot:2026-03-10:14:00" {
		t.Errorf("key = %q", got)
	}
	if slotLockKey(date, "09:00") == slotLockKey(date.AddDate(0, 0, 1), "09:00") {
		t.Error("different dates share a lock key")
	}
}

func TestBlockingStatuses(t *testing.T) {
	got := blockingStatuses()
	want := []string{"PENDING", "CONFIRMED", "IN_PROGRESS"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("blockingStatuses() = %v, want %v", got, want)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
	if !isUniqueViolation(dup) {
		t.Error("wrapped 23505 not detected")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) || isUniqueViolation(errors.New("boom")) {
		t.Error("non-unique errors detected as unique violations")
	}
}
