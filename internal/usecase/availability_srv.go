package usecase

import (
	"context"
	"fmt"

	"decor-booking/internal/data/repository"
	"decor-booking/internal/dto/request"
	"decor-booking/internal/dto/response"
	"decor-booking/internal/slot"
	"decor-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityService interface {
	CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)
	Slots() []slot.Window
}

type availabilityService struct {
	bookings repository.BookingRepository
	clock    clock
	bypass   bool
	log      *zap.Logger
}

func NewAvailabilityService(bookings repository.BookingRepository, clk clock, bypass bool, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		bookings: bookings,
		clock:    clk,
		bypass:   bypass,
		log:      log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) Slots() []slot.Window {
	return slot.Catalog()
}

// CheckAvailability marks a slot unavailable when a blocking booking exists
// on the same date with the same start time. City and pincode are echoed
// back, every location shares one calendar.
func (s *availabilityService) CheckAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Availability validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	date, err := s.clock.parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	blocked := make(map[string]bool)
	if !s.bypass {
		starts, err := s.bookings.FindBlockedStartTimes(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("check availability for %s: %w", req.Date, err)
		}
		for _, start := range starts {
			blocked[start] = true
		}
	}

	catalog := slot.Catalog()
	resp := &response.AvailabilityResponse{
		Slots: make([]response.TimeSlotAvailability, 0, len(catalog)),
		Metadata: response.AvailabilityMetadata{
			Date:         req.Date,
			City:         req.City,
			Pincode:      req.Pincode,
			TotalSlots:   len(catalog),
			BypassActive: s.bypass,
		},
	}

	for _, w := range catalog {
		available := !blocked[w.StartTime]
		if available {
			resp.Metadata.AvailableSlots++
		}
		resp.Slots = append(resp.Slots, response.TimeSlotAvailability{
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			IsAvailable: available,
		})
	}

	return resp, nil
}
