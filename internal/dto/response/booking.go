package response

import (
	"time"

	"decor-booking/internal/data/entity"
)

type TimeSlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LocationResponse struct {
	Address     string               `json:"address"`
	City        string               `json:"city"`
	Pincode     string               `json:"pincode"`
	Coordinates *CoordinatesResponse `json:"coordinates,omitempty"`
}

type BookingAddonResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Price float64 `json:"price"`
}

type BookingResponse struct {
	ID                string                 `json:"id"`
	OrderID           string                 `json:"orderId"`
	CustomerID        string                 `json:"customerId"`
	Occasion          string                 `json:"occasion"`
	ThemeID           string                 `json:"themeId"`
	Date              string                 `json:"date"`
	TimeSlot          TimeSlotResponse       `json:"timeSlot"`
	Location          LocationResponse       `json:"location"`
	GuestCount        int                    `json:"guestCount"`
	Addons            []BookingAddonResponse `json:"addons"`
	BasePrice         float64                `json:"basePrice"`
	AddonTotal        float64                `json:"addonTotal"`
	LocationSurcharge float64                `json:"locationSurcharge"`
	Taxes             float64                `json:"taxes"`
	TotalAmount       float64                `json:"totalAmount"`
	PaidAmount        float64                `json:"paidAmount"`
	PaymentType       entity.PaymentType     `json:"paymentType"`
	Status            entity.BookingStatus   `json:"status"`
	PaymentStatus     entity.PaymentStatus   `json:"paymentStatus"`
	SpecialRequests   *string                `json:"specialRequests,omitempty"`
	Notes             *string                `json:"notes,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

type CreateBookingResponse struct {
	Booking        BookingResponse    `json:"booking"`
	CheckoutURL    string             `json:"checkoutUrl"`
	SessionID      string             `json:"sessionId"`
	PriceBreakdown PriceQuoteResponse `json:"priceBreakdown"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:         b.ID.String(),
		OrderID:    b.OrderID,
		CustomerID: b.CustomerID.String(),
		Occasion:   b.Occasion,
		ThemeID:    b.ThemeID.String(),
		Date:       b.BookingDate.Format("2006-01-02"),
		TimeSlot: TimeSlotResponse{
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		},
		Location: LocationResponse{
			Address: b.Location.Address,
			City:    b.Location.City,
			Pincode: b.Location.Pincode,
		},
		GuestCount:        b.GuestCount,
		Addons:            make([]BookingAddonResponse, 0, len(b.Addons)),
		BasePrice:         b.BasePrice,
		AddonTotal:        b.AddonTotal,
		LocationSurcharge: b.LocationSurcharge,
		Taxes:             b.Taxes,
		TotalAmount:       b.TotalAmount,
		PaidAmount:        b.PaidAmount,
		PaymentType:       b.PaymentType,
		Status:            b.Status,
		PaymentStatus:     b.PaymentStatus,
		SpecialRequests:   b.SpecialRequests,
		Notes:             b.Notes,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}

	if c := b.Location.Coordinates; c != nil {
		resp.Location.Coordinates = &CoordinatesResponse{Lat: c.Lat, Lng: c.Lng}
	}

	for _, a := range b.Addons {
		resp.Addons = append(resp.Addons, BookingAddonResponse{
			ID:    a.AddonID.String(),
			Name:  a.Name,
			Price: a.Price,
		})
	}

	return resp
}
