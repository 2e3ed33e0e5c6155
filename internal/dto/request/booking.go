package request

type TimeSlotRequest struct {
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"required,clock"`
}

type CoordinatesRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

type LocationRequest struct {
	Address     string              `json:"address" validate:"required,min=5,max=500"`
	City        string              `json:"city" validate:"required,max=100"`
	Pincode     string              `json:"pincode" validate:"required,numeric,len=6"`
	Coordinates *CoordinatesRequest `json:"coordinates,omitempty" validate:"omitempty"`
}

type CustomerInfoRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,min=10,max=15"`
}

type CreateBookingRequest struct {
	Occasion        string               `json:"occasion" validate:"required,max=50"`
	ThemeID         string               `json:"themeId" validate:"required,uuid"`
	Date            string               `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot        *TimeSlotRequest     `json:"timeSlot" validate:"required"`
	Location        *LocationRequest     `json:"location" validate:"required"`
	GuestCount      int                  `json:"guestCount" validate:"required,min=1,max=1000"`
	CustomerInfo    *CustomerInfoRequest `json:"customerInfo" validate:"required"`
	Addons          []string             `json:"addons" validate:"omitempty,max=20,dive,uuid"`
	PaymentType     string               `json:"paymentType" validate:"omitempty,oneof=FULL TOKEN"`
	SpecialRequests *string              `json:"specialRequests,omitempty" validate:"omitempty,max=1000"`
}

type ListBookingsRequest struct {
	PaginatedRequest
	CustomerID string `json:"customerId" validate:"omitempty,uuid"`
	Status     string `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED IN_PROGRESS COMPLETED CANCELLED"`
}

type UpdateBookingStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=PENDING CONFIRMED IN_PROGRESS COMPLETED CANCELLED"`
	Note   *string `json:"note,omitempty" validate:"omitempty,max=500"`
}
