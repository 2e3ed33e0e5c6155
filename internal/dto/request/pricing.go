package request

type PriceQuoteRequest struct {
	Occasion    string   `json:"occasion" validate:"required,max=50"`
	BudgetRange string   `json:"budgetRange" validate:"omitempty,max=20"`
	GuestCount  int      `json:"guestCount" validate:"min=0,max=1000"`
	City        string   `json:"city" validate:"max=100"`
	Addons      []string `json:"addons" validate:"omitempty,max=20,dive,uuid"`
}

type ThemeQuoteRequest struct {
	ThemeID    string   `json:"themeId" validate:"required,uuid"`
	GuestCount int      `json:"guestCount" validate:"min=0,max=1000"`
	City       string   `json:"city" validate:"max=100"`
	Addons     []string `json:"addons" validate:"omitempty,max=20,dive,uuid"`
}

type AvailabilityRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	City    string `json:"city" validate:"max=100"`
	Pincode string `json:"pincode" validate:"omitempty,numeric,len=6"`
}

type ListThemesRequest struct {
	PaginatedRequest
	Occasion string `json:"occasion" validate:"omitempty,max=50"`
}
