package response

type TimeSlotAvailability struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

type AvailabilityMetadata struct {
	Date           string `json:"date"`
	City           string `json:"city,omitempty"`
	Pincode        string `json:"pincode,omitempty"`
	TotalSlots     int    `json:"totalSlots"`
	AvailableSlots int    `json:"availableSlots"`
	BypassActive   bool   `json:"bypassActive"`
}

type AvailabilityResponse struct {
	Slots    []TimeSlotAvailability `json:"slots"`
	Metadata AvailabilityMetadata   `json:"metadata"`
}
