package models

import "time"

// AvailableSlot is one bookable window, carrying both the contractor-local
// representation and the absolute UTC instants. Slots are derived on every
// request and never persisted.
type AvailableSlot struct {
	Date            string    `json:"date"` // "2006-01-02", contractor-local
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	StartTimeUTC    time.Time `json:"startTimeUtc"`
	EndTimeUTC      time.Time `json:"endTimeUtc"`
	DurationMinutes int       `json:"durationMinutes"`
}

// AvailabilityResponse is the result of a slot-generation request.
// GeneratedAt lets the caller reason about staleness of the derived slots.
type AvailabilityResponse struct {
	Slots       []AvailableSlot `json:"slots"`
	Timezone    string          `json:"timezone"`
	Total       int             `json:"total"`
	GeneratedAt time.Time       `json:"generatedAt"`
}
