package models

import "time"

// BookingStatus is the lifecycle state of a booking. Only confirmed bookings
// block availability.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking is a client reservation against a contractor's schedule. This
// service reads bookings to subtract them from availability; it never
// creates, updates or cancels them.
type Booking struct {
	ID           string        `bson:"id" json:"id"`
	ContractorID string        `bson:"contractorId" json:"contractorId"`
	ClientID     string        `bson:"clientId" json:"clientId"`
	Date         string        `bson:"date" json:"date"` // "2006-01-02", contractor-local
	StartTime    string        `bson:"startTime" json:"startTime"`
	EndTime      string        `bson:"endTime" json:"endTime"`
	Status       BookingStatus `bson:"status" json:"status"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
}
