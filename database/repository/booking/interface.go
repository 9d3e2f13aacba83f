package bookingRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"reparaya/database"
	"reparaya/models"
)

// BookingRepository is the read-only view of client bookings consumed by the
// availability subsystem. Bookings are owned by the booking flow; this
// service only subtracts them from open time and checks blockout conflicts
// against them.
type BookingRepository interface {
	GetConfirmedBookings(ctx context.Context, contractorID, startDate, endDate string) ([]models.Booking, error)
	GetConfirmedBookingsForDate(ctx context.Context, contractorID, date string) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("reparaya")
	return &mongoBookingRepo{coll: db.Collection("bookings")}
}
