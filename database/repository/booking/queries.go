package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reparaya/models"
)

const opTimeout = 5 * time.Second

func (r *mongoBookingRepo) GetConfirmedBookings(ctx context.Context, contractorID, startDate, endDate string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"contractorId": contractorID,
		"status":       models.BookingConfirmed,
		"date":         bson.M{"$gte": startDate, "$lte": endDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch confirmed bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) GetConfirmedBookingsForDate(ctx context.Context, contractorID, date string) ([]models.Booking, error) {
	return r.GetConfirmedBookings(ctx, contractorID, date, date)
}
