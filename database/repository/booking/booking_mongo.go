// File: database/repository/booking/booking_mongo.go
package bookingRepo

import (
	"context"
	"time"

	"meetspace/database"
	"meetspace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBookingRepo) ListByRoom(ctx context.Context, roomID int64, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"room_id":    roomID,
		"start_time": bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepo) ListForUser(ctx context.Context, userID string, from time.Time) ([]models.BookingWithRoom, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id":  userID,
			"end_time": bson.M{"$gte": from},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "start_time", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "rooms",
			"localField":   "room_id",
			"foreignField": "id",
			"as":           "room",
		}}},
		{{Key: "$unwind", Value: "$room"}},
		{{Key: "$addFields", Value: bson.M{
			"room_name":     "$room.name",
			"room_location": "$room.location",
			"room_capacity": "$room.capacity",
		}}},
		{{Key: "$project", Value: bson.M{"room": 0}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.BookingWithRoom
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := database.NextID(ctx, "bookings")
	if err != nil {
		return err
	}
	booking.ID = id
	booking.CreatedAt = time.Now()

	_, err = r.coll.InsertOne(ctx, booking)
	if mongo.IsDuplicateKeyError(err) {
		// The unique (room_id, start_time) index is the authoritative
		// conflict check; a duplicate key means we lost the race.
		return ErrSlotTaken
	}
	return err
}

func (r *mongoBookingRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *mongoBookingRepo) DeleteByRoom(ctx context.Context, roomID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{"room_id": roomID})
	return err
}
