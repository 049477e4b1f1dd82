// FILE: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Slots are fixed-width and aligned, so one booking per
		// (room, start) is exactly one booking per slot. This index is
		// what makes double-booking impossible under concurrent writes.
		{
			Keys:    bson.D{{Key: "room_id", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_room_start"),
		},
		// Primary query pattern: a user's upcoming bookings.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "end_time", Value: 1}},
			Options: options.Index().SetName("user_end_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
