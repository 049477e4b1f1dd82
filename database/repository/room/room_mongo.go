// File: database/repository/room/room_mongo.go
package roomRepo

import (
	"context"
	"time"

	"meetspace/database"
	"meetspace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoRoomRepo) List(ctx context.Context) ([]models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rooms []models.Room
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *mongoRoomRepo) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var room models.Room
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *mongoRoomRepo) Create(ctx context.Context, room *models.Room) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := database.NextID(ctx, "rooms")
	if err != nil {
		return err
	}
	room.ID = id
	room.CreatedAt = time.Now()

	_, err = r.coll.InsertOne(ctx, room)
	return err
}

func (r *mongoRoomRepo) Update(ctx context.Context, room *models.Room) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":     room.Name,
		"location": room.Location,
		"capacity": room.Capacity,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": room.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *mongoRoomRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrRoomNotFound
	}
	return nil
}
