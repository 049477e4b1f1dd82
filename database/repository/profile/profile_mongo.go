// File: database/repository/profile/profile_mongo.go
package profileRepo

import (
	"context"
	"time"

	"meetspace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.Profile
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *mongoProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.Profile
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *mongoProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, profile)
	return err
}

func (r *mongoProfileRepo) UpdateRole(ctx context.Context, id, role string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *mongoProfileRepo) SetTokenHash(ctx context.Context, id, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"token_hash": hash, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *mongoProfileRepo) List(ctx context.Context) ([]models.ProfileWithBookingCount, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "bookings",
			"localField":   "id",
			"foreignField": "user_id",
			"as":           "user_bookings",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"booking_count": bson.M{"$size": "$user_bookings"},
		}}},
		{{Key: "$project", Value: bson.M{"user_bookings": 0, "password_hash": 0, "token_hash": 0}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.ProfileWithBookingCount
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
