// File: database/repository/profile/interface.go
package profileRepo

import (
	"context"
	"errors"

	"meetspace/database"
	"meetspace/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrProfileNotFound is returned when no profile matches the lookup.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the interface for profile data access.
type ProfileRepository interface {
	// GetByID retrieves a profile by user ID.
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	// GetByEmail retrieves a profile by email.
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	// Create inserts a new profile record.
	Create(ctx context.Context, profile *models.Profile) error
	// UpdateRole sets the profile's role ("user" or "admin").
	UpdateRole(ctx context.Context, id, role string) error
	// SetTokenHash stores the hash of the active session token;
	// an empty hash revokes the session.
	SetTokenHash(ctx context.Context, id, hash string) error
	// List returns all profiles with their booking counts, newest first.
	List(ctx context.Context) ([]models.ProfileWithBookingCount, error)
	// EnsureIndexes creates the collection's indexes.
	EnsureIndexes() error
}

type mongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo constructs a new MongoDB ProfileRepository.
func NewMongoProfileRepo() ProfileRepository {
	return &mongoProfileRepo{coll: database.Collection("profiles")}
}
