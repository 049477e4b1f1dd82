// Package user owns account registration and session issuance. A login
// mints a JWT whose hash is kept both in the auth cache and on the
// profile document, so sessions survive a cache flush and can be
// revoked from either side.
package user

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	profileRepo "meetspace/database/repository/profile"
	"meetspace/models"
	"meetspace/utils"
)

// TokenTTL is how long a session token stays valid.
const TokenTTL = 72 * time.Hour

var (
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrInvalidCredentials is returned on a failed login. The message
	// does not reveal whether the email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserService defines account and session operations.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.Profile, error)
	Authenticate(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	// Revoke invalidates the user's active session.
	Revoke(ctx context.Context, userID string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Profiles profileRepo.ProfileRepository
	// AuthCache holds token hashes. Nil falls back to the shared client.
	AuthCache *redis.Client
}

func (s *DefaultUserService) cache() *redis.Client {
	if s.AuthCache != nil {
		return s.AuthCache
	}
	return utils.GetAuthCacheClient()
}

func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.Profile, error) {
	if _, err := s.Profiles.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, profileRepo.ErrProfileNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile := &models.Profile{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Username:     req.Username,
		FullName:     req.FullName,
		Role:         models.RoleUser,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("user registered",
		zap.String("user_id", profile.ID), zap.String("email", profile.Email))
	return profile, nil
}

func (s *DefaultUserService) Authenticate(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	profile, err := s.Profiles.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(profile.ID, profile.Email, TokenTTL)
	if err != nil {
		return nil, err
	}
	tokenHash := utils.HashToken(token)

	if err := s.Profiles.SetTokenHash(ctx, profile.ID, tokenHash); err != nil {
		return nil, err
	}
	if err := s.cache().Set(ctx, utils.AuthCachePrefix+profile.ID, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache session token hash",
			zap.String("user_id", profile.ID), zap.Error(err))
	}

	utils.GetLogger().Info("user authenticated", zap.String("user_id", profile.ID))
	profile.TokenHash = tokenHash
	return &models.AuthResponse{Token: token, Profile: *profile}, nil
}

func (s *DefaultUserService) Revoke(ctx context.Context, userID string) error {
	if err := s.Profiles.SetTokenHash(ctx, userID, ""); err != nil {
		return err
	}
	if err := s.cache().Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("failed to drop cached session",
			zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}
