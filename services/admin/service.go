// Package admin implements the role gate and the admin user surface.
// Authorization is fail-closed: whenever the role cannot be resolved,
// for any reason, the caller is treated as not an admin.
package admin

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	profileRepo "meetspace/database/repository/profile"
	"meetspace/models"
	"meetspace/utils"
)

// ErrUserNotFound is returned by Demote when the target does not exist.
var ErrUserNotFound = errors.New("user not found")

// AdminService defines the authorization gate and user management.
type AdminService interface {
	// IsAdmin reports whether the user holds the admin role. It never
	// errors: any resolution failure reads as false.
	IsAdmin(ctx context.Context, userID string) bool
	// Promote grants the admin role to the account with the given
	// email. Returns false, without error, when no such account exists.
	Promote(ctx context.Context, email string) (bool, error)
	// Demote reverts the user to the plain role.
	Demote(ctx context.Context, userID string) error
	// ListUsers returns all profiles with booking counts, newest first.
	ListUsers(ctx context.Context) ([]models.ProfileWithBookingCount, error)
}

// DefaultAdminService implements AdminService.
type DefaultAdminService struct {
	Profiles profileRepo.ProfileRepository
	// Cache holds cached roles. Nil falls back to the shared client.
	Cache *redis.Client
}

func (s *DefaultAdminService) cache() *redis.Client {
	if s.Cache != nil {
		return s.Cache
	}
	return utils.GetCacheClient()
}

func (s *DefaultAdminService) IsAdmin(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}

	key := utils.RoleCachePrefix + userID
	if role, err := s.cache().Get(ctx, key).Result(); err == nil {
		return role == models.RoleAdmin
	}

	profile, err := s.Profiles.GetByID(ctx, userID)
	if err != nil {
		utils.GetLogger().Debug("role lookup failed, denying admin",
			zap.String("user_id", userID), zap.Error(err))
		return false
	}

	if err := s.cache().Set(ctx, key, profile.Role, utils.RoleCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache role", zap.Error(err))
	}
	return profile.Role == models.RoleAdmin
}

func (s *DefaultAdminService) Promote(ctx context.Context, email string) (bool, error) {
	profile, err := s.Profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.Profiles.UpdateRole(ctx, profile.ID, models.RoleAdmin); err != nil {
		return false, err
	}
	s.invalidate(ctx, profile.ID)

	utils.GetLogger().Info("user promoted to admin",
		zap.String("user_id", profile.ID), zap.String("email", email))
	return true, nil
}

func (s *DefaultAdminService) Demote(ctx context.Context, userID string) error {
	if _, err := s.Profiles.GetByID(ctx, userID); err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.Profiles.UpdateRole(ctx, userID, models.RoleUser); err != nil {
		return err
	}
	s.invalidate(ctx, userID)

	utils.GetLogger().Info("user demoted", zap.String("user_id", userID))
	return nil
}

func (s *DefaultAdminService) ListUsers(ctx context.Context) ([]models.ProfileWithBookingCount, error) {
	return s.Profiles.List(ctx)
}

// invalidate drops the cached role so the change takes effect on the
// next check instead of after the TTL.
func (s *DefaultAdminService) invalidate(ctx context.Context, userID string) {
	if err := s.cache().Del(ctx, utils.RoleCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate role cache",
			zap.String("user_id", userID), zap.Error(err))
	}
}
