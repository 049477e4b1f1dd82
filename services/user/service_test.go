package user

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	profileRepo "meetspace/database/repository/profile"
	"meetspace/models"
	"meetspace/utils"
)

type memProfileRepo struct {
	byID    map[string]*models.Profile
	byEmail map[string]string
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{byID: make(map[string]*models.Profile), byEmail: make(map[string]string)}
}

func (m *memProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	id, ok := m.byEmail[email]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	return m.GetByID(ctx, id)
}

func (m *memProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	cp := *profile
	m.byID[profile.ID] = &cp
	m.byEmail[profile.Email] = profile.ID
	return nil
}

func (m *memProfileRepo) UpdateRole(ctx context.Context, id, role string) error {
	p, ok := m.byID[id]
	if !ok {
		return profileRepo.ErrProfileNotFound
	}
	p.Role = role
	return nil
}

func (m *memProfileRepo) SetTokenHash(ctx context.Context, id, hash string) error {
	p, ok := m.byID[id]
	if !ok {
		return profileRepo.ErrProfileNotFound
	}
	p.TokenHash = hash
	return nil
}

func (m *memProfileRepo) List(ctx context.Context) ([]models.ProfileWithBookingCount, error) {
	return nil, nil
}

func (m *memProfileRepo) EnsureIndexes() error { return nil }

func newTestService(t *testing.T) (*DefaultUserService, *memProfileRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := newMemProfileRepo()
	return &DefaultUserService{Profiles: repo, AuthCache: client}, repo, mr
}

func TestRegister(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	profile, err := svc.Register(ctx, models.RegisterRequest{
		Email: "ada@example.com", Password: "correct-horse", FullName: "Ada",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, models.RoleUser, profile.Role)
	assert.NotEqual(t, "correct-horse", profile.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte("correct-horse")))

	stored, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, stored.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, models.RegisterRequest{Email: "ada@example.com", Password: "other-pass"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	svc, repo, mr := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, models.RegisterRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	resp, err := svc.Authenticate(ctx, models.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, registered.ID, resp.Profile.ID)

	// The token round-trips to the user ID.
	sub, err := utils.ExtractIDFromToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, sub)

	// Its hash is stored on the profile and in the auth cache.
	stored, err := repo.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.HashToken(resp.Token), stored.TokenHash)

	cached, err := mr.Get(utils.AuthCachePrefix + registered.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.HashToken(resp.Token), cached)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, models.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRevoke(t *testing.T) {
	svc, repo, mr := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, models.RegisterRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, models.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, registered.ID))

	stored, err := repo.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.TokenHash)
	assert.False(t, mr.Exists(utils.AuthCachePrefix+registered.ID))
}
