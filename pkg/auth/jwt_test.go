package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medarchive-api/internal/model"
)

type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newMemoryDenylist() *memoryDenylist {
	return &memoryDenylist{revoked: make(map[string]bool)}
}

func (d *memoryDenylist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = true
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revoked[jti], nil
}

var testConfig = Config{
	Secret:   "test-secret",
	Issuer:   "medarchive-test",
	Audience: "medarchive-clients",
	Expiry:   time.Hour,
}

func testUser() *model.User {
	return &model.User{
		Base:  model.Base{ID: uuid.New()},
		Email: "anna@example.com",
		Role:  model.RoleDoctor,
	}
}

func TestTokenRoundtrip(t *testing.T) {
	svc := NewJWTService(testConfig, nil)
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(testConfig, nil)

	otherCfg := testConfig
	otherCfg.Secret = "different-secret"
	verifier := NewJWTService(otherCfg, nil)

	token, err := issuer.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), token)
	assert.Error(t, err)
}

func TestValidateRejectsWrongAudience(t *testing.T) {
	issuer := NewJWTService(testConfig, nil)

	otherCfg := testConfig
	otherCfg.Audience = "someone-else"
	verifier := NewJWTService(otherCfg, nil)

	token, err := issuer.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	cfg := testConfig
	cfg.Expiry = -time.Minute
	svc := NewJWTService(cfg, nil)

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService(testConfig, nil)

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestRevokedTokenNoLongerValidates(t *testing.T) {
	svc := NewJWTService(testConfig, newMemoryDenylist())

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(context.Background(), token))

	_, err = svc.ValidateToken(context.Background(), token)
	assert.Error(t, err)
}

func TestRevokeLeavesOtherTokensAlone(t *testing.T) {
	svc := NewJWTService(testConfig, newMemoryDenylist())

	first, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)
	second, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(context.Background(), first))

	_, err = svc.ValidateToken(context.Background(), second)
	assert.NoError(t, err)
}
