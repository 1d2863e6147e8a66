package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/hiring-portal/internal/config"
	"github.com/jonathan/hiring-portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var budi = types.Session{UserID: "user_002", Email: "budi@example.com", Name: "Budi Santoso", Role: types.RoleUser}

func newTestJWTService(now time.Time) *JWTService {
	s := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 24})
	s.now = func() time.Time { return now }
	return s
}

func TestJWTService_RoundTrip(t *testing.T) {
	issued := time.Date(2025, 10, 16, 8, 0, 0, 0, time.UTC)
	s := newTestJWTService(issued)

	token, err := s.GenerateToken(budi)
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, budi, claims.GetSession())
	assert.NotEmpty(t, claims.GetTokenID())
	assert.Equal(t, issued.Add(24*time.Hour), claims.GetExpiry().UTC())

	other, err := s.GenerateToken(budi)
	require.NoError(t, err)
	otherClaims, err := s.ValidateToken(other)
	require.NoError(t, err)
	assert.NotEqual(t, claims.GetTokenID(), otherClaims.GetTokenID())
}

func TestJWTService_Expired(t *testing.T) {
	issued := time.Date(2025, 10, 16, 8, 0, 0, 0, time.UTC)
	s := newTestJWTService(issued)
	token, err := s.GenerateToken(budi)
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(25 * time.Hour) }
	_, err = s.ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_Rejects(t *testing.T) {
	s := newTestJWTService(time.Now())
	token, err := s.GenerateToken(budi)
	require.NoError(t, err)

	_, err = s.ValidateToken("")
	assert.Error(t, err)

	_, err = s.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, jwt.ErrTokenMalformed)

	forged := NewJWTService(&config.JWTConfig{Secret: "other-secret", ExpirationHours: 24})
	_, err = forged.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	// "none" algorithm is refused
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Role: types.RoleAdmin})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.ValidateToken(raw)
	assert.Error(t, err)
}

func TestJWTService_Revoke(t *testing.T) {
	now := time.Date(2025, 10, 16, 8, 0, 0, 0, time.UTC)
	s := newTestJWTService(now)
	token, err := s.GenerateToken(budi)
	require.NoError(t, err)
	claims, err := s.ValidateToken(token)
	require.NoError(t, err)

	s.Revoke(claims.GetTokenID(), claims.GetExpiry())
	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// expired revocations are pruned on the next revoke
	s.now = func() time.Time { return now.Add(48 * time.Hour) }
	s.Revoke("another", now.Add(72*time.Hour))
	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Len(t, s.revoked, 1)
}

func TestClaims_CarryNoCredential(t *testing.T) {
	s := newTestJWTService(time.Now())
	token, err := s.GenerateToken(budi)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "password")
	assert.Contains(t, string(payload), `"sub":"user_002"`)
}
