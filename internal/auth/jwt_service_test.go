package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := NewJWTService("test-secret", time.Hour, fixedClock(now))

	issued, err := svc.Issue(42, "ios")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.NotEmpty(t, issued.JTI)
	assert.Equal(t, "ios", issued.Aud)
	assert.Equal(t, now.Add(time.Hour), issued.ExpiresAt.UTC())

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, issued.JTI, claims.ID)
	assert.Equal(t, "ios", claims.AudienceTag())
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, nil)

	first, err := svc.Issue(1, "")
	require.NoError(t, err)
	second, err := svc.Issue(1, "")
	require.NoError(t, err)

	assert.NotEqual(t, first.JTI, second.JTI)
	assert.NotEqual(t, first.Token, second.Token)
}

func TestJWTService_ValidateRejects(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := NewJWTService("test-secret", time.Hour, fixedClock(now))
	issued, err := svc.Issue(7, "")
	require.NoError(t, err)

	t.Run("expired token", func(t *testing.T) {
		later := NewJWTService("test-secret", time.Hour, fixedClock(now.Add(2*time.Hour)))
		_, err := later.ValidateToken(issued.Token)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret", time.Hour, fixedClock(now))
		_, err := other.ValidateToken(issued.Token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("missing jti", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("unsigned token", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ID:        "abc",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}

func TestExtractBearer(t *testing.T) {
	token, ok := ExtractBearer("Bearer abc.def.ghi")
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	_, ok = ExtractBearer("abc.def.ghi")
	assert.False(t, ok)

	_, ok = ExtractBearer("Bearer ")
	assert.False(t, ok)

	_, ok = ExtractBearer("")
	assert.False(t, ok)

	assert.Equal(t, "Bearer abc", BearerHeader("abc"))
}
