package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenExpiry is the lifetime of an issued token.
const DefaultTokenExpiry = 24 * time.Hour

const bearerPrefix = "Bearer "

// Claims represents JWT claims. Subject holds the user id and ID the
// allowlisted token id (jti).
type Claims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid subject")
	}
	return uint(id), nil
}

// AudienceTag returns the single audience the token was issued for, or "".
func (c *Claims) AudienceTag() string {
	if len(c.Audience) == 0 {
		return ""
	}
	return c.Audience[0]
}

// IssuedToken is a signed token together with the values to allowlist.
type IssuedToken struct {
	Token     string
	JTI       string
	Aud       string
	ExpiresAt time.Time
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWTService creates a JWT service with the given secret, token lifetime
// and clock. A nil clock means time.Now.
func NewJWTService(secret string, expiry time.Duration, now func() time.Time) *JWTService {
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	if now == nil {
		now = time.Now
	}
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
		now:    now,
	}
}

// Issue signs a new token for the user with a fresh random jti.
func (s *JWTService) Issue(userID uint, aud string) (*IssuedToken, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ID:        generateTokenID(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if aud != "" {
		claims.Audience = jwt.ClaimStrings{aud}
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &IssuedToken{
		Token:     token,
		JTI:       claims.ID,
		Aud:       aud,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ValidateToken verifies signature and expiry and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ID == "" {
		return nil, errors.New("token ID not found")
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}

	return claims, nil
}

// ExtractBearer returns the token of an "Authorization: Bearer <token>"
// header value.
func ExtractBearer(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// BearerHeader formats a token for the Authorization header.
func BearerHeader(token string) string {
	return bearerPrefix + token
}

// generateTokenID generates a unique random token ID.
func generateTokenID() string {
	return uuid.NewString()
}
