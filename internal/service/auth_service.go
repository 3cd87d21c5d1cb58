package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"todolist/internal/auth"
	apperrors "todolist/internal/errors"
	"todolist/internal/model"
	"todolist/internal/repository"
	"todolist/internal/validation"
)

const defaultPurgeInterval = time.Hour

const (
	bcryptCost = 10
	// bcrypt only reads the first 72 bytes of a password.
	bcryptMaxBytes = 72
)

// RegisterInput carries the sign-up attributes as received.
type RegisterInput struct {
	Email                string
	Name                 string
	Password             string
	PasswordConfirmation *string
}

// AuthService handles authentication operations.
type AuthService interface {
	// Register creates a user and returns it with a freshly issued token.
	// Validation failures are returned as validation.Errors.
	Register(ctx context.Context, input RegisterInput, aud string) (*model.User, string, error)
	// SignIn checks credentials and returns the user with a fresh token.
	SignIn(ctx context.Context, email, password, aud string) (*model.User, string, error)
	// SignOut revokes the token carried by an Authorization header value.
	// Missing, malformed and already revoked tokens are ignored; only
	// storage failures are returned.
	SignOut(ctx context.Context, authorization string) error
	// Authenticate resolves the user owning a bearer token.
	Authenticate(ctx context.Context, token, aud string) (*model.User, error)
	// StartAllowlistJanitor purges expired allowlist entries every interval
	// until ctx is done. A non-positive interval means one hour.
	StartAllowlistJanitor(ctx context.Context, interval time.Duration)
}

type authService struct {
	users      repository.UserRepository
	userSvc    UserService
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	userSvc UserService,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
) AuthService {
	return &authService{
		users:      users,
		userSvc:    userSvc,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// HashPassword hashes a password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// dummyPasswordHash is compared against when no user matches, so unknown
// emails cost the same bcrypt work as wrong passwords.
var dummyPasswordHash = sync.OnceValue(func() string {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("dummy-password"), bcryptCost)
	return string(hashed)
})

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password)) == nil
}

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxBytes {
		b = b[:bcryptMaxBytes]
	}
	return b
}

func (s *authService) Register(ctx context.Context, input RegisterInput, aud string) (*model.User, string, error) {
	reg := validation.Registration{
		Email:                validation.NormalizeEmail(input.Email),
		Name:                 validation.NormalizeName(input.Name),
		Password:             input.Password,
		PasswordConfirmation: input.PasswordConfirmation,
	}

	taken := false
	if reg.Email != "" {
		exists, err := s.users.ExistsByEmail(ctx, reg.Email)
		if err != nil {
			return nil, "", fmt.Errorf("check email: %w", err)
		}
		taken = exists
	}

	if errs := validation.ValidateRegistration(reg, taken); len(errs) > 0 {
		return nil, "", errs
	}

	hashed, err := HashPassword(reg.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:        reg.Email,
		Name:         reg.Name,
		PasswordHash: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost a race against a concurrent sign-up with the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", validation.EmailTakenError()
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(ctx, user.ID, aud)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) SignIn(ctx context.Context, email, password, aud string) (*model.User, string, error) {
	email = validation.NormalizeEmail(email)
	if email == "" {
		return nil, "", apperrors.ErrUnauthenticated
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			checkPassword(dummyPasswordHash(), password)
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if password == "" || !checkPassword(user.PasswordHash, password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID, aud)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) SignOut(ctx context.Context, authorization string) error {
	raw, ok := auth.ExtractBearer(authorization)
	if !ok {
		return nil
	}
	claims, err := s.jwtService.ValidateToken(raw)
	if err != nil {
		return nil
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil
	}
	return s.tokenStore.Revoke(ctx, claims.ID, claims.AudienceTag(), userID)
}

func (s *authService) Authenticate(ctx context.Context, token, aud string) (*model.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if claims.AudienceTag() != aud {
		return nil, apperrors.ErrUnauthenticated
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	entry, err := s.tokenStore.Lookup(ctx, claims.ID, aud)
	if err != nil {
		if errors.Is(err, auth.ErrTokenNotAllowlisted) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := s.userSvc.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) StartAllowlistJanitor(ctx context.Context, interval time.Duration) {
	go s.janitor(ctx, interval)
}

// janitor deletes expired allowlist entries periodically.
func (s *authService) janitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPurgeInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.tokenStore.PurgeExpired(ctx)
			if err != nil {
				log.Printf("allowlist janitor: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("allowlist janitor: purged %d expired tokens", n)
			}
		}
	}
}

// issueToken signs a token for the user and allowlists its jti.
func (s *authService) issueToken(ctx context.Context, userID uint, aud string) (string, error) {
	issued, err := s.jwtService.Issue(userID, aud)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	if err := s.tokenStore.Allow(ctx, issued, userID); err != nil {
		return "", err
	}
	return issued.Token, nil
}
