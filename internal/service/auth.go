package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/justinjurolan/blogsite/internal/config"
	"github.com/justinjurolan/blogsite/internal/model"
	"github.com/justinjurolan/blogsite/internal/repository"
)

const (
	bcryptCost = 12

	// SessionCookieName holds the signed session token.
	SessionCookieName = "access_token"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email address already in use")
	ErrNoAccount          = errors.New("no account with that email found")
	ErrResetExhausted     = errors.New("password reset limit reached")
	ErrInvalidResetToken  = errors.New("reset token is invalid or expired")
)

// AuthService handles signup, login, session tokens, and the password
// reset flow.
type AuthService struct {
	users        repository.UserRepository
	email        *EmailService
	jwtSecret    []byte
	sessionTTL   time.Duration
	resetTTL     time.Duration
	resetChances int
	isProduction bool

	// now is swappable in tests to exercise token expiry.
	now func() time.Time
}

func NewAuthService(users repository.UserRepository, email *EmailService, cfg *config.Config) *AuthService {
	return &AuthService{
		users:        users,
		email:        email,
		jwtSecret:    []byte(cfg.JWTSecret),
		sessionTTL:   cfg.SessionExpiry,
		resetTTL:     cfg.ResetTokenExpiry,
		resetChances: cfg.ResetChances,
		isProduction: cfg.IsProduction(),
		now:          time.Now,
	}
}

// HashPassword hashes a password with bcrypt.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword checks a plaintext password against a stored hash.
func (s *AuthService) ComparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateJWT creates a signed session token for a user.
func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(s.sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// VerifyJWT validates a session token and returns its claims.
func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// SetJWTCookie writes the session cookie on a response.
func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearJWTCookie expires the session cookie.
func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// Signup registers a new account. The email must not already be in use.
func (s *AuthService) Signup(email, password, username, firstName, lastName string) (*model.User, error) {
	existing, err := s.users.ByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &model.User{
		ID:                  uuid.New().String(),
		Email:               email,
		PasswordHash:        hash,
		Username:            username,
		FirstName:           firstName,
		LastName:            lastName,
		PasswordResetChance: s.resetChances,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	slog.Info("user signed up", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies credentials and returns the user. Any failure, whether
// an unknown email or a wrong password, yields the same error so the
// response does not reveal which accounts exist.
func (s *AuthService) Login(email, password string) (*model.User, error) {
	user, err := s.users.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !s.ComparePassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GenerateResetToken returns a cryptographically random token.
func (s *AuthService) GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// RequestPasswordReset starts the reset flow for an email address. Each
// account has a limited number of reset chances; one is consumed per
// request and once exhausted further resets are refused.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.users.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrNoAccount
		}
		return fmt.Errorf("looking up user: %w", err)
	}

	if user.PasswordResetChance <= 0 {
		return ErrResetExhausted
	}

	token, err := s.GenerateResetToken()
	if err != nil {
		return err
	}

	expiry := s.now().Add(s.resetTTL)
	user.PasswordResetChance--
	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expiry

	if err := s.users.Update(user); err != nil {
		return fmt.Errorf("saving reset token: %w", err)
	}

	s.email.QueueResetEmail(user.Email, token)

	slog.Info("password reset requested",
		"user_id", user.ID,
		"chances_left", user.PasswordResetChance,
	)
	return nil
}

// UserForResetToken resolves an unexpired reset token to its user.
func (s *AuthService) UserForResetToken(token string) (*model.User, error) {
	user, err := s.users.ByResetToken(token, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidResetToken
		}
		return nil, fmt.Errorf("looking up reset token: %w", err)
	}
	return user, nil
}

// CompletePasswordReset sets a new password for the user holding the
// given token. Both the token and the user ID must match so a token
// cannot be replayed against a different account.
func (s *AuthService) CompletePasswordReset(token, userID, newPassword string) error {
	user, err := s.users.ByResetTokenAndID(token, userID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("looking up reset token: %w", err)
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.ResetToken = nil
	user.ResetTokenExpiresAt = nil

	if err := s.users.Update(user); err != nil {
		return fmt.Errorf("saving new password: %w", err)
	}

	slog.Info("password reset completed", "user_id", user.ID)
	return nil
}
