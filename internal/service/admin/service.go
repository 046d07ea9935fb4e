// Package admin implements the store console: authentication and catalog,
// promotion, category and checkout-method maintenance.
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"jericho-storefront/internal/catalog"
	"jericho-storefront/internal/domain"
	"jericho-storefront/internal/settings"
)

var (
	// ErrInvalidCredentials is returned when username/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
	// ErrLoginDisabled is returned when no admin credential is configured.
	ErrLoginDisabled = errors.New("admin login disabled")
)

const issuer = "jericho-storefront"

// Persister stores the full catalog after every change. It is optional.
type Persister interface {
	Save(ctx context.Context, c catalog.Seed, st settings.Seed) error
}

// Credentials configure the single console account.
type Credentials struct {
	Username     string
	PasswordHash string
	Secret       string
	TokenTTL     time.Duration
}

// Service handles admin login and catalog maintenance. Changes are applied
// one at a time; each is persisted before the next starts.
type Service struct {
	catalog  *catalog.Store
	settings *settings.Store
	persist  Persister
	logger   *log.Logger

	mu sync.Mutex

	username string
	hash     []byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// New creates a Service. persist and logger may be nil.
func New(cat *catalog.Store, st *settings.Store, persist Persister, creds Credentials, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	ttl := creds.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{
		catalog:  cat,
		settings: st,
		persist:  persist,
		logger:   logger,
		username: creds.Username,
		hash:     []byte(creds.PasswordHash),
		secret:   []byte(creds.Secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login checks the credentials and issues an HS256 bearer token.
func (s *Service) Login(username, password string) (string, time.Time, error) {
	if len(s.hash) == 0 || len(s.secret) == 0 {
		return "", time.Time{}, ErrLoginDisabled
	}
	if strings.TrimSpace(username) != s.username {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   s.username,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	s.logger.Printf("admin: login user=%s", s.username)
	return signed, expiresAt, nil
}

// Authenticate validates a bearer token and returns its subject.
func (s *Service) Authenticate(token string) (string, error) {
	if len(s.secret) == 0 || token == "" {
		return "", ErrInvalidToken
	}
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(s.now(), true) || !claims.VerifyIssuer(issuer, true) {
		return "", ErrInvalidToken
	}
	if claims.Subject != s.username {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// HashPassword produces a value suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", required("password")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// change applies one mutation and persists the result. When the save fails
// both stores are put back to how they were before the mutation.
func (s *Service) change(ctx context.Context, what string, mutate func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persist == nil {
		return mutate()
	}
	prevCatalog, prevSettings := s.catalog.Snapshot(), s.settings.Snapshot()
	if err := mutate(); err != nil {
		return err
	}
	if err := s.persist.Save(ctx, s.catalog.Snapshot(), s.settings.Snapshot()); err != nil {
		s.catalog.Restore(prevCatalog)
		s.settings.Restore(prevSettings)
		s.logger.Printf("admin: persist after %s error=%v, change rolled back", what, err)
		return fmt.Errorf("persist %s: %w", what, err)
	}
	return nil
}

func required(field string) error {
	return fmt.Errorf("%w: %s required", domain.ErrInvalidInput, field)
}

func decimalRequired(d *decimal.Decimal, field string) (decimal.Decimal, error) {
	if d == nil {
		return decimal.Zero, required(field)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, field)
	}
	return *d, nil
}
