// Package auth issues and verifies the bearer tokens staff use to reach
// privileged operations.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hilthontt/powersite/internal/domain"
	"github.com/hilthontt/powersite/internal/infrastructure/configs"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)

// dummyHash keeps unknown usernames as slow as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("powersite-dummy-password"), bcrypt.DefaultCost)

type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type claims struct {
	jwt.RegisteredClaims
	Staff bool `json:"staff"`
}

type Authenticator struct {
	secret []byte
	issuer string
	ttl    time.Duration
	staff  map[string][]byte
	now    func() time.Time
}

func New(cfg configs.AuthConfig) *Authenticator {
	staff := make(map[string][]byte, len(cfg.Staff))
	for _, s := range cfg.Staff {
		staff[s.Username] = []byte(s.PasswordHash)
	}

	return &Authenticator{
		secret: []byte(cfg.SecretKey),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
		staff:  staff,
		now:    time.Now,
	}
}

// WithClock replaces the time source used to stamp and check tokens.
func (a *Authenticator) WithClock(now func() time.Time) *Authenticator {
	a.now = now
	return a
}

// Login checks a staff account's password and issues a token for it.
func (a *Authenticator) Login(username, password string) (Token, error) {
	hash, ok := a.staff[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return Token{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return Token{}, ErrInvalidCredentials
	}
	return a.Issue(username)
}

func (a *Authenticator) Issue(subject string) (Token, error) {
	now := a.now().UTC()
	expiresAt := now.Add(a.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
		Staff: true,
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return Token{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return Token{AccessToken: signed, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}

// Verify parses a signed token into the caller it identifies.
func (a *Authenticator) Verify(raw string) (domain.Caller, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Anonymous, ErrInvalidToken
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Anonymous, ErrExpiredToken
		}
		return domain.Anonymous, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if parsed.Subject == "" {
		return domain.Anonymous, ErrInvalidToken
	}

	return domain.Caller{Subject: parsed.Subject, Privileged: parsed.Staff}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
