package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure modes. An expired-but-correctly-signed token is a
// different failure than a forged one: expired means "refresh", forged means
// "reject outright".
var (
	ErrMalformed      = errors.New("token is malformed")
	ErrBadSignature   = errors.New("token signature is invalid")
	ErrExpired        = errors.New("token has expired")
	ErrUnsupportedAlg = errors.New("token uses an unsupported signing algorithm")
)

type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Signer mints and verifies HS512-signed tokens. Verification is a pure
// function of (token, secret, clock): no I/O, safe to run concurrently, and
// identical at the gateway edge and in the auth service.
type Signer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewSigner(secret []byte, accessTTL, refreshTTL time.Duration) *Signer {
	return &Signer{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock overrides the time source. Tests only.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	s.now = now
	return s
}

func (s *Signer) AccessTTL() time.Duration  { return s.accessTTL }
func (s *Signer) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *Signer) IssueAccess(subject string, roles []string) (string, time.Time, error) {
	return s.Issue(subject, roles, s.accessTTL)
}

// IssueRefresh mints a refresh token. Refresh tokens carry no role claims,
// authorization is decided from the access token alone.
func (s *Signer) IssueRefresh(subject string) (string, time.Time, error) {
	return s.Issue(subject, nil, s.refreshTTL)
}

func (s *Signer) Issue(subject string, roles []string, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(ttl)
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify parses and validates a token, classifying every failure as one of
// ErrMalformed, ErrBadSignature, ErrExpired or ErrUnsupportedAlg. On
// ErrExpired the returned claims are still populated: the signature was
// already checked before expiry was.
func (s *Signer) Verify(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS512.Alg() {
			return nil, ErrUnsupportedAlg
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err == nil {
		return &claims, nil
	}

	switch {
	case errors.Is(err, ErrUnsupportedAlg):
		return nil, ErrUnsupportedAlg
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return &claims, ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, ErrMalformed
	default:
		return nil, ErrMalformed
	}
}

// IsExpired reports whether the token's expiry has passed. Distinct from
// signature validity: a forged token is not "expired", it is invalid.
func (s *Signer) IsExpired(token string) bool {
	claims, err := s.Verify(token)
	if errors.Is(err, ErrExpired) {
		return true
	}
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.Time.After(s.now())
}
