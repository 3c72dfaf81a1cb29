package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner() *Signer {
	return NewSigner([]byte("test-signing-secret"), 15*time.Minute, 7*24*time.Hour)
}

func TestSigner_IssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestSigner()

	token, exp, err := svc.IssueAccess("alice@example.com", []string{"PATIENT"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, []string{"PATIENT"}, claims.Roles)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
	require.NotNil(t, claims.IssuedAt)
}

func TestSigner_Verify_Expired_NeverBadSignature(t *testing.T) {
	t.Parallel()

	svc := newTestSigner()
	token, _, err := svc.Issue("alice@example.com", nil, -time.Minute)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.ErrorIs(t, err, ErrExpired)
	assert.NotErrorIs(t, err, ErrBadSignature)

	// Signature was valid, so the subject survives classification.
	require.NotNil(t, claims)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.True(t, svc.IsExpired(token))
}

func TestSigner_Verify_TamperedPayload(t *testing.T) {
	t.Parallel()

	svc := newTestSigner()
	token, _, err := svc.IssueAccess("alice@example.com", []string{"PATIENT"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = svc.Verify(tampered)
	require.Error(t, err)
	assert.True(t, err == ErrBadSignature || err == ErrMalformed, "got %v", err)
}

func TestSigner_Verify_Garbage(t *testing.T) {
	t.Parallel()

	svc := newTestSigner()
	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSigner_Verify_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := newTestSigner().IssueAccess("alice@example.com", nil)
	require.NoError(t, err)

	other := NewSigner([]byte("a-different-secret"), time.Minute, time.Hour)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestSigner_Verify_UnsupportedAlgorithm(t *testing.T) {
	t.Parallel()

	secret := []byte("test-signing-secret")
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	svc := NewSigner(secret, time.Minute, time.Hour)
	_, err = svc.Verify(foreign)
	assert.ErrorIs(t, err, ErrUnsupportedAlg)
}

func TestSigner_IsExpired_ValidToken(t *testing.T) {
	t.Parallel()

	svc := newTestSigner()
	token, _, err := svc.IssueAccess("alice@example.com", nil)
	require.NoError(t, err)
	assert.False(t, svc.IsExpired(token))
}

func TestSigner_Verify_FrozenClock(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	svc := NewSigner([]byte("s"), 10*time.Minute, time.Hour).WithClock(func() time.Time { return base })

	token, exp, err := svc.IssueAccess("bob@example.com", []string{"DOCTOR"})
	require.NoError(t, err)
	assert.Equal(t, base.Add(10*time.Minute), exp)

	// Just before expiry the token verifies, just after it is expired.
	svc.WithClock(func() time.Time { return base.Add(10*time.Minute - time.Second) })
	_, err = svc.Verify(token)
	require.NoError(t, err)

	svc.WithClock(func() time.Time { return base.Add(11 * time.Minute) })
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrExpired)
}
