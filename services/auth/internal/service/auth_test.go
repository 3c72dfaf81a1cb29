package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/tokens"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/repo"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/transport"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	rp := repo.GormRepo{DB: db}
	require.NoError(t, rp.Migrate(context.Background()))

	signer := tokens.NewSigner([]byte("test-signing-secret"), 15*time.Minute, 7*24*time.Hour)
	return New(rp, signer, nil, nil)
}

func registerAlice(t *testing.T, svc *AuthService) *transport.AuthResponse {
	t.Helper()

	resp, err := svc.Register(context.Background(), transport.RegisterRequest{
		Email:       "alice@example.com",
		Password:    "Password123!",
		FirstName:   "Alice",
		LastName:    "Smith",
		PhoneNumber: "+1555000111",
		Role:        "PATIENT",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	resp := registerAlice(t, svc)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(15*60), resp.ExpiresIn)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, []string{"PATIENT"}, resp.User.Roles)
	assert.False(t, resp.User.EmailVerified)
	assert.NotZero(t, resp.User.ID)

	count, err := svc.Repo.CountRefreshTokensForUser(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The access token is verifiable and carries the subject and role.
	claims, err := svc.Signer.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, []string{"PATIENT"}, claims.Roles)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), transport.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "AnotherPass1!",
		FirstName: "Alice",
		LastName:  "Clone",
		Role:      "PATIENT",
	})
	assert.ErrorIs(t, err, httperr.ErrAlreadyExists)
}

func TestRegister_UnknownRole(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.Register(context.Background(), transport.RegisterRequest{
		Email:     "bob@example.com",
		Password:  "Password123!",
		FirstName: "Bob",
		LastName:  "Jones",
		Role:      "WIZARD",
	})
	assert.ErrorIs(t, err, httperr.ErrNotFound)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   transport.RegisterRequest
		field string
	}{
		{"missing email", transport.RegisterRequest{Password: "Password123!", FirstName: "A", LastName: "B", Role: "PATIENT"}, "email"},
		{"short password", transport.RegisterRequest{Email: "a@b.com", Password: "short", FirstName: "A", LastName: "B", Role: "PATIENT"}, "password"},
		{"missing first name", transport.RegisterRequest{Email: "a@b.com", Password: "Password123!", LastName: "B", Role: "PATIENT"}, "firstName"},
		{"missing role", transport.RegisterRequest{Email: "a@b.com", Password: "Password123!", FirstName: "A", LastName: "B"}, "role"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Register(ctx, tt.req)
			require.ErrorIs(t, err, httperr.ErrValidation)

			var ve *httperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.field)
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	resp := registerAlice(t, svc)
	ctx := context.Background()

	before, err := svc.Repo.CountRefreshTokensForUser(ctx, resp.User.ID)
	require.NoError(t, err)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "alice@example.com", Password: "WrongPassword!"})
	assert.ErrorIs(t, err, httperr.ErrInvalidCredentials)

	// No new refresh token was persisted by the failed attempt.
	after, err := svc.Repo.CountRefreshTokensForUser(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.Login(context.Background(), transport.LoginRequest{Email: "ghost@example.com", Password: "Password123!"})
	assert.ErrorIs(t, err, httperr.ErrNotFound)
}

func TestLogin_SoftDeletedUser(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	resp := registerAlice(t, svc)
	ctx := context.Background()

	user, err := svc.Repo.FindActiveByEmail(ctx, resp.User.Email)
	require.NoError(t, err)
	user.Deleted = true
	require.NoError(t, svc.Repo.SaveUser(ctx, user))

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "alice@example.com", Password: "Password123!"})
	assert.ErrorIs(t, err, httperr.ErrNotFound)
}

func TestLogin_TwiceInvalidatesEarlierTokens(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	resp := registerAlice(t, svc)
	ctx := context.Background()
	creds := transport.LoginRequest{Email: "alice@example.com", Password: "Password123!"}

	first, err := svc.Login(ctx, creds)
	require.NoError(t, err)
	second, err := svc.Login(ctx, creds)
	require.NoError(t, err)

	// Only the latest login's refresh token remains in the ledger.
	count, err := svc.Repo.CountRefreshTokensForUser(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, httperr.ErrInvalidToken)

	_, err = svc.Refresh(ctx, second.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_Rotation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	resp := registerAlice(t, svc)
	ctx := context.Background()
	tokenA := resp.RefreshToken

	rotated, err := svc.Refresh(ctx, tokenA)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.AccessToken)
	tokenB := rotated.RefreshToken
	require.NotEqual(t, tokenA, tokenB)

	// tokenA was consumed by the rotation and must never work again.
	_, err = svc.Refresh(ctx, tokenA)
	assert.ErrorIs(t, err, httperr.ErrInvalidToken)

	// tokenB succeeds exactly once.
	_, err = svc.Refresh(ctx, tokenB)
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, tokenB)
	assert.ErrorIs(t, err, httperr.ErrInvalidToken)
}

func TestRefresh_UnknownToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.Refresh(context.Background(), "never-issued")
	assert.ErrorIs(t, err, httperr.ErrInvalidToken)
}

func TestRefresh_ExpiredTokenIsReaped(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	resp := registerAlice(t, svc)
	ctx := context.Background()

	stale := "stale-refresh-token"
	require.NoError(t, svc.Repo.SaveRefreshToken(ctx, resp.User.ID, stale, time.Now().Add(-time.Hour)))

	_, err := svc.Refresh(ctx, stale)
	assert.ErrorIs(t, err, httperr.ErrTokenExpired)

	// Delete-on-discovery: the expired row is gone, a retry sees a plain
	// invalid token.
	_, err = svc.Refresh(ctx, stale)
	assert.ErrorIs(t, err, httperr.ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	resp := registerAlice(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))

	_, err := svc.Refresh(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, httperr.ErrInvalidToken)

	// Logging out an already-absent token is not an error.
	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))
}

func TestGetCurrentUser(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	registerAlice(t, svc)
	ctx := context.Background()

	dto, err := svc.GetCurrentUser(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", dto.Email)
	assert.Equal(t, []string{"PATIENT"}, dto.Roles)

	_, err = svc.GetCurrentUser(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, httperr.ErrNotFound)
}

func TestVerifyEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	registerAlice(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.VerifyEmail(ctx, "alice@example.com"))

	dto, err := svc.GetCurrentUser(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, dto.EmailVerified)

	assert.ErrorIs(t, svc.VerifyEmail(ctx, "ghost@example.com"), httperr.ErrNotFound)
}

func TestPasswordReset_Flow(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	resp := registerAlice(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.InitiatePasswordReset(ctx, "alice@example.com"))

	user, err := svc.Repo.FindActiveByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, user.PasswordResetToken)
	require.NotNil(t, user.PasswordResetTokenExpiry)

	require.NoError(t, svc.ResetPassword(ctx, "alice@example.com", "NewPassword456!"))

	// Old password no longer works, new one does, and the reset revoked
	// every outstanding refresh token.
	_, err = svc.Login(ctx, transport.LoginRequest{Email: "alice@example.com", Password: "Password123!"})
	assert.ErrorIs(t, err, httperr.ErrInvalidCredentials)

	_, err = svc.Refresh(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, httperr.ErrInvalidToken)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "alice@example.com", Password: "NewPassword456!"})
	assert.NoError(t, err)
}

func TestResetPassword_TooShort(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	registerAlice(t, svc)

	err := svc.ResetPassword(context.Background(), "alice@example.com", "short")
	assert.ErrorIs(t, err, httperr.ErrValidation)
}
