package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecompiler69/SmartAppointmentBooking/gateway/internal/routes"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/tokens"
)

func newFilterEnv(t *testing.T) (*tokens.Signer, echo.MiddlewareFunc) {
	t.Helper()
	signer := tokens.NewSigner([]byte("gateway-test-secret"), 15*time.Minute, 24*time.Hour)
	return signer, EdgeAuth(signer, routes.Default())
}

// do runs one request through the filter in front of a recording upstream.
func do(t *testing.T, mw echo.MiddlewareFunc, path, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	upstreamHit := false
	handler := mw(func(c echo.Context) error {
		upstreamHit = true
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))
	return rec, upstreamHit
}

func TestEdgeAuth_PublicPathPassesWithoutToken(t *testing.T) {
	t.Parallel()

	_, mw := newFilterEnv(t)
	rec, hit := do(t, mw, "/api/auth/login", "")
	assert.True(t, hit, "public path must reach upstream")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEdgeAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	_, mw := newFilterEnv(t)
	rec, hit := do(t, mw, "/api/appointments", "")
	assert.False(t, hit)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEdgeAuth_MalformedHeader(t *testing.T) {
	t.Parallel()

	_, mw := newFilterEnv(t)
	for _, header := range []string{"Basic abc", "Bearer", "Bearer   "} {
		rec, hit := do(t, mw, "/api/appointments", header)
		assert.False(t, hit, "header %q", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestEdgeAuth_ForgedToken(t *testing.T) {
	t.Parallel()

	_, mw := newFilterEnv(t)
	forger := tokens.NewSigner([]byte("attacker-secret"), time.Hour, time.Hour)
	token, _, err := forger.IssueAccess("mallory@example.com", []string{"ADMIN"})
	require.NoError(t, err)

	rec, hit := do(t, mw, "/api/users/admin/all", "Bearer "+token)
	assert.False(t, hit)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEdgeAuth_ExpiredTokenIsDistinguishable(t *testing.T) {
	t.Parallel()

	signer, mw := newFilterEnv(t)
	token, _, err := signer.Issue("alice@example.com", []string{"PATIENT"}, -time.Minute)
	require.NoError(t, err)

	rec, hit := do(t, mw, "/api/appointments", "Bearer "+token)
	assert.False(t, hit)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestEdgeAuth_RoleMismatchForbidden(t *testing.T) {
	t.Parallel()

	signer, mw := newFilterEnv(t)
	token, _, err := signer.IssueAccess("alice@example.com", []string{"PATIENT"})
	require.NoError(t, err)

	// Valid PATIENT token on an admin-only prefix: 403, upstream never invoked.
	rec, hit := do(t, mw, "/api/users/admin/x", "Bearer "+token)
	assert.False(t, hit)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEdgeAuth_ValidTokenInjectsIdentity(t *testing.T) {
	t.Parallel()

	signer := tokens.NewSigner([]byte("gateway-test-secret"), 15*time.Minute, 24*time.Hour)
	mw := EdgeAuth(signer, routes.Default())

	token, _, err := signer.IssueAccess("alice@example.com", []string{"PATIENT"})
	require.NoError(t, err)

	e := echo.New()
	var gotEmail, gotRoles string
	handler := mw(func(c echo.Context) error {
		gotEmail = c.Request().Header.Get(HeaderUserEmail)
		gotRoles = c.Request().Header.Get(HeaderUserRoles)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	// A spoofed identity header must be dropped, not forwarded.
	req.Header.Set(HeaderUserEmail, "admin@example.com")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", gotEmail)
	assert.Equal(t, "PATIENT", gotRoles)
}
