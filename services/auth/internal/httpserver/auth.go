package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/logging"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/tokens"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/service"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, httperr.Validation(map[string]string{"body": "invalid request body"}))
	}

	resp, err := h.Svc.Register(ctx, req)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, httperr.Validation(map[string]string{"body": "invalid request body"}))
	}

	resp, err := h.Svc.Login(ctx, req)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.RefreshRequest
	if err := c.Bind(&req); err == nil && req.RefreshToken == "" {
		req.RefreshToken = c.QueryParam("refreshToken")
	}
	if req.RefreshToken == "" {
		return httperr.JSON(c, httperr.ErrInvalidToken)
	}

	resp, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	var req transport.RefreshRequest
	if err := c.Bind(&req); err == nil && req.RefreshToken == "" {
		req.RefreshToken = c.QueryParam("refreshToken")
	}

	if req.RefreshToken != "" {
		if err := h.Svc.Logout(ctx, req.RefreshToken); err != nil {
			return httperr.JSON(c, err)
		}
	}

	l.Info("logged out")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	email, ok := c.Get(ctxSubject).(string)
	if !ok || email == "" {
		return httperr.JSON(c, httperr.ErrInvalidToken)
	}

	dto, err := h.Svc.GetCurrentUser(c.Request().Context(), email)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AuthHTTP) VerifyEmail(c echo.Context) error {
	email, err := emailParam(c)
	if err != nil {
		return httperr.JSON(c, err)
	}
	if err := h.Svc.VerifyEmail(c.Request().Context(), email); err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "email verified"})
}

func (h *AuthHTTP) ForgotPassword(c echo.Context) error {
	email, err := emailParam(c)
	if err != nil {
		return httperr.JSON(c, err)
	}
	if err := h.Svc.InitiatePasswordReset(c.Request().Context(), email); err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password reset initiated"})
}

func (h *AuthHTTP) ResetPassword(c echo.Context) error {
	var req transport.ResetPasswordRequest
	if err := c.Bind(&req); err == nil {
		if req.Email == "" {
			req.Email = c.QueryParam("email")
		}
		if req.NewPassword == "" {
			req.NewPassword = c.QueryParam("newPassword")
		}
	}
	if req.Email == "" {
		return httperr.JSON(c, httperr.Validation(map[string]string{"email": "is required"}))
	}

	if err := h.Svc.ResetPassword(c.Request().Context(), req.Email, req.NewPassword); err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password reset"})
}

func emailParam(c echo.Context) (string, error) {
	var req transport.EmailRequest
	if err := c.Bind(&req); err == nil && req.Email == "" {
		req.Email = c.QueryParam("email")
	}
	if req.Email == "" {
		return "", httperr.Validation(map[string]string{"email": "is required"})
	}
	return req.Email, nil
}

const ctxSubject = "subject"

// requireBearer verifies the access token locally, the same check the
// gateway runs, so the auth service stays safe when addressed directly.
func requireBearer(signer *tokens.Signer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
				return httperr.JSON(c, httperr.ErrInvalidToken)
			}

			claims, err := signer.Verify(strings.TrimSpace(header[len(prefix):]))
			if err != nil {
				if errors.Is(err, tokens.ErrExpired) {
					return httperr.JSON(c, httperr.ErrTokenExpired)
				}
				return httperr.JSON(c, httperr.ErrInvalidToken)
			}

			c.Set(ctxSubject, claims.Subject)
			return next(c)
		}
	}
}
