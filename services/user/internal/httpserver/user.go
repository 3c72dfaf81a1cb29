package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/services/user/internal/service"
	"github.com/codecompiler69/SmartAppointmentBooking/services/user/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) CreateProfile(c echo.Context) error {
	var req transport.CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, httperr.Validation(map[string]string{"body": "invalid request body"}))
	}

	p, err := h.Svc.CreateProfile(c.Request().Context(), req)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *UserHTTP) GetProfile(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return httperr.JSON(c, err)
	}

	p, err := h.Svc.GetProfile(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *UserHTTP) GetProfileByEmail(c echo.Context) error {
	p, err := h.Svc.GetProfileByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *UserHTTP) UpdateProfile(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return httperr.JSON(c, err)
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, httperr.Validation(map[string]string{"body": "invalid request body"}))
	}

	p, err := h.Svc.UpdateProfile(c.Request().Context(), id, req)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *UserHTTP) DeleteProfile(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return httperr.JSON(c, err)
	}
	if err := h.Svc.DeleteProfile(c.Request().Context(), id); err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile deleted"})
}

func (h *UserHTTP) ListProfiles(c echo.Context) error {
	page, size := pageParams(c)
	result, err := h.Svc.ListProfiles(c.Request().Context(), page, size)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *UserHTTP) CreateDoctorProfile(c echo.Context) error {
	var req transport.CreateDoctorProfileRequest
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, httperr.Validation(map[string]string{"body": "invalid request body"}))
	}

	dp, err := h.Svc.CreateDoctorProfile(c.Request().Context(), req)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, dp)
}

func (h *UserHTTP) GetDoctorProfile(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return httperr.JSON(c, err)
	}

	dp, err := h.Svc.GetDoctorProfile(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, dp)
}

func (h *UserHTTP) ListDoctorProfiles(c echo.Context) error {
	page, size := pageParams(c)
	result, err := h.Svc.ListDoctorProfiles(c.Request().Context(), page, size)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, httperr.Validation(map[string]string{"id": "must be a positive integer"})
	}
	return uint(id), nil
}

func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	return page, size
}
