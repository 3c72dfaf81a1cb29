package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/services/appointment/internal/service"
	"github.com/codecompiler69/SmartAppointmentBooking/services/appointment/internal/transport"
)

type AppointmentHTTP struct {
	Svc *service.AppointmentService
}

func (h *AppointmentHTTP) Create(c echo.Context) error {
	var req transport.CreateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, httperr.Validation(map[string]string{"body": "invalid request body"}))
	}

	a, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *AppointmentHTTP) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return httperr.JSON(c, err)
	}

	a, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AppointmentHTTP) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return httperr.JSON(c, err)
	}

	var req transport.UpdateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, httperr.Validation(map[string]string{"body": "invalid request body"}))
	}

	a, err := h.Svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AppointmentHTTP) Cancel(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return httperr.JSON(c, err)
	}

	var req transport.CancelRequest
	_ = c.Bind(&req)

	a, err := h.Svc.Cancel(c.Request().Context(), id, req.Reason)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AppointmentHTTP) ListByPatient(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return httperr.JSON(c, err)
	}

	items, err := h.Svc.ListByPatient(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AppointmentHTTP) ListByDoctor(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return httperr.JSON(c, err)
	}

	items, err := h.Svc.ListByDoctor(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, httperr.Validation(map[string]string{name: "must be a positive integer"})
	}
	return uint(id), nil
}
