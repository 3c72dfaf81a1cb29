package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/services/notification/internal/service"
	"github.com/codecompiler69/SmartAppointmentBooking/services/notification/internal/transport"
)

type NotificationHTTP struct {
	Svc *service.NotificationService
}

func (h *NotificationHTTP) SendEmail(c echo.Context) error {
	var req transport.SendEmailRequest
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, httperr.Validation(map[string]string{"body": "invalid request body"}))
	}

	n, err := h.Svc.SendEmail(c.Request().Context(), req)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *NotificationHTTP) SendSMS(c echo.Context) error {
	var req transport.SendSMSRequest
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, httperr.Validation(map[string]string{"body": "invalid request body"}))
	}

	n, err := h.Svc.SendSMS(c.Request().Context(), req)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *NotificationHTTP) ListByUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return httperr.JSON(c, err)
	}

	items, err := h.Svc.ListByUser(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *NotificationHTTP) CountUnread(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return httperr.JSON(c, err)
	}

	count, err := h.Svc.CountUnread(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unread": count})
}

func (h *NotificationHTTP) MarkRead(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return httperr.JSON(c, err)
	}
	if err := h.Svc.MarkRead(c.Request().Context(), id); err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "marked as read"})
}

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, httperr.Validation(map[string]string{"id": "must be a positive integer"})
	}
	return uint(id), nil
}
