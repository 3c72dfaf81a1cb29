package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/services/catalog/internal/service"
	"github.com/codecompiler69/SmartAppointmentBooking/services/catalog/internal/transport"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) Create(c echo.Context) error {
	var req transport.CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, httperr.Validation(map[string]string{"body": "invalid request body"}))
	}

	svc, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, svc)
}

func (h *CatalogHTTP) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return httperr.JSON(c, err)
	}

	svc, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, svc)
}

func (h *CatalogHTTP) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	total, items, err := h.Svc.List(c.Request().Context(), page, size)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "items": items})
}

func (h *CatalogHTTP) ListPublic(c echo.Context) error {
	items, err := h.Svc.ListActive(c.Request().Context())
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) Patch(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return httperr.JSON(c, err)
	}

	var req transport.PatchServiceRequest
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, httperr.Validation(map[string]string{"body": "invalid request body"}))
	}

	svc, err := h.Svc.Patch(c.Request().Context(), id, req)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, svc)
}

func (h *CatalogHTTP) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return httperr.JSON(c, err)
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "service deleted"})
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	res, err := h.Svc.Search(c.Request().Context(), c.QueryParam("q"), page, size)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, httperr.Validation(map[string]string{"id": "must be a positive integer"})
	}
	return uint(id), nil
}
