package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"stockdash/internal/dto"
	"stockdash/internal/service"
)

func (h *HttpAPIHandler) SetupDashboard(base *echo.Group) {
	base.GET("/tickers", h.listTickers)
	base.GET("/dashboard", h.getDashboard)
}

func (h *HttpAPIHandler) listTickers(c echo.Context) error {
	tickers := h.service.DashboardService.Tickers()
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", tickers))
}

func (h *HttpAPIHandler) getDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.DashboardRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request parameters"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	result, err := h.service.DashboardService.GetDashboard(ctx, *req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDateRange), errors.Is(err, service.ErrUnknownTicker):
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
		case errors.Is(err, service.ErrNoData):
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse(err.Error()))
		default:
			return c.JSON(http.StatusBadGateway, dto.NewBaseResponse(http.StatusBadGateway, "failed to fetch market data", nil))
		}
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", result))
}
