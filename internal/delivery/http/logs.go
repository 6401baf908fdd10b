package http

import (
	"net/http"

	"crm-insights/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupLogs(base *echo.Group) {
	base.GET("/logs", h.recentLogs)
}

func (h *HttpAPIHandler) recentLogs(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("recent logs", h.log.Recent()))
}
