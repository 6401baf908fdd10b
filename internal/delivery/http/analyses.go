package http

import (
	"errors"
	"net/http"

	"crm-insights/internal/dto"
	"crm-insights/internal/service"
	"crm-insights/pkg/logger"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupAnalyses(base *echo.Group) {
	analysisGroup := base.Group("/customers/:id/analyses")
	analysisGroup.POST("", h.runAnalysis)
	analysisGroup.GET("/latest", h.latestAnalysis)
	analysisGroup.GET("/history", h.analysisHistory)
}

func (h *HttpAPIHandler) runAnalysis(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid customer id"))
	}

	analysis, err := h.service.AnalysisService.Analyze(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "customer not found", nil))
		case errors.Is(err, service.ErrAnalysisDisabled):
			return c.JSON(http.StatusServiceUnavailable, dto.NewBaseResponse(http.StatusServiceUnavailable, "AI analysis is not configured", nil))
		default:
			h.log.ErrorContext(ctx, "customer analysis failed", logger.ErrorField(err))
			return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to analyze customer", nil))
		}
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("analysis completed", analysis))
}

func (h *HttpAPIHandler) latestAnalysis(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid customer id"))
	}

	analysis, err := h.service.AnalysisService.Latest(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to get latest analysis", nil))
	}
	if analysis == nil {
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "no analysis found", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("latest analysis", analysis))
}

func (h *HttpAPIHandler) analysisHistory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid customer id"))
	}

	history, err := h.service.AnalysisService.History(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to list analysis history", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("analysis history", history))
}
