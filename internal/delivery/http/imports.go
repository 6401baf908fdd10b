package http

import (
	"errors"
	"io"
	"net/http"

	"crm-insights/internal/dto"
	"crm-insights/internal/parser"
	"crm-insights/pkg/logger"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupImports(base *echo.Group) {
	importGroup := base.Group("/imports")
	importGroup.POST("/conversations", h.importConversation)
}

func (h *HttpAPIHandler) importConversation(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("missing file upload"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("failed to open uploaded file"))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("failed to read uploaded file"))
	}

	report, err := h.service.ImportService.ImportConversation(ctx, fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, parser.ErrNoCustomerCode) {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
		}
		h.log.ErrorContext(ctx, "conversation import failed",
			logger.StringField("filename", fileHeader.Filename),
			logger.ErrorField(err),
		)
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to import conversation", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("conversation imported", report))
}
