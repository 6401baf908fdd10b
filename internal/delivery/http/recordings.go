package http

import (
	"errors"
	"net/http"

	"crm-insights/internal/dto"
	"crm-insights/internal/parser"
	"crm-insights/internal/service"
	"crm-insights/pkg/logger"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupRecordings(base *echo.Group) {
	base.POST("/recordings", h.uploadRecording)
	base.GET("/recordings/:id", h.getRecording)
	base.POST("/recordings/:id/transcription", h.attachTranscription)
	base.GET("/customers/:id/recordings", h.listRecordings)
}

func (h *HttpAPIHandler) uploadRecording(c echo.Context) error {
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

	contentType := fileHeader.Header.Get("Content-Type")
	recording, err := h.service.RecordingService.Upload(ctx, fileHeader.Filename, contentType, fileHeader.Size, src)
	if err != nil {
		switch {
		case errors.Is(err, parser.ErrBadFilename):
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
		case errors.Is(err, service.ErrStorageDisabled):
			return c.JSON(http.StatusServiceUnavailable, dto.NewBaseResponse(http.StatusServiceUnavailable, "object storage is not configured", nil))
		default:
			h.log.ErrorContext(ctx, "recording upload failed",
				logger.StringField("filename", fileHeader.Filename),
				logger.ErrorField(err),
			)
			return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to upload recording", nil))
		}
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "recording uploaded", recording))
}

func (h *HttpAPIHandler) getRecording(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid recording id"))
	}

	recording, err := h.service.RecordingService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrRecordingNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "recording not found", nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to get recording", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("recording", recording))
}

func (h *HttpAPIHandler) attachTranscription(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid recording id"))
	}

	req := new(dto.AttachTranscriptionRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	transcription, err := h.service.RecordingService.AttachTranscription(ctx, id, *req)
	if err != nil {
		if errors.Is(err, service.ErrRecordingNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "recording not found", nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to attach transcription", nil))
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "transcription attached", transcription))
}

func (h *HttpAPIHandler) listRecordings(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid customer id"))
	}

	recordings, err := h.service.RecordingService.ListByCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "customer not found", nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to list recordings", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("recordings", recordings))
}
