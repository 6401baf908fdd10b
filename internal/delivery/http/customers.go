package http

import (
	"errors"
	"net/http"
	"strconv"

	"crm-insights/internal/dto"
	"crm-insights/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupCustomers(base *echo.Group) {
	customerGroup := base.Group("/customers")
	customerGroup.GET("", h.listCustomers)
	customerGroup.POST("", h.createCustomer)
	customerGroup.GET("/:id", h.getCustomer)
	customerGroup.PUT("/:id", h.updateCustomer)
	customerGroup.DELETE("/:id", h.deleteCustomer)
	customerGroup.GET("/:id/interactions", h.listInteractions)
}

func (h *HttpAPIHandler) listCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	customers, err := h.service.CustomerService.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to list customers", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("customers", customers))
}

func (h *HttpAPIHandler) createCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.CreateCustomerRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	customer, err := h.service.CustomerService.Create(ctx, *req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerExists) {
			return c.JSON(http.StatusConflict, dto.NewBaseResponse(http.StatusConflict, "customer already exists", nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to create customer", nil))
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "customer created", customer))
}

func (h *HttpAPIHandler) getCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid customer id"))
	}

	customer, err := h.service.CustomerService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "customer not found", nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to get customer", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("customer", customer))
}

func (h *HttpAPIHandler) updateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid customer id"))
	}

	req := new(dto.UpdateCustomerRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	customer, err := h.service.CustomerService.Update(ctx, id, *req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "customer not found", nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to update customer", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("customer updated", customer))
}

func (h *HttpAPIHandler) deleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid customer id"))
	}

	if err := h.service.CustomerService.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "customer not found", nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to delete customer", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("customer deleted", nil))
}

func (h *HttpAPIHandler) listInteractions(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid customer id"))
	}

	interactions, err := h.service.CustomerService.Interactions(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "customer not found", nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to list interactions", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("interactions", interactions))
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
