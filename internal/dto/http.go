package dto

import "net/http"

type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewBaseResponse(code int, message string, data interface{}) *BaseResponse {
	return &BaseResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewBadRequestResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusBadRequest, message, nil)
}

func NewSuccessResponse(message string, data interface{}) *BaseResponse {
	return NewBaseResponse(http.StatusOK, message, data)
}

// ImportReport summarizes one conversation export upload.
type ImportReport struct {
	CustomerID       string `json:"customerId"`
	CustomerName     string `json:"customerName"`
	ProductName      string `json:"productName"`
	TotalRecords     int    `json:"totalRecords"`
	NewRecords       int    `json:"newRecords"`
	DuplicateRecords int    `json:"duplicateRecords"`
	CannedMessages   int    `json:"cannedMessages"`
}

type CreateCustomerRequest struct {
	Code              string  `json:"code" validate:"required,len=12,numeric"`
	Name              string  `json:"name" validate:"required"`
	Product           string  `json:"product"`
	PurchaseAmount    float64 `json:"purchase_amount" validate:"gte=0"`
	BudgetAmount      float64 `json:"budget_amount" validate:"gte=0"`
	ConsumptionAmount float64 `json:"consumption_amount" validate:"gte=0"`
	RelationshipScore float64 `json:"relationship_score" validate:"gte=0,lte=10"`
	PotentialScore    float64 `json:"potential_score" validate:"gte=0,lte=10"`
}

type UpdateCustomerRequest struct {
	Name              *string  `json:"name"`
	Product           *string  `json:"product"`
	PurchaseAmount    *float64 `json:"purchase_amount" validate:"omitempty,gte=0"`
	BudgetAmount      *float64 `json:"budget_amount" validate:"omitempty,gte=0"`
	ConsumptionAmount *float64 `json:"consumption_amount" validate:"omitempty,gte=0"`
	RelationshipScore *float64 `json:"relationship_score" validate:"omitempty,gte=0,lte=10"`
	PotentialScore    *float64 `json:"potential_score" validate:"omitempty,gte=0,lte=10"`
}

type AttachTranscriptionRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language"`
}
