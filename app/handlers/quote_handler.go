// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/quoteforge/quoteforge/app/dto"
	"github.com/quoteforge/quoteforge/app/middleware"
	businessflow "github.com/quoteforge/quoteforge/business_flow"
	"github.com/quoteforge/quoteforge/utils"
)

// QuoteHandlerInterface defines the contract for quote handlers
type QuoteHandlerInterface interface {
	GenerateQuote(c fiber.Ctx) error
	GetQuote(c fiber.Ctx) error
	ListQuotes(c fiber.Ctx) error
	SendQuote(c fiber.Ctx) error
	AcceptQuote(c fiber.Ctx) error
	DeclineQuote(c fiber.Ctx) error
}

// QuoteHandler handles quote-related HTTP requests
type QuoteHandler struct {
	quoteFlow businessflow.QuoteFlow
	validator *validator.Validate
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteFlow businessflow.QuoteFlow) *QuoteHandler {
	return &QuoteHandler{
		quoteFlow: quoteFlow,
		validator: validator.New(),
	}
}

func (h *QuoteHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *QuoteHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// GenerateQuote handles quote generation for a project
func (h *QuoteHandler) GenerateQuote(c fiber.Ctx) error {
	customerID, ok := c.Locals("customer_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.GenerateQuoteRequest{
		ProjectUUID: c.Params("uuid"),
		CustomerID:  customerID,
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", h.validationMessages(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.quoteFlow.GenerateQuote(h.createRequestContext(c, "/api/v1/projects/"+req.ProjectUUID+"/quote"), &req, metadata)
	if err != nil {
		if businessflow.IsCustomerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer not found", "CUSTOMER_NOT_FOUND", nil)
		}
		if businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer account is inactive", "ACCOUNT_INACTIVE", nil)
		}
		if businessflow.IsProjectNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Project not found", "PROJECT_NOT_FOUND", nil)
		}
		if businessflow.IsProjectAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Project access denied", "PROJECT_ACCESS_DENIED", nil)
		}
		if businessflow.IsDuplicateActiveQuote(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "An active quote already exists for this project", "DUPLICATE_ACTIVE_QUOTE", nil)
		}

		log.Println("Quote generation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Quote generation failed", "QUOTE_GENERATION_FAILED", nil)
	}

	middleware.ObserveQuoteGenerated(result.Quote.ProjectType)

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result.Quote)
}

// GetQuote handles fetching a single quote
func (h *QuoteHandler) GetQuote(c fiber.Ctx) error {
	customerID, ok := c.Locals("customer_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.GetQuoteRequest{
		UUID:       c.Params("uuid"),
		CustomerID: customerID,
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", h.validationMessages(err))
	}

	result, err := h.quoteFlow.GetQuote(h.createRequestContext(c, "/api/v1/quotes/"+req.UUID), &req)
	if err != nil {
		return h.quoteLookupError(c, err, "Quote retrieval failed", "QUOTE_RETRIEVAL_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Quote retrieved successfully", result.Quote)
}

// ListQuotes handles listing the caller's quotes
func (h *QuoteHandler) ListQuotes(c fiber.Ctx) error {
	customerID, ok := c.Locals("customer_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	req := dto.ListQuotesRequest{
		CustomerID: customerID,
		Page:       page,
		PageSize:   pageSize,
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", h.validationMessages(err))
	}

	result, err := h.quoteFlow.ListQuotes(h.createRequestContext(c, "/api/v1/quotes"), &req)
	if err != nil {
		log.Println("Quote listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Quote listing failed", "QUOTE_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Quotes retrieved successfully", result)
}

// SendQuote handles marking a quote as sent
func (h *QuoteHandler) SendQuote(c fiber.Ctx) error {
	customerID, ok := c.Locals("customer_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.SendQuoteRequest{
		UUID:       c.Params("uuid"),
		CustomerID: customerID,
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", h.validationMessages(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.quoteFlow.SendQuote(h.createRequestContext(c, "/api/v1/quotes/"+req.UUID+"/send"), &req, metadata)
	if err != nil {
		if businessflow.IsInvalidQuoteTransition(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Quote cannot be sent in its current status", "INVALID_QUOTE_TRANSITION", nil)
		}
		return h.quoteLookupError(c, err, "Quote send failed", "QUOTE_SEND_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result.Quote)
}

// AcceptQuote handles quote acceptance
func (h *QuoteHandler) AcceptQuote(c fiber.Ctx) error {
	customerID, ok := c.Locals("customer_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.AcceptQuoteRequest{
		UUID:       c.Params("uuid"),
		CustomerID: customerID,
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", h.validationMessages(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.quoteFlow.AcceptQuote(h.createRequestContext(c, "/api/v1/quotes/"+req.UUID+"/accept"), &req, metadata)
	if err != nil {
		if businessflow.IsQuoteExpired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Quote validity window has passed", "QUOTE_EXPIRED", nil)
		}
		if businessflow.IsInvalidQuoteTransition(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Quote cannot be accepted in its current status", "INVALID_QUOTE_TRANSITION", nil)
		}
		return h.quoteLookupError(c, err, "Quote acceptance failed", "QUOTE_ACCEPT_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result.Quote)
}

// DeclineQuote handles quote decline with an optional reason
func (h *QuoteHandler) DeclineQuote(c fiber.Ctx) error {
	customerID, ok := c.Locals("customer_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	var req dto.DeclineQuoteRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
		}
	}
	req.UUID = c.Params("uuid")
	req.CustomerID = customerID

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", h.validationMessages(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.quoteFlow.DeclineQuote(h.createRequestContext(c, "/api/v1/quotes/"+req.UUID+"/decline"), &req, metadata)
	if err != nil {
		if businessflow.IsInvalidQuoteTransition(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Quote cannot be declined in its current status", "INVALID_QUOTE_TRANSITION", nil)
		}
		return h.quoteLookupError(c, err, "Quote decline failed", "QUOTE_DECLINE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result.Quote)
}

// quoteLookupError maps the shared lookup failures to HTTP statuses
func (h *QuoteHandler) quoteLookupError(c fiber.Ctx, err error, message, fallbackCode string) error {
	if businessflow.IsQuoteNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Quote not found", "QUOTE_NOT_FOUND", nil)
	}
	if businessflow.IsQuoteAccessDenied(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Quote access denied", "QUOTE_ACCESS_DENIED", nil)
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, fallbackCode, nil)
}

func (h *QuoteHandler) validationMessages(err error) []string {
	var validationErrors []string
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range errs {
			validationErrors = append(validationErrors, getValidationErrorMessage(e))
		}
	}
	return validationErrors
}

// createRequestContext creates a context with request-scoped values for observability and timeout
func (h *QuoteHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

// createRequestContextWithTimeout creates a context with custom timeout and request-scoped values
func (h *QuoteHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel) // Store cancel function for cleanup

	return ctx
}
