// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/quoteforge/quoteforge/app/dto"
	businessflow "github.com/quoteforge/quoteforge/business_flow"
	"github.com/quoteforge/quoteforge/utils"
)

// PricingHandlerInterface defines the contract for bundle pricing handlers
type PricingHandlerInterface interface {
	CalculateBundlePricing(c fiber.Ctx) error
}

// PricingHandler handles bundle pricing HTTP requests
type PricingHandler struct {
	pricingFlow businessflow.BundlePricingFlow
	validator   *validator.Validate
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingFlow businessflow.BundlePricingFlow) *PricingHandler {
	return &PricingHandler{
		pricingFlow: pricingFlow,
		validator:   validator.New(),
	}
}

func (h *PricingHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *PricingHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CalculateBundlePricing handles bundle price calculation requests
func (h *PricingHandler) CalculateBundlePricing(c fiber.Ctx) error {
	var req dto.BundlePricingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.pricingFlow.CalculatePricing(h.createRequestContext(c, "/api/v1/pricing/bundles/calculate"), &req, metadata)
	if err != nil {
		if businessflow.IsRevenueCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Revenue category not found", "REVENUE_CATEGORY_NOT_FOUND", nil)
		}
		if businessflow.IsCompanyScaleNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Company scale not found", "COMPANY_SCALE_NOT_FOUND", nil)
		}
		if businessflow.IsBundlePricingNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "No base price configured for this combination", "BUNDLE_PRICING_NOT_FOUND", nil)
		}

		log.Println("Bundle pricing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Bundle pricing failed", "BUNDLE_PRICING_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Bundle pricing calculated successfully", result)
}

// createRequestContext creates a context with request-scoped values for observability and timeout
func (h *PricingHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel) // Store cancel function for cleanup

	return ctx
}
