// Package businessflow contains the business logic for the application.
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/quoteforge/quoteforge/app/dto"
	"github.com/quoteforge/quoteforge/models"
	"github.com/quoteforge/quoteforge/pricing"
	"github.com/quoteforge/quoteforge/repository"
	"github.com/quoteforge/quoteforge/utils"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const lookupCacheTTL = 10 * time.Minute

// BundlePricingFlow defines the bundle pricing operations
type BundlePricingFlow interface {
	CalculatePricing(ctx context.Context, req *dto.BundlePricingRequest, metadata *ClientMetadata) (*dto.BundlePricingResponse, error)
}

// BundlePricingFlowImpl implements the bundle pricing flow
type BundlePricingFlowImpl struct {
	categoryRepo    repository.RevenueCategoryRepository
	scaleRepo       repository.CompanyScaleRepository
	tierRepo        repository.ComplexityTierRepository
	bundlePriceRepo repository.BundlePriceRepository
	auditRepo       repository.AuditLogRepository
	cache           *redis.Client
}

// NewBundlePricingFlow creates a new bundle pricing flow instance. The cache
// client may be nil, in which case lookups always hit the database.
func NewBundlePricingFlow(
	categoryRepo repository.RevenueCategoryRepository,
	scaleRepo repository.CompanyScaleRepository,
	tierRepo repository.ComplexityTierRepository,
	bundlePriceRepo repository.BundlePriceRepository,
	auditRepo repository.AuditLogRepository,
	cache *redis.Client,
) BundlePricingFlow {
	return &BundlePricingFlowImpl{
		categoryRepo:    categoryRepo,
		scaleRepo:       scaleRepo,
		tierRepo:        tierRepo,
		bundlePriceRepo: bundlePriceRepo,
		auditRepo:       auditRepo,
		cache:           cache,
	}
}

// CalculatePricing resolves the pricing factors and composes the final price.
// Category and scale misses are strict errors; a missing complexity tier
// silently falls back to a neutral multiplier. Nothing is persisted beyond
// the audit entry.
func (f *BundlePricingFlowImpl) CalculatePricing(ctx context.Context, req *dto.BundlePricingRequest, metadata *ClientMetadata) (*dto.BundlePricingResponse, error) {
	category, err := f.resolveCategory(ctx, req.RevenueCategory)
	if err != nil {
		return nil, err
	}

	scale, err := f.resolveScale(ctx, req.CompanyScale)
	if err != nil {
		return nil, err
	}

	rating := utils.DefaultComplexityRating
	if req.ComplexityRating != nil {
		rating = *req.ComplexityRating
	}

	tierMultiplier := decimal.NewFromInt(1)
	tier, err := f.tierRepo.ByRating(ctx, rating)
	if err != nil {
		return nil, NewBusinessError("BUNDLE_PRICING_FAILED", "Failed to look up complexity tier", err)
	}
	if tier != nil {
		tierMultiplier = tier.Multiplier
	}

	price, err := f.bundlePriceRepo.ByTriple(ctx, req.BundleID, category.ID, scale.ID)
	if err != nil {
		return nil, NewBusinessError("BUNDLE_PRICING_FAILED", "Failed to look up bundle price", err)
	}
	if price == nil {
		f.auditFailure(ctx, req, "no base price for combination", metadata)
		return nil, NewBusinessError("BUNDLE_PRICING_NOT_FOUND", "No base price configured for this combination", ErrBundlePricingNotFound)
	}

	result := pricing.CalculateBundlePrice(price.BasePrice, scale.Multiplier, tierMultiplier)

	description := fmt.Sprintf("Bundle %s priced at %s for %s/%s", req.BundleID, result.FinalPrice, category.Code, scale.Code)
	f.audit(ctx, models.AuditActionBundlePricingCalculated, description, true, nil, metadata)

	return &dto.BundlePricingResponse{
		BundleID:             req.BundleID,
		RevenueCategory:      category.Code,
		CompanyScale:         scale.Code,
		ComplexityRating:     rating,
		BasePrice:            result.BasePrice,
		ScaleMultiplier:      result.ScaleMultiplier,
		ComplexityMultiplier: result.ComplexityMultiplier,
		FinalPrice:           result.FinalPrice,
		Currency:             utils.USDCurrency,
		Breakdown: dto.BundleBreakdownDTO{
			Base:                 result.Breakdown.Base,
			ScaleAdjustment:      result.Breakdown.ScaleAdjustment,
			ComplexityAdjustment: result.Breakdown.ComplexityAdjustment,
		},
	}, nil
}

// resolveCategory resolves a revenue category by code or display name,
// reading through the cache when one is configured.
func (f *BundlePricingFlowImpl) resolveCategory(ctx context.Context, key string) (*models.RevenueCategory, error) {
	cacheKey := "pricing:category:" + strings.ToLower(strings.TrimSpace(key))

	var category models.RevenueCategory
	if f.cacheGet(ctx, cacheKey, &category) {
		return &category, nil
	}

	found, err := f.categoryRepo.ByCodeOrName(ctx, key)
	if err != nil {
		return nil, NewBusinessError("BUNDLE_PRICING_FAILED", "Failed to look up revenue category", err)
	}
	if found == nil {
		return nil, NewBusinessErrorf("REVENUE_CATEGORY_NOT_FOUND", "Revenue category %q not found", ErrRevenueCategoryNotFound, key)
	}

	f.cacheSet(ctx, cacheKey, found)
	return found, nil
}

// resolveScale resolves a company scale by code or display name, reading
// through the cache when one is configured.
func (f *BundlePricingFlowImpl) resolveScale(ctx context.Context, key string) (*models.CompanyScale, error) {
	cacheKey := "pricing:scale:" + strings.ToLower(strings.TrimSpace(key))

	var scale models.CompanyScale
	if f.cacheGet(ctx, cacheKey, &scale) {
		return &scale, nil
	}

	found, err := f.scaleRepo.ByCodeOrName(ctx, key)
	if err != nil {
		return nil, NewBusinessError("BUNDLE_PRICING_FAILED", "Failed to look up company scale", err)
	}
	if found == nil {
		return nil, NewBusinessErrorf("COMPANY_SCALE_NOT_FOUND", "Company scale %q not found", ErrCompanyScaleNotFound, key)
	}

	f.cacheSet(ctx, cacheKey, found)
	return found, nil
}

// cacheGet reads a cached lookup entity. Cache errors degrade to a DB read.
func (f *BundlePricingFlowImpl) cacheGet(ctx context.Context, key string, out any) bool {
	if f.cache == nil {
		return false
	}

	raw, err := f.cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, out) == nil
}

// cacheSet stores a lookup entity; failures are ignored.
func (f *BundlePricingFlowImpl) cacheSet(ctx context.Context, key string, value any) {
	if f.cache == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	f.cache.Set(ctx, key, raw, lookupCacheTTL)
}

// auditFailure records a failed pricing attempt
func (f *BundlePricingFlowImpl) auditFailure(ctx context.Context, req *dto.BundlePricingRequest, reason string, metadata *ClientMetadata) {
	description := fmt.Sprintf("Bundle %s pricing failed for %s/%s", req.BundleID, req.RevenueCategory, req.CompanyScale)
	f.audit(ctx, models.AuditActionBundlePricingFailed, description, false, &reason, metadata)
}

// audit writes an audit entry; pricing results do not depend on it
func (f *BundlePricingFlowImpl) audit(ctx context.Context, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) {
	ipAddress := ""
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	entry := &models.AuditLog{
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errorMsg,
	}

	if requestID, ok := ctx.Value(utils.RequestIDKey).(string); ok {
		entry.RequestID = &requestID
	}

	_ = f.auditRepo.Save(ctx, entry)
}
