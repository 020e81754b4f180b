// Package businessflow contains the business logic for the application.
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quoteforge/quoteforge/app/dto"
	"github.com/quoteforge/quoteforge/models"
	"github.com/quoteforge/quoteforge/pricing"
	"github.com/quoteforge/quoteforge/repository"
	"github.com/quoteforge/quoteforge/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuoteFlow defines the quote generation and lifecycle operations
type QuoteFlow interface {
	GenerateQuote(ctx context.Context, req *dto.GenerateQuoteRequest, metadata *ClientMetadata) (*dto.GenerateQuoteResponse, error)
	GetQuote(ctx context.Context, req *dto.GetQuoteRequest) (*dto.GetQuoteResponse, error)
	ListQuotes(ctx context.Context, req *dto.ListQuotesRequest) (*dto.ListQuotesResponse, error)
	SendQuote(ctx context.Context, req *dto.SendQuoteRequest, metadata *ClientMetadata) (*dto.QuoteLifecycleResponse, error)
	AcceptQuote(ctx context.Context, req *dto.AcceptQuoteRequest, metadata *ClientMetadata) (*dto.QuoteLifecycleResponse, error)
	DeclineQuote(ctx context.Context, req *dto.DeclineQuoteRequest, metadata *ClientMetadata) (*dto.QuoteLifecycleResponse, error)
}

// QuoteFlowImpl implements the quote flow
type QuoteFlowImpl struct {
	db           *gorm.DB
	customerRepo repository.CustomerRepository
	projectRepo  repository.ProjectRepository
	quoteRepo    repository.QuoteRepository
	auditRepo    repository.AuditLogRepository
	calculator   *pricing.QuoteCalculator
}

// NewQuoteFlow creates a new quote flow instance
func NewQuoteFlow(
	db *gorm.DB,
	customerRepo repository.CustomerRepository,
	projectRepo repository.ProjectRepository,
	quoteRepo repository.QuoteRepository,
	auditRepo repository.AuditLogRepository,
	calculator *pricing.QuoteCalculator,
) QuoteFlow {
	return &QuoteFlowImpl{
		db:           db,
		customerRepo: customerRepo,
		projectRepo:  projectRepo,
		quoteRepo:    quoteRepo,
		auditRepo:    auditRepo,
		calculator:   calculator,
	}
}

// GenerateQuote prices a project and persists the resulting quote. The whole
// operation runs in one transaction; the partial unique index on quotes
// backstops the duplicate-active-quote check under concurrent requests.
func (f *QuoteFlowImpl) GenerateQuote(ctx context.Context, req *dto.GenerateQuoteRequest, metadata *ClientMetadata) (*dto.GenerateQuoteResponse, error) {
	customer, err := f.customerRepo.ByID(ctx, req.CustomerID)
	if err != nil {
		return nil, NewBusinessError("QUOTE_GENERATION_FAILED", "Failed to load customer", err)
	}
	if customer == nil {
		return nil, NewBusinessError("CUSTOMER_NOT_FOUND", "Customer not found", ErrCustomerNotFound)
	}
	if !utils.IsTrue(customer.IsActive) {
		return nil, NewBusinessError("ACCOUNT_INACTIVE", "Account is inactive", ErrAccountInactive)
	}

	var quote *models.Quote
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		project, err := f.projectRepo.ByUUID(txCtx, req.ProjectUUID)
		if err != nil {
			return NewBusinessError("QUOTE_GENERATION_FAILED", "Failed to load project", err)
		}
		if project == nil {
			return NewBusinessError("PROJECT_NOT_FOUND", "Project not found", ErrProjectNotFound)
		}
		if project.CustomerID != req.CustomerID {
			return NewBusinessError("PROJECT_ACCESS_DENIED", "Project access denied", ErrProjectAccessDenied)
		}

		existing, err := f.quoteRepo.ActiveByProjectID(txCtx, project.ID)
		if err != nil {
			return NewBusinessError("QUOTE_GENERATION_FAILED", "Failed to check active quotes", err)
		}
		if existing != nil {
			return NewBusinessError("DUPLICATE_ACTIVE_QUOTE", "An active quote already exists for this project", ErrDuplicateActiveQuote)
		}

		// Reuse a previously computed complexity score; compute and cache it
		// on the project otherwise.
		score := decimalOrEstimate(project)
		if project.ComplexityScore == nil {
			if err := f.projectRepo.UpdateComplexityScore(txCtx, project.ID, score); err != nil {
				return NewBusinessError("QUOTE_GENERATION_FAILED", "Failed to persist complexity score", err)
			}
		}

		computation := f.calculator.Compute(project.Type, project.Urgency, score, utils.UTCNow())

		quote = &models.Quote{
			ProjectID:              project.ID,
			CustomerID:             project.CustomerID,
			BaseRate:               computation.BaseRate,
			ComplexityAdjustment:   computation.ComplexityAdjustment,
			UrgencyAdjustment:      computation.UrgencyAdjustment,
			TotalEstimate:          computation.TotalEstimate,
			NotToExceed:            computation.NotToExceed,
			EstimatedTimelineWeeks: computation.EstimatedTimelineWeeks,
			DeliveryDate:           computation.DeliveryDate,
			PaymentStructure:       computation.PaymentStructure,
			ValidUntil:             computation.ValidUntil,
			Status:                 models.QuoteStatusPending,
		}
		if err := f.quoteRepo.Save(txCtx, quote); err != nil {
			return NewBusinessError("QUOTE_GENERATION_FAILED", "Failed to save quote", err)
		}
		quote.Project = project

		if err := f.projectRepo.UpdateStatus(txCtx, project.ID, models.ProjectStatusQuoteGenerated); err != nil {
			return NewBusinessError("QUOTE_GENERATION_FAILED", "Failed to update project status", err)
		}

		description := fmt.Sprintf("Quote %s generated for project %s", quote.UUID, project.UUID)
		if err := f.createAuditLog(txCtx, customer, models.AuditActionQuoteGenerated, description, true, nil, metadata); err != nil {
			return NewBusinessError("QUOTE_GENERATION_FAILED", "Failed to create audit log", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.GenerateQuoteResponse{
		Message: "Quote generated successfully",
		Quote:   ToQuoteDTO(*quote),
	}, nil
}

// GetQuote retrieves a single quote, scoped to its owner
func (f *QuoteFlowImpl) GetQuote(ctx context.Context, req *dto.GetQuoteRequest) (*dto.GetQuoteResponse, error) {
	quote, err := f.loadOwnedQuote(ctx, req.UUID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	return &dto.GetQuoteResponse{Quote: ToQuoteDTO(*quote)}, nil
}

// ListQuotes retrieves the caller's quotes, newest first
func (f *QuoteFlowImpl) ListQuotes(ctx context.Context, req *dto.ListQuotesRequest) (*dto.ListQuotesResponse, error) {
	page := req.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, NewBusinessError("INVALID_PAGE", "Page must be at least 1", ErrInvalidPage)
	}
	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = 20
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, NewBusinessError("INVALID_PAGE_SIZE", "Page size must be between 1 and 100", ErrInvalidPageSize)
	}

	quotes, err := f.quoteRepo.ListByCustomer(ctx, req.CustomerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("QUOTE_LIST_FAILED", "Failed to list quotes", err)
	}

	total, err := f.quoteRepo.Count(ctx, models.QuoteFilter{CustomerID: &req.CustomerID})
	if err != nil {
		return nil, NewBusinessError("QUOTE_LIST_FAILED", "Failed to count quotes", err)
	}

	items := make([]dto.QuoteDTO, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, ToQuoteDTO(*q))
	}

	return &dto.ListQuotesResponse{
		Items: items,
		Page:  page,
		Total: total,
	}, nil
}

// SendQuote marks a pending quote as sent to the client
func (f *QuoteFlowImpl) SendQuote(ctx context.Context, req *dto.SendQuoteRequest, metadata *ClientMetadata) (*dto.QuoteLifecycleResponse, error) {
	quote, err := f.loadOwnedQuote(ctx, req.UUID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	if !quote.CanTransitionTo(models.QuoteStatusSent) {
		return nil, NewBusinessErrorf("INVALID_QUOTE_TRANSITION", "Cannot send a quote in status %s", ErrInvalidQuoteTransition, quote.Status)
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		quote.Status = models.QuoteStatusSent
		if err := f.quoteRepo.Update(txCtx, quote); err != nil {
			return NewBusinessError("QUOTE_SEND_FAILED", "Failed to update quote", err)
		}

		description := fmt.Sprintf("Quote %s sent", quote.UUID)
		return f.createAuditLog(txCtx, quote.Customer, models.AuditActionQuoteSent, description, true, nil, metadata)
	})
	if err != nil {
		return nil, err
	}

	return &dto.QuoteLifecycleResponse{
		Message: "Quote sent successfully",
		Quote:   ToQuoteDTO(*quote),
	}, nil
}

// AcceptQuote accepts a quote within its validity window. A quote found past
// its deadline is transitioned to expired as a side effect of the attempt,
// and the accept fails regardless of the stored status.
func (f *QuoteFlowImpl) AcceptQuote(ctx context.Context, req *dto.AcceptQuoteRequest, metadata *ClientMetadata) (*dto.QuoteLifecycleResponse, error) {
	quote, err := f.loadOwnedQuote(ctx, req.UUID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	if quote.Status != models.QuoteStatusPending && quote.Status != models.QuoteStatusSent {
		return nil, NewBusinessErrorf("INVALID_QUOTE_TRANSITION", "Cannot accept a quote in status %s", ErrInvalidQuoteTransition, quote.Status)
	}

	now := utils.UTCNow()
	if quote.IsExpiredAt(now) {
		expireErr := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
			quote.Status = models.QuoteStatusExpired
			if err := f.quoteRepo.Update(txCtx, quote); err != nil {
				return NewBusinessError("QUOTE_ACCEPT_FAILED", "Failed to expire quote", err)
			}

			description := fmt.Sprintf("Quote %s expired on accept attempt", quote.UUID)
			return f.createAuditLog(txCtx, quote.Customer, models.AuditActionQuoteExpired, description, true, nil, metadata)
		})
		if expireErr != nil {
			return nil, expireErr
		}
		return nil, NewBusinessError("QUOTE_EXPIRED", "Quote validity window has passed", ErrQuoteExpired)
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		quote.Status = models.QuoteStatusAccepted
		quote.TermsAccepted = true
		quote.AcceptedAt = &now
		if err := f.quoteRepo.Update(txCtx, quote); err != nil {
			return NewBusinessError("QUOTE_ACCEPT_FAILED", "Failed to update quote", err)
		}

		if err := f.projectRepo.UpdateStatus(txCtx, quote.ProjectID, models.ProjectStatusQuoteAccepted); err != nil {
			return NewBusinessError("QUOTE_ACCEPT_FAILED", "Failed to update project status", err)
		}

		description := fmt.Sprintf("Quote %s accepted", quote.UUID)
		return f.createAuditLog(txCtx, quote.Customer, models.AuditActionQuoteAccepted, description, true, nil, metadata)
	})
	if err != nil {
		return nil, err
	}

	return &dto.QuoteLifecycleResponse{
		Message: "Quote accepted successfully",
		Quote:   ToQuoteDTO(*quote),
	}, nil
}

// DeclineQuote declines a quote with an optional free-text reason. Declining
// an already-declined quote succeeds and overwrites the stored reason, so a
// repeated decline stays idempotent. Accepted and expired quotes cannot be
// declined.
func (f *QuoteFlowImpl) DeclineQuote(ctx context.Context, req *dto.DeclineQuoteRequest, metadata *ClientMetadata) (*dto.QuoteLifecycleResponse, error) {
	quote, err := f.loadOwnedQuote(ctx, req.UUID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	if !quote.CanTransitionTo(models.QuoteStatusDeclined) {
		return nil, NewBusinessErrorf("INVALID_QUOTE_TRANSITION", "Cannot decline a quote in status %s", ErrInvalidQuoteTransition, quote.Status)
	}

	meta, err := json.Marshal(models.QuoteMetadata{DeclineReason: req.Reason})
	if err != nil {
		return nil, NewBusinessError("QUOTE_DECLINE_FAILED", "Failed to encode quote metadata", err)
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		quote.Status = models.QuoteStatusDeclined
		quote.Metadata = meta
		if err := f.quoteRepo.Update(txCtx, quote); err != nil {
			return NewBusinessError("QUOTE_DECLINE_FAILED", "Failed to update quote", err)
		}

		if err := f.projectRepo.UpdateStatus(txCtx, quote.ProjectID, models.ProjectStatusQuoteDeclined); err != nil {
			return NewBusinessError("QUOTE_DECLINE_FAILED", "Failed to update project status", err)
		}

		description := fmt.Sprintf("Quote %s declined", quote.UUID)
		return f.createAuditLog(txCtx, quote.Customer, models.AuditActionQuoteDeclined, description, true, nil, metadata)
	})
	if err != nil {
		return nil, err
	}

	return &dto.QuoteLifecycleResponse{
		Message: "Quote declined successfully",
		Quote:   ToQuoteDTO(*quote),
	}, nil
}

// loadOwnedQuote fetches a quote by UUID and enforces ownership
func (f *QuoteFlowImpl) loadOwnedQuote(ctx context.Context, uuid string, customerID uint) (*models.Quote, error) {
	quote, err := f.quoteRepo.ByUUID(ctx, uuid)
	if err != nil {
		return nil, NewBusinessError("QUOTE_LOOKUP_FAILED", "Failed to load quote", err)
	}
	if quote == nil {
		return nil, NewBusinessError("QUOTE_NOT_FOUND", "Quote not found", ErrQuoteNotFound)
	}
	if quote.CustomerID != customerID {
		return nil, NewBusinessError("QUOTE_ACCESS_DENIED", "Quote access denied", ErrQuoteAccessDenied)
	}

	return quote, nil
}

// decimalOrEstimate returns the cached complexity score or estimates a fresh one
func decimalOrEstimate(project *models.Project) decimal.Decimal {
	if project.ComplexityScore != nil {
		return *project.ComplexityScore
	}
	return pricing.EstimateComplexity(project.Type, project.Scope, project.Urgency)
}

// createAuditLog creates an audit log entry for the quote operation
func (f *QuoteFlowImpl) createAuditLog(ctx context.Context, customer *models.Customer, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
	var customerID *uint
	if customer != nil {
		customerID = &customer.ID
	}

	ipAddress := ""
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		CustomerID:   customerID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errorMsg,
	}

	// Extract request ID from context if available
	requestID := ctx.Value(utils.RequestIDKey)
	if requestID != nil {
		requestIDStr, ok := requestID.(string)
		if ok {
			audit.RequestID = &requestIDStr
		}
	}

	if err := f.auditRepo.Save(ctx, audit); err != nil {
		return err
	}

	return nil
}
