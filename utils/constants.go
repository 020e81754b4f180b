package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Quotation constants
const (
	// QuoteValidity is how long an issued quote can be accepted (30 days)
	QuoteValidity = 30 * 24 * time.Hour

	// NotToExceedBuffer is the safety buffer applied on top of the total
	// estimate to form the contractual price ceiling (15%)
	NotToExceedBuffer = "1.15"

	// DefaultBaseRate is the fallback base rate when a project type has no
	// entry in the rate table
	DefaultBaseRate = "5000"

	// Payment structure split: deposit / milestone 1 / milestone 2 / final
	DepositShare    = "0.30"
	Milestone1Share = "0.30"
	Milestone2Share = "0.20"
	FinalShare      = "0.20"

	// DefaultComplexityRating is used when a bundle pricing request omits
	// the 1-10 rating
	DefaultComplexityRating = 5

	USDCurrency = "USD"
)

// Context keys for request-scoped values
type ContextKey string

const (
	RequestIDKey  ContextKey = "request_id"
	UserAgentKey  ContextKey = "user_agent"
	IPAddressKey  ContextKey = "ip_address"
	EndpointKey   ContextKey = "endpoint"
	TimeoutKey    ContextKey = "timeout"
	CancelFuncKey ContextKey = "cancel_func"
)
