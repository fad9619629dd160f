package utils

// Context keys used by handlers when building request contexts
const (
	RequestIDKey  = "request_id"
	UserAgentKey  = "user_agent"
	IPAddressKey  = "ip_address"
	EndpointKey   = "endpoint"
	TimeoutKey    = "timeout"
	CancelFuncKey = "cancel_func"
)

// Cache key suffixes (prefixed with the configured Redis prefix)
const (
	// QuotaOptionsCacheKeyPrefix is followed by the reference date
	// (YYYY-MM-DD) or "all" when no date filter applies.
	QuotaOptionsCacheKeyPrefix = "quota:options:"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
