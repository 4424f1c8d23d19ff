package ratelimit

// NopLimiter admits every request. Used when rate limiting is disabled in config.
type NopLimiter struct{}

// Allow always reports true.
func (NopLimiter) Allow(string) bool { return true }

var _ Limiter = NopLimiter{}
