// Package ratelimit throttles credential endpoints with fixed-window counters.
//
// A Limiter counts hits per key in a Store; MemoryStore suits a single
// process and RedisStore shares counters between replicas. Middleware keys
// requests by client address and answers 429 once the window is spent. Store
// failures are logged and the request is let through.
package ratelimit
