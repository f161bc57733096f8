// Package requestid tags every request with a correlation id.
//
// Middleware reuses a well-formed X-Request-ID header or mints a UUID, stores
// it in the request context and echoes it in the response. LogAttr plugs the
// id into logger.WithContextExtractors so every log line written with the
// request context carries request_id.
package requestid
