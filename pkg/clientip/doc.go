// Package clientip resolves the address of the client behind an HTTP request.
//
// By default only the TCP peer address is used. When the service sits behind
// reverse proxies, list the headers they set with WithTrustedHeaders; the
// first header holding a valid address wins, and for X-Forwarded-For the
// left-most valid entry is taken.
//
//	r.Use(clientip.Middleware(clientip.WithTrustedHeaders("X-Forwarded-For")))
//
// LogAttr plugs the resolved address into logger.WithContextExtractors.
package clientip
