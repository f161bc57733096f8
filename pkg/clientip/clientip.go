package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Resolver extracts client addresses from requests.
type Resolver struct {
	headers []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTrustedHeaders sets the proxy headers consulted before RemoteAddr, in
// priority order. Blank names are ignored.
func WithTrustedHeaders(headers ...string) Option {
	return func(r *Resolver) {
		r.headers = r.headers[:0]
		for _, h := range headers {
			if h = strings.TrimSpace(h); h != "" {
				r.headers = append(r.headers, http.CanonicalHeaderKey(h))
			}
		}
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IP returns the normalised client address, or "" when none is valid.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if ip := normalize(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
