package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/clientip"
)

func TestResolver_IP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		trusted []string
		remote  string
		headers map[string]string
		want    string
	}{
		{"remote addr with port", nil, "10.0.0.1:5555", nil, "10.0.0.1"},
		{"remote addr without port", nil, "10.0.0.1", nil, "10.0.0.1"},
		{"ipv6 remote", nil, "[2001:db8::1]:443", nil, "2001:db8::1"},
		{"untrusted header ignored", nil, "10.0.0.1:1", map[string]string{"X-Forwarded-For": "1.2.3.4"}, "10.0.0.1"},
		{"forwarded first valid", []string{"x-forwarded-for"}, "10.0.0.1:1", map[string]string{"X-Forwarded-For": "junk, 1.2.3.4, 5.6.7.8"}, "1.2.3.4"},
		{"priority order", []string{"CF-Connecting-IP", "X-Real-IP"}, "10.0.0.1:1", map[string]string{"X-Real-IP": "9.9.9.9", "CF-Connecting-IP": "8.8.8.8"}, "8.8.8.8"},
		{"invalid header falls back", []string{"X-Real-IP"}, "10.0.0.1:1", map[string]string{"X-Real-IP": "nope"}, "10.0.0.1"},
		{"garbage remote", nil, "not-an-ip", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			res := clientip.NewResolver(clientip.WithTrustedHeaders(tt.trusted...))
			assert.Equal(t, tt.want, res.IP(r))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware(clientip.WithTrustedHeaders("X-Real-IP"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Real-IP", "203.0.113.7")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "203.0.113.7", got)

	attr, ok := clientip.LogAttr(clientip.WithContext(t.Context(), "203.0.113.7"))
	require.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)

	_, ok = clientip.LogAttr(t.Context())
	assert.False(t, ok)
}
