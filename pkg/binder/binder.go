package binder

import (
	"mime"
	"net/http"
)

// MaxBodySize caps the bytes read from a request body.
const MaxBodySize = 1 << 20

// Request binds r into v according to its Content-Type. Requests without a
// body or content type bind query parameters only.
func Request(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return Form(r, v)
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ErrUnsupportedMediaType
	}
	switch mediaType {
	case "application/json":
		return JSON(r, v)
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return Form(r, v)
	default:
		return ErrUnsupportedMediaType
	}
}
