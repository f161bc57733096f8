package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/binder"
)

type credentials struct {
	Email    string  `form:"email" json:"email"`
	Password string  `form:"password" json:"password"`
	Remember bool    `form:"remember" json:"remember"`
	Attempts int     `form:"attempts" json:"attempts"`
	Token    *string `form:"reset_token" json:"reset_token"`
	Ignored  string  `form:"-" json:"-"`
}

func formRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestRequest_Form(t *testing.T) {
	t.Parallel()

	r := formRequest(url.Values{
		"email":       {"bob@example.com"},
		"password":    {"a:b"},
		"remember":    {"on"},
		"attempts":    {"3"},
		"reset_token": {"tok"},
		"Ignored":     {"x"},
	})

	var got credentials
	require.NoError(t, binder.Request(r, &got))
	assert.Equal(t, "bob@example.com", got.Email)
	assert.Equal(t, "a:b", got.Password)
	assert.True(t, got.Remember)
	assert.Equal(t, 3, got.Attempts)
	require.NotNil(t, got.Token)
	assert.Equal(t, "tok", *got.Token)
	assert.Empty(t, got.Ignored)
}

func TestRequest_Multipart(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("email", "bob@example.com"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	var got credentials
	require.NoError(t, binder.Request(r, &got))
	assert.Equal(t, "bob@example.com", got.Email)
}

func TestRequest_JSON(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"bob@example.com","password":"secret","extra":1}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	var got credentials
	require.NoError(t, binder.Request(r, &got))
	assert.Equal(t, "bob@example.com", got.Email)
	assert.Equal(t, "secret", got.Password)
}

func TestRequest_Errors(t *testing.T) {
	t.Parallel()

	t.Run("bad json", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
		r.Header.Set("Content-Type", "application/json")
		assert.ErrorIs(t, binder.Request(r, &credentials{}), binder.ErrInvalidJSON)
	})

	t.Run("trailing json", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{} {}`))
		r.Header.Set("Content-Type", "application/json")
		assert.ErrorIs(t, binder.Request(r, &credentials{}), binder.ErrInvalidJSON)
	})

	t.Run("bad int", func(t *testing.T) {
		t.Parallel()
		r := formRequest(url.Values{"attempts": {"many"}})
		assert.ErrorIs(t, binder.Request(r, &credentials{}), binder.ErrInvalidForm)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("<x/>"))
		r.Header.Set("Content-Type", "application/xml")
		assert.ErrorIs(t, binder.Request(r, &credentials{}), binder.ErrUnsupportedMediaType)
	})

	t.Run("non pointer target", func(t *testing.T) {
		t.Parallel()
		r := formRequest(url.Values{"email": {"x"}})
		assert.ErrorIs(t, binder.Request(r, credentials{}), binder.ErrInvalidTarget)
	})
}

func TestRequest_EmptyBody(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/?email=bob%40example.com", nil)
	var got credentials
	require.NoError(t, binder.Request(r, &got))
	assert.Equal(t, "bob@example.com", got.Email)

	r = httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("Content-Type", "application/json")
	require.NoError(t, binder.Request(r, &got))
}
