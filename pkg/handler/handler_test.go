package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/handler"
)

type greetRequest struct {
	Name string `form:"name" json:"name"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestWrap(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(ctx handler.Context, req greetRequest) handler.Response {
		if req.Name == "" {
			return handler.Error(http.StatusBadRequest, "name missing")
		}
		assert.NotNil(t, ctx.Request())
		return handler.JSON(http.StatusOK, map[string]string{"hello": req.Name})
	})

	t.Run("form", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"name": {"bob"}}.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "bob", decode(t, rec)["hello"])
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"eve"}`))
		r.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, r)
		assert.Equal(t, "eve", decode(t, rec)["hello"])
	})

	t.Run("handler error", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "name missing", decode(t, rec)["error"])
	})

	t.Run("bind error", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		r.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, r)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Bad Request", decode(t, rec)["error"])
	})
}

func TestWrap_NilResponse(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil })
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWrap_Options(t *testing.T) {
	t.Parallel()

	var order []string
	deco := func(name string) handler.Decorator[struct{}] {
		return func(next handler.HandlerFunc[struct{}]) handler.HandlerFunc[struct{}] {
			return func(ctx handler.Context, req struct{}) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	var handled error
	h := handler.Wrap(
		func(handler.Context, struct{}) handler.Response {
			return handler.ResponseFunc(func(http.ResponseWriter, *http.Request) error {
				return handler.ErrServiceUnavailable
			})
		},
		handler.WithDecorators(deco("outer"), deco("inner")),
		handler.WithErrorHandler[struct{}](func(ctx handler.Context, err error) {
			handled = err
			handler.DefaultErrorHandler(ctx, err)
		}),
	)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.ErrorIs(t, handled, handler.ErrServiceUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWrap_CustomBinder(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(
		func(handler.Context, greetRequest) handler.Response { return handler.Empty(http.StatusNoContent) },
		handler.WithBinder[greetRequest](func(*http.Request, any) error { return errors.New("nope") }),
	)
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResponses(t *testing.T) {
	t.Parallel()

	t.Run("redirect", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/", 0).Render(rec, httptest.NewRequest(http.MethodDelete, "/sessions", nil)))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("with cookies", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		resp := handler.WithCookies(handler.Empty(http.StatusOK), func(w http.ResponseWriter) error {
			http.SetCookie(w, &http.Cookie{Name: "a", Value: "b"})
			return nil
		})
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		require.Len(t, rec.Result().Cookies(), 1)
		assert.Equal(t, "b", rec.Result().Cookies()[0].Value)
	})

	t.Run("error default message", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Error(http.StatusForbidden, "").Render(rec, nil))
		assert.Equal(t, "Forbidden", decode(t, rec)["error"])
	})
}
