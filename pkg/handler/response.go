package handler

import (
	"encoding/json"
	"net/http"
)

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON renders body as JSON with status.
func JSON(status int, body any) Response {
	return jsonResponse{status: status, body: body}
}

// Error renders {"error": message} with status.
func Error(status int, message string) Response {
	if message == "" {
		message = http.StatusText(status)
	}
	return JSON(status, map[string]string{"error": message})
}

type redirectResponse struct {
	url  string
	code int
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, rr.url, rr.code)
	return nil
}

// Redirect answers with a redirect to url. code defaults to 302.
func Redirect(url string, code int) Response {
	if code == 0 {
		code = http.StatusFound
	}
	return redirectResponse{url: url, code: code}
}

type emptyResponse int

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(int(e))
	return nil
}

// Empty writes only status.
func Empty(status int) Response { return emptyResponse(status) }

// ResponseFunc adapts a function to Response.
type ResponseFunc func(w http.ResponseWriter, r *http.Request) error

func (f ResponseFunc) Render(w http.ResponseWriter, r *http.Request) error { return f(w, r) }

// WithCookies sets cookies before rendering next.
func WithCookies(next Response, cookies ...func(http.ResponseWriter) error) Response {
	return ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
		for _, set := range cookies {
			if err := set(w); err != nil {
				return err
			}
		}
		return next.Render(w, r)
	})
}
