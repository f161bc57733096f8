// Package handler turns typed request handlers into http.HandlerFunc values.
//
// A HandlerFunc receives a Context and a bound request value and returns a
// Response; Wrap binds the request with binder.Request, renders the response
// and routes errors through an ErrorHandler:
//
//	type loginRequest struct {
//		Email    string `form:"email" json:"email"`
//		Password string `form:"password" json:"password"`
//	}
//
//	r.Post("/sessions", handler.Wrap(func(ctx handler.Context, req loginRequest) handler.Response {
//		...
//		return handler.JSON(http.StatusOK, body)
//	}))
package handler
