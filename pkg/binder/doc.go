// Package binder decodes request bodies into tagged structs.
//
// Form fields bind through `form:"name"` tags and JSON bodies through the
// usual `json` tags. Request picks the decoder from the Content-Type header so
// one handler accepts both browser forms and API clients:
//
//	type loginRequest struct {
//		Email    string `form:"email" json:"email"`
//		Password string `form:"password" json:"password"`
//	}
//
//	var req loginRequest
//	if err := binder.Request(r, &req); err != nil {
//		// 400
//	}
package binder
