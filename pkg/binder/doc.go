// Package binder decodes HTTP requests into typed request structs.
//
// Each binder reads one source and one struct tag:
//
//	Query()   -> `query:"name"`
//	Form()    -> `form:"name"` and `file:"name"` (urlencoded and multipart)
//	JSON()    -> `json:"name"` (application/json bodies)
//	Signals() -> `json:"name"` (datastar signals, query or body)
//
// A binder that does not apply to the request (wrong method or content type)
// returns ErrBinderNotApplicable, so several binders can be chained on one
// route and only the matching ones run:
//
//	handler.Wrap(h, handler.WithBinders[handler.Context, uploadRequest](
//		binder.Query(),
//		binder.Form(),
//	))
package binder
