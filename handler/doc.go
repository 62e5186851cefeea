// Package handler turns typed request handlers into http.HandlerFunc values.
//
// A handler receives a Context and a bound request value and returns a Response:
//
//	type setFieldRequest struct {
//		Path  string `form:"path"`
//		Value string `form:"value"`
//	}
//
//	h := func(ctx handler.Context, req setFieldRequest) handler.Response {
//		if err := store.Set(req.Path, req.Value); err != nil {
//			return handler.Error(err)
//		}
//		return handler.Templ(views.Field(req.Path), handler.WithTarget("#field"))
//	}
//
//	r.Post("/fields", handler.Wrap(h,
//		handler.WithBinders[handler.Context, setFieldRequest](binder.Form()),
//		handler.WithErrorHandler[handler.Context, setFieldRequest](errHandler),
//	))
//
// Responses adapt to the caller: datastar requests receive server-sent
// element and signal patches, plain requests receive HTML or JSON.
// Errors are classified by NewErrorHandler into a status code, a log level
// and either a toast (datastar) or an error page.
package handler
