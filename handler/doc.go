// Package handler turns typed handler functions into http.HandlerFunc values.
//
// A HandlerFunc receives a Context and a request value bound by the
// configured Bind functions and returns a Response. Responses know how to
// render themselves for plain browser requests and for DataStar requests,
// which are answered with server-sent events:
//
//	func show(ctx handler.Context, req projectRequest) handler.Response {
//		details, err := svc.Details(ctx, req.Name)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.Templ(views.Project(details))
//	}
//
// Errors returned from binding or rendering go to the ErrorHandler. The one
// built by NewErrorHandler classifies HTTPError and validation errors, logs
// with the request id and renders an error page with the matching status.
package handler
