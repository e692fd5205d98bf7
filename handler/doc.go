// Package handler turns typed functions into http.HandlerFunc values.
//
// A handler receives a Context and a request struct filled in by binders,
// and returns a Response:
//
//	func createProject(ctx handler.Context, req CreateProjectRequest) handler.Response {
//		p, err := svc.CreateProject(ctx, req.Name)
//		if err != nil {
//			return handler.Fail(err)
//		}
//		return handler.JSON(p, handler.WithJSONStatus(http.StatusCreated))
//	}
//
//	r.Post("/projects", handler.Wrap(createProject,
//		handler.WithBinders[handler.Context, CreateProjectRequest](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, CreateProjectRequest](errHandler),
//	))
//
// Errors from binding, from rendering, and those returned through Fail all
// reach the configured ErrorHandler. NewErrorHandler classifies them
// (HTTPError, validator.ValidationErrors, binder errors and any
// caller-supplied ErrorMapper), logs them, and writes the JSON envelope:
//
//	{"error": {"code": "not_found", "message": "template not found"}}
//
// Server errors never expose their message to the client.
package handler
