// Package handler provides type-safe HTTP handlers for JSON APIs.
//
// A HandlerFunc receives a typed context and a bound request value and returns
// a Response. Wrap turns it into an http.HandlerFunc, applying binders,
// decorators and an error handler:
//
//	func addItem(ctx handler.Context, req addItemRequest) handler.Response {
//		if err := cartFor(ctx).AddToCart(ctx, req.Product()); err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(cartFor(ctx).Snapshot(), handler.WithJSONStatus(http.StatusCreated))
//	}
//
//	r.Post("/cart/items", handler.Wrap(addItem,
//		handler.WithBinders[handler.Context, addItemRequest](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, addItemRequest](handler.NewErrorHandler[handler.Context](log)),
//	))
//
// # Responses
//
//	handler.JSON(data)                         // 200 {"data": ...}
//	handler.JSON(data, handler.WithJSONStatus(http.StatusCreated))
//	handler.JSONError(err)                     // {"error": {"code", "message", "details"}}
//	handler.Empty()                            // 204
//	handler.Redirect("/login?next=/checkout")  // 303
//
// JSONError maps validator.ValidationErrors to 422 with per-field details and
// HTTPError values to their own status. Other errors render as 500 without
// leaking their message. NewErrorHandler additionally maps binder failures to
// 400/415 and consults Classifier functions for domain errors.
package handler
