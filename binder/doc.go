// Package binder decodes HTTP requests into typed request structs.
//
// Each binder handles one source and one struct tag, so several can be chained
// through handler.WithBinders:
//
//	type updateQuantityRequest struct {
//		ID       string `path:"id"`
//		Quantity int    `json:"quantity"`
//	}
//
//	r.Patch("/cart/items/{id}", handler.Wrap(updateQuantity,
//		handler.WithBinders[storefront.Context, updateQuantityRequest](
//			binder.Path(chi.URLParam),
//			binder.JSON(),
//		),
//	))
//
// JSON bodies are decoded in strict mode (unknown fields are rejected) and
// capped at MaxJSONSize bytes. Query and path values support strings, integers,
// floats, booleans and pointers to those.
package binder
