// Package validator checks request and payload fields with composable rules.
//
//	err := validator.Apply(
//		validator.Required("email", req.Email),
//		validator.Email("email", req.Email),
//		validator.MinNum("price", req.Price, 0),
//	)
//
// Apply returns ValidationErrors listing every failed rule, or nil.
package validator
