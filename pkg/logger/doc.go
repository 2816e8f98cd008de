// Package logger builds *slog.Logger instances with environment presets,
// static attributes and request-scoped attributes pulled from the context.
//
//	log := logger.New(
//		logger.WithEnvironment("production", "storefront"),
//		logger.WithContextExtractors(requestIDFromContext),
//	)
//	log.InfoContext(ctx, "cart updated", logger.Component("cart"), logger.Email(email))
//
// Attribute helpers such as Error and Email return an empty attribute for zero
// values, so they can be passed unconditionally.
package logger
