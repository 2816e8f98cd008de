package binder

import "net/http"

// Query binds URL query parameters into fields tagged `query:"name"`.
// Untagged exported fields use their lowercased name; `query:"-"` skips a field.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		values := r.URL.Query()
		return bindFields(v, "query", func(name string) []string { return values[name] }, ErrInvalidQuery)
	}
}
