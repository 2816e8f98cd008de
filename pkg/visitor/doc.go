// Package visitor identifies browsers with two signed cookies.
//
// The device cookie (did) lives for 400 days and scopes durable data such as
// carts. The session cookie (vsid) has no Max-Age, so it disappears when the
// browser session ends, and scopes session-lifetime data such as the signed-in
// identity. Missing or tampered cookies are replaced with fresh UUIDs.
package visitor
