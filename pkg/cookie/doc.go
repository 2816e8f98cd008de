// Package cookie writes and verifies HMAC-SHA256 signed cookies.
//
// Values are stored as base64url(value) "." base64url(mac). Several secrets can
// be configured: the first one signs new cookies and all of them are accepted
// when verifying, so secrets can be rotated without logging visitors out.
package cookie
