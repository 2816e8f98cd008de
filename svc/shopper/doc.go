// Package shopper assembles the per-visitor auth session and cart.
//
// A Client is built for every request from the visitor's two storage scopes,
// hydrated in order (identity first, then cart) and discarded when the request
// ends. Registry serializes requests of the same device so that no request
// observes another one half way through a mutation.
package shopper
