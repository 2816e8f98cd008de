// Package storefront is the HTTP API of the shop: catalog browsing, the
// visitor's cart, sign-in, checkout and the admin and seller back office.
//
// Every visitor request is served with a hydrated shopper.Client, so handlers
// never observe a half-loaded session or a cart read under the wrong key.
// Service and backend errors are returned as handler.Error and mapped onto
// HTTP statuses in one place.
package storefront
