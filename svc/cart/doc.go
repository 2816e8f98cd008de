// Package cart keeps the line items of the visitor's current cart.
//
// A Store is bound to an identity source (the auth session) and a durable
// storage. Items live under a storage key derived from the identity:
//
//	cart_<email>   for a logged-in visitor
//	cart_guest     otherwise
//
// The store never loads before the identity source is ready, and it reloads
// from the new key on every identity change. A guest cart is never merged into
// a user cart, and a user cart never leaks back to the guest key.
//
// Every mutation is written to storage before it becomes visible in memory.
// CartTotal and CartCount are derived from the items on every call.
package cart
