// Package backend is the typed client of the remote store API.
//
// The remote API owns products, orders, shipping quotes and payment sessions.
// Read calls that are safe to repeat are retried with exponential backoff;
// writes are sent once. Product lookups by id go through a small LRU cache
// with a short time to live, invalidated on save and delete.
package backend
