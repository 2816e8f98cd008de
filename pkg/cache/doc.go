// Package cache provides a generic, thread-safe LRU cache whose entries also
// expire after a fixed time to live. It backs read-through caches of remote
// data that may change, such as catalog products.
package cache
