// Package kvstore provides the key/value storage tiers behind the storefront's
// client-side state.
//
// A Storage is a flat byte store with Get, Set and Delete. Two drivers are
// shipped:
//
//   - MemoryStorage keeps values in process memory with an optional TTL. It is
//     used in development and tests.
//   - RedisStorage keeps values in Redis via github.com/redis/go-redis/v9 and is
//     the production driver.
//
// Namespace scopes a Storage under a key prefix, so one physical backend can
// host the session-lifetime tier and the durable tier of many visitors:
//
//	durable := kvstore.Namespace(redisStorage, "ls:"+deviceID+":")
//	session := kvstore.Namespace(redisStorage, "ss:"+sessionID+":")
//
// Missing keys are reported as ErrNotFound so callers can tell an absent
// record from a transport failure.
package kvstore
