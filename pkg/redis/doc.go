// Package redis connects the storefront to Redis.
//
// Connect retries the initial ping according to Config, so the service can
// start alongside a Redis container that is still booting. Healthcheck
// produces a probe for the /healthz endpoint. The key/value driver built on
// top of the client lives in pkg/kvstore.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	durable := kvstore.NewRedisStorage(client, 0)
package redis
