// Package redis connects to Redis with go-redis/v9 and offers a small
// namespaced byte store on top of it.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := redis.NewStore(client, "preview")
//	_ = store.Set(ctx, key, html, 10*time.Minute)
//
// Store.Get reports a missing key with ErrNotFound.
package redis
