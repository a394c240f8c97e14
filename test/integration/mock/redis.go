package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *Redis

// Redis is an in-process Redis server with a connected client.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

// NewRedis returns the suite-wide Redis, starting it on first use.
func NewRedis() *Redis {
	redisConnOnce.Do(
		func() {
			redisConn = openRedisConn()
		},
	)
	return redisConn
}

func openRedisConn() *Redis {
	miniRedis, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	conn := redis.NewClient(
		&redis.Options{
			Addr: miniRedis.Addr(),
		},
	)

	return &Redis{Server: miniRedis, Client: conn}
}

// ClearRedis removes every key.
func (r *Redis) ClearRedis() error {
	return r.Client.FlushAll(context.TODO()).Err()
}
