// Package redisstore guarda los watermarks del feed en Redis, para que varias
// réplicas de la API compartan el estado de lectura sin ir a Postgres.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"pet-adoption/internal/domain/activity"
)

const keyPrefix = "feed:watermark:"

// advanceScript compara (at, id) contra el valor guardado y solo escribe si
// el nuevo es posterior. Devuelve el valor vigente.
var advanceScript = redis.NewScript(`
local cur_at = redis.call('HGET', KEYS[1], 'at')
local cur_id = redis.call('HGET', KEYS[1], 'id')
if cur_at then
  local ca = tonumber(cur_at)
  local na = tonumber(ARGV[1])
  if ca > na or (ca == na and cur_id >= ARGV[2]) then
    return {cur_at, cur_id}
  end
end
redis.call('HSET', KEYS[1], 'at', ARGV[1], 'id', ARGV[2])
return {ARGV[1], ARGV[2]}
`)

type Watermarks struct {
	redis redis.UniversalClient
}

func NewWatermarks(client redis.UniversalClient) *Watermarks {
	if client == nil {
		panic("redisstore.NewWatermarks: client is nil")
	}
	return &Watermarks{redis: client}
}

func (w *Watermarks) Get(ctx context.Context, userID string) (activity.Cursor, bool, error) {
	fields, err := w.redis.HGetAll(ctx, watermarkKey(userID)).Result()
	if err != nil {
		return activity.Cursor{}, false, err
	}
	if len(fields) == 0 {
		return activity.Cursor{}, false, nil
	}
	c, err := decodeCursor(fields["at"], fields["id"])
	if err != nil {
		return activity.Cursor{}, false, err
	}
	return c, true, nil
}

func (w *Watermarks) Advance(ctx context.Context, userID string, c activity.Cursor) (activity.Cursor, error) {
	if strings.TrimSpace(userID) == "" {
		return activity.Cursor{}, errors.New("user id required")
	}

	res, err := advanceScript.Run(ctx, w.redis,
		[]string{watermarkKey(userID)},
		strconv.FormatInt(c.At.UnixMicro(), 10), c.ID,
	).StringSlice()
	if err != nil {
		return activity.Cursor{}, err
	}
	if len(res) != 2 {
		return activity.Cursor{}, fmt.Errorf("redisstore: unexpected script reply %v", res)
	}
	return decodeCursor(res[0], res[1])
}

func watermarkKey(userID string) string {
	return keyPrefix + userID
}

// Los timestamps viajan en microsegundos, la misma precisión que guarda el log.
func decodeCursor(at, id string) (activity.Cursor, error) {
	micros, err := strconv.ParseInt(at, 10, 64)
	if err != nil {
		return activity.Cursor{}, fmt.Errorf("redisstore: bad watermark timestamp %q: %w", at, err)
	}
	return activity.Cursor{At: time.UnixMicro(micros).UTC(), ID: id}, nil
}
