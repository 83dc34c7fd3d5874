package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// 代数 key 的保留时间，远大于任何一次回源耗时
const genTTL = 24 * time.Hour

// Cache 按 id 读实体的旁路缓存；nil *Cache 表示未启用，所有方法直接回源
type Cache struct {
	RDB *redis.Client
	TTL time.Duration
	sf  singleflight.Group
}

func New(addr, pass string, db int, ttl time.Duration) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), ttl)
}

func NewWithClient(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{RDB: rdb, TTL: ttl}
}

func Key(kind string, id int64) string { return fmt.Sprintf("ad-board:%s:%d", kind, id) }

// genKey 每次 Invalidate 自增；回源前后代数不同则不回写
func genKey(key string) string { return key + ":gen" }

func (c *Cache) Enabled() bool { return c != nil && c.RDB != nil }

func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.RDB.Close()
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if !c.Enabled() {
		return load(ctx)
	}
	// 先读缓存；redis 不可用时按未命中处理
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	// single flight 合并回源
	v, err, _ := c.sf.Do(key, func() (any, error) {
		gen, err := c.RDB.Get(ctx, genKey(key)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			gen = "unknown" // 读不到代数就不回写
		}
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		c.setIfCurrent(ctx, key, gen, b)
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// setIfCurrent 回源期间发生过 Invalidate 就放弃回写
func (c *Cache) setIfCurrent(ctx context.Context, key, gen string, b []byte) {
	gk := genKey(key)
	_ = c.RDB.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, gk).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, b, c.TTL)
			return nil
		})
		return err
	}, gk)
}

// Invalidate 写操作提交后调用
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	for _, k := range keys {
		c.sf.Forget(k)
	}
	_, err := c.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range keys {
			p.Incr(ctx, genKey(k))
			p.Expire(ctx, genKey(k), genTTL)
		}
		p.Del(ctx, keys...)
		return nil
	})
	return err
}
