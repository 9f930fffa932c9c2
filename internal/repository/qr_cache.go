package repository

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

// QRCache 二维码图片缓存，值以 base64 字符串存储
type QRCache struct {
	pool   *redis.Pool
	logger *zap.Logger
}

func NewQRCache(pool *redis.Pool, logger *zap.Logger) *QRCache {
	return &QRCache{pool: pool, logger: logger}
}

func (c *QRCache) closeConn(conn redis.Conn) {
	if err := conn.Close(); err != nil {
		c.logger.Error("Failed to close Redis connection",
			zap.Error(err),
			zap.String("operation", "close"),
			zap.String("connection_type", "redis"),
		)
	}
}

// Get 读取缓存；未命中时返回 (nil, false, nil)
func (c *QRCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return nil, false, err
	}
	defer c.closeConn(conn)

	encoded, err := redis.String(conn.Do("GET", key))
	if errors.Is(err, redis.ErrNil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(data) == 0 {
		// 损坏的缓存按未命中处理，随后会被重新生成覆盖
		c.logger.Warn("Discarding corrupt QR cache entry", zap.String("cache_key", key), zap.Error(err))
		return nil, false, nil
	}
	return data, true, nil
}

// SetWithTTL 写入缓存并设置过期时间
func (c *QRCache) SetWithTTL(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer c.closeConn(conn)

	seconds := int64(ttl / time.Second)
	if seconds <= 0 {
		seconds = 1
	}
	_, err = conn.Do("SET", key, base64.StdEncoding.EncodeToString(data), "EX", seconds)
	return err
}
