// Package cache реализует кэш ответов на запросы доступных слотов.
// Выдача слотов - идемпотентный read-only запрос, поэтому безопасно
// кэшируется на короткий TTL. Календарь общий для всех услуг: бронирование
// одной услуги занимает окно и в выдаче остальных, поэтому создание и
// отмена бронирования сбрасывают кэш всех услуг на дату.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss возвращается при отсутствии значения в кэше
var ErrCacheMiss = errors.New("slots cache: miss")

// SlotsCache кэш сериализованных ответов со списками слотов
type SlotsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSlotsCache создает кэш и проверяет соединение с redis
func NewSlotsCache(addr string, ttl time.Duration) (*SlotsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("slots cache: ping failed: %w", err)
	}

	return &SlotsCache{client: client, ttl: ttl}, nil
}

// Ключи строятся от даты, чтобы инвалидация по дате покрывала все услуги
func slotsKey(serviceID int64, date string) string {
	return fmt.Sprintf("slots:%s:%d", date, serviceID)
}

func datePattern(date string) string {
	return fmt.Sprintf("slots:%s:*", date)
}

// Get возвращает закэшированный ответ для услуги и даты
func (c *SlotsCache) Get(ctx context.Context, serviceID int64, date string) ([]byte, error) {
	data, err := c.client.Get(ctx, slotsKey(serviceID, date)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("slots cache: get: %w", err)
	}
	return data, nil
}

// Set сохраняет ответ для услуги и даты с TTL
func (c *SlotsCache) Set(ctx context.Context, serviceID int64, date string, data []byte) error {
	if err := c.client.Set(ctx, slotsKey(serviceID, date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("slots cache: set: %w", err)
	}
	return nil
}

// InvalidateDate сбрасывает кэш всех услуг на дату.
// Вызывается после создания или отмены бронирования.
func (c *SlotsCache) InvalidateDate(ctx context.Context, date string) error {
	iter := c.client.Scan(ctx, 0, datePattern(date), 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("slots cache: invalidate: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("slots cache: invalidate scan: %w", err)
	}
	return nil
}

// Close закрывает соединение с redis
func (c *SlotsCache) Close() error {
	return c.client.Close()
}
