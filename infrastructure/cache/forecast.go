// Package cache guarda previsões completas no Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

//go:generate mockgen -source=forecast.go -destination=mocks/mock_forecast.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const keyPrefix = "forecast:"

type ForecastCache interface {
	// Get devolve nil, nil quando a chave não existe
	Get(ctx context.Context, key string) (*domain.ForecastResult, error)
	Set(ctx context.Context, key string, result *domain.ForecastResult) error
}

type RedisForecastCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisClient abre o cliente e confere a conexão
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("erro ao conectar ao redis: %w", err)
	}

	return client, nil
}

func NewRedisForecastCache(client redis.Cmdable, ttl time.Duration) *RedisForecastCache {
	return &RedisForecastCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisForecastCache) Get(ctx context.Context, key string) (*domain.ForecastResult, error) {
	raw, err := c.client.Get(ctx, StorageKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao ler previsão do cache: %w", err)
	}

	var result domain.ForecastResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("erro ao decodificar previsão do cache: %w", err)
	}
	return &result, nil
}

func (c *RedisForecastCache) Set(ctx context.Context, key string, result *domain.ForecastResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("erro ao serializar previsão: %w", err)
	}

	if err := c.client.Set(ctx, StorageKey(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("erro ao gravar previsão no cache: %w", err)
	}
	return nil
}

// StorageKey resume a chave lógica em um hash de tamanho fixo
func StorageKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return keyPrefix + hex.EncodeToString(sum[:16])
}
