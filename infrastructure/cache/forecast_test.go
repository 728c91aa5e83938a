package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

func TestStorageKey(t *testing.T) {
	a := StorageKey("abc|UEN1|Norte|Retail|Viniltex|100|Pintura A|12")
	b := StorageKey("abc|UEN1|Norte|Retail|Viniltex|100|Pintura A|12")
	c := StorageKey("abc|UEN1|Norte|Retail|Viniltex|100|Pintura A|13")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "forecast:"))
	assert.Len(t, a, len("forecast:")+32)
}

func TestRedisForecastCache_Unavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisForecastCache(client, time.Minute)

	result, err := c.Get(context.Background(), "chave")
	assert.Error(t, err)
	assert.Nil(t, result)

	err = c.Set(context.Background(), "chave", &domain.ForecastResult{ID: "x"})
	assert.Error(t, err)
}
