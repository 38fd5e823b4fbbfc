package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/lot-pos/lot-api/internal/application/sales"
	"github.com/lot-pos/lot-api/pkg/config"
	"github.com/lot-pos/lot-api/pkg/logger"
	"github.com/lot-pos/lot-api/pkg/metrics"
)

var _ sales.StockCache = (*StockCache)(nil)

// StockCache cache-aside en Redis para la consulta de verificación de stock.
// Las mutaciones de inventario invalidan la clave; la entrada expira por TTL
// como red de seguridad.
type StockCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// NewStockCache conecta a Redis y construye el cache.
func NewStockCache(cfg config.RedisConfig, log *logger.Logger) (*StockCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StockCache{rdb: rdb, ttl: ttl, log: log}, nil
}

// Get obtiene el snapshot cacheado de un producto.
func (c *StockCache) Get(ctx context.Context, productID int64) (*sales.CachedStock, bool) {
	raw, err := c.rdb.Get(ctx, stockKey(productID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Int64("product_id", productID).Msg("fallo leyendo cache de stock")
		}
		metrics.StockCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}

	var stock sales.CachedStock
	if err := json.Unmarshal(raw, &stock); err != nil {
		metrics.StockCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.StockCacheHits.WithLabelValues("hit").Inc()
	return &stock, true
}

// Set guarda el snapshot con TTL. Un fallo aquí solo se registra: el cache es
// una optimización, nunca la fuente de verdad.
func (c *StockCache) Set(ctx context.Context, productID int64, stock sales.CachedStock) {
	raw, err := json.Marshal(stock)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, stockKey(productID), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Int64("product_id", productID).Msg("fallo escribiendo cache de stock")
	}
}

// Invalidate borra las claves de los productos indicados.
func (c *StockCache) Invalidate(ctx context.Context, productIDs ...int64) {
	if len(productIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		keys = append(keys, stockKey(id))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Msg("fallo invalidando cache de stock")
	}
}

// Close cierra la conexión con Redis.
func (c *StockCache) Close() error {
	return c.rdb.Close()
}

func stockKey(productID int64) string {
	return fmt.Sprintf("stock:%d", productID)
}
