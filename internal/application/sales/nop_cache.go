package sales

import (
	"context"

	"github.com/lot-pos/lot-api/pkg/metrics"
)

// NopStockCache implementación nula de StockCache para despliegues sin Redis.
type NopStockCache struct{}

func (NopStockCache) Get(ctx context.Context, productID int64) (*CachedStock, bool) {
	metrics.StockCacheHits.WithLabelValues("bypass").Inc()
	return nil, false
}

func (NopStockCache) Set(ctx context.Context, productID int64, stock CachedStock) {}

func (NopStockCache) Invalidate(ctx context.Context, productIDs ...int64) {}
