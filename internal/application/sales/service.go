package sales

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/lot-pos/lot-api/internal/application/dto"
	"github.com/lot-pos/lot-api/internal/application/events"
	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
	"github.com/lot-pos/lot-api/pkg/logger"
	"github.com/lot-pos/lot-api/pkg/metrics"
)

// Service orquesta el registro de ventas: valida stock, descuenta inventario
// y persiste la venta en una sola transacción. Los efectos derivados
// (reportes, cache, eventos externos) se disparan después del commit.
type Service struct {
	tx        TxRunner
	sales     repository.SaleRepository
	inventory repository.InventoryByProductRepository
	products  repository.ProductRepository
	combos    repository.ComboRepository
	publisher events.Publisher
	cache     StockCache
	log       *logger.Logger
}

// NewService construye el servicio de ventas.
func NewService(
	tx TxRunner,
	sales repository.SaleRepository,
	inventory repository.InventoryByProductRepository,
	products repository.ProductRepository,
	combos repository.ComboRepository,
	publisher events.Publisher,
	cache StockCache,
	log *logger.Logger,
) *Service {
	return &Service{
		tx:        tx,
		sales:     sales,
		inventory: inventory,
		products:  products,
		combos:    combos,
		publisher: publisher,
		cache:     cache,
		log:       log,
	}
}

// Create registra una venta. Si la petición trae combo_id procesa la venta
// como combo (todo o nada sobre el stock de cada componente); de lo contrario
// descuenta el stock del producto indicado.
func (s *Service) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.ComboID != nil {
		return s.createComboSale(ctx, in)
	}
	return s.createRegularSale(ctx, in)
}

func (s *Service) createRegularSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	var (
		created    *entity.Sale
		categoryID int64
		touched    []int64
	)

	err := s.tx.Run(ctx, func(r TxRepos) error {
		product, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		inv, err := r.Inventory.GetByProductForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.NewStockShortageError(domain.StockShortage{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   0,
				Required:    in.Quantity,
			})
		}
		if in.Quantity > inv.Quantity {
			return domain.NewStockShortageError(domain.StockShortage{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   inv.Quantity,
				Required:    in.Quantity,
			})
		}

		sale, err := entity.NewSale(product.ID, product.Name, product.CategoryName, in.Quantity, in.UnitPrice, in.CustomerName, in.Notes)
		if err != nil {
			return err
		}
		if err := inv.ReduceStock(in.Quantity); err != nil {
			return err
		}
		if err := r.Inventory.UpdateQuantity(ctx, inv.ID, inv.Quantity); err != nil {
			return err
		}
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}

		created = sale
		categoryID = product.CategoryID
		touched = []int64{product.ID}
		return nil
	})
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	s.afterCommit(ctx, created, categoryID, touched, "regular")
	return toSaleResponse(created), nil
}

func (s *Service) createComboSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	var (
		created *entity.Sale
		touched []int64
	)

	err := s.tx.Run(ctx, func(r TxRepos) error {
		combo, err := r.Combos.GetWithItems(ctx, *in.ComboID)
		if err != nil {
			return err
		}
		if combo == nil {
			return domain.ErrNotFound
		}
		if len(combo.Items) == 0 {
			return domain.ErrInvalidInput
		}

		// Los bloqueos se adquieren en orden ascendente de producto para
		// evitar interbloqueos entre ventas de combos concurrentes.
		items := make([]entity.ComboItem, len(combo.Items))
		copy(items, combo.Items)
		sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

		type lockedStock struct {
			inv      *entity.InventoryByProduct
			required int
		}
		locked := make([]lockedStock, 0, len(items))
		var shortages []domain.StockShortage

		for _, item := range items {
			required := item.Quantity * in.Quantity
			inv, err := r.Inventory.GetByProductForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			available := 0
			if inv != nil {
				available = inv.Quantity
			}
			if available < required {
				shortages = append(shortages, domain.StockShortage{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
					Available:   available,
					Required:    required,
				})
				continue
			}
			locked = append(locked, lockedStock{inv: inv, required: required})
		}
		if len(shortages) > 0 {
			return domain.NewStockShortageError(shortages...)
		}

		for _, ls := range locked {
			if err := ls.inv.ReduceStock(ls.required); err != nil {
				return err
			}
			if err := r.Inventory.UpdateQuantity(ctx, ls.inv.ID, ls.inv.Quantity); err != nil {
				return err
			}
		}

		sale, err := entity.NewComboSale(combo.ID, combo.Name, combo.Items[0].ProductID, in.Quantity, in.UnitPrice, in.CustomerName, in.Notes)
		if err != nil {
			return err
		}
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}

		created = sale
		touched = make([]int64, 0, len(items))
		for _, item := range items {
			touched = append(touched, item.ProductID)
		}
		return nil
	})
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	s.afterCommit(ctx, created, 0, touched, "combo")
	return toSaleResponse(created), nil
}

// Delete elimina una venta y restaura el stock descontado. Para combos
// restaura cada componente según la receta vigente del combo.
func (s *Service) Delete(ctx context.Context, id int64) error {
	var touched []int64

	err := s.tx.Run(ctx, func(r TxRepos) error {
		sale, err := r.Sales.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}

		if sale.IsComboSale() {
			combo, err := r.Combos.GetWithItems(ctx, *sale.ComboID)
			if err != nil {
				return err
			}
			if combo != nil {
				for _, item := range combo.Items {
					if err := s.restoreStock(ctx, r, item.ProductID, item.Quantity*sale.Quantity); err != nil {
						return err
					}
					touched = append(touched, item.ProductID)
				}
			} else {
				s.log.Warn().
					Int64("sale_id", sale.ID).
					Int64("combo_id", *sale.ComboID).
					Msg("combo eliminado, no se puede restaurar el stock de la venta")
			}
		} else {
			if err := s.restoreStock(ctx, r, sale.ProductID, sale.Quantity); err != nil {
				return err
			}
			touched = append(touched, sale.ProductID)
		}

		return r.Sales.Delete(ctx, sale.ID)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, touched...)
	metrics.SalesDeletedTotal.Inc()
	return nil
}

func (s *Service) restoreStock(ctx context.Context, r TxRepos, productID int64, quantity int) error {
	inv, err := r.Inventory.GetByProductForUpdate(ctx, productID)
	if err != nil {
		return err
	}
	if inv == nil {
		// El registro de inventario fue eliminado después de la venta; no
		// hay fila a la cual devolver las unidades.
		s.log.Warn().
			Int64("product_id", productID).
			Int("quantity", quantity).
			Msg("inventario inexistente, stock de venta eliminada no restaurado")
		return nil
	}
	if err := inv.IncreaseStock(quantity); err != nil {
		return err
	}
	return r.Inventory.UpdateQuantity(ctx, inv.ID, inv.Quantity)
}

// GetByID obtiene una venta.
func (s *Service) GetByID(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	return toSaleResponse(sale), nil
}

// List lista ventas paginadas, más recientes primero.
func (s *Service) List(ctx context.Context, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	items, err := s.sales.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(items))
	for _, sale := range items {
		out = append(out, *toSaleResponse(sale))
	}
	return out, nil
}

// CheckStock consulta el stock vigente de un producto indicando si está en o
// bajo el mínimo configurado. Usa cache de lectura cuando está disponible.
func (s *Service) CheckStock(ctx context.Context, productID int64) (*dto.CheckStockResponse, error) {
	if cached, ok := s.cache.Get(ctx, productID); ok {
		return checkStockResponse(*cached), nil
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	inv, err := s.inventory.GetByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	stock := CachedStock{
		ProductID:    product.ID,
		ProductName:  product.Name,
		CurrentStock: inv.Quantity,
		MinimumStock: inv.MinimumStock,
	}
	s.cache.Set(ctx, productID, stock)
	return checkStockResponse(stock), nil
}

func (s *Service) afterCommit(ctx context.Context, sale *entity.Sale, categoryID int64, touched []int64, saleType string) {
	s.cache.Invalidate(ctx, touched...)
	metrics.SalesCreatedTotal.WithLabelValues(saleType).Inc()

	event := events.SaleCompleted{
		SaleID:       sale.ID,
		ProductID:    sale.ProductID,
		ProductName:  sale.ProductName,
		CategoryID:   categoryID,
		CategoryName: sale.CategoryName,
		Quantity:     sale.Quantity,
		UnitPrice:    sale.UnitPrice,
		TotalAmount:  sale.TotalAmount(),
		CustomerName: sale.CustomerName,
		ComboID:      sale.ComboID,
		ComboName:    sale.ComboName,
		OccurredAt:   time.Now().UTC(),
	}
	s.publisher.Publish(event)

	s.log.Info().
		Int64("sale_id", sale.ID).
		Str("type", saleType).
		Str("product", sale.ProductName).
		Int("quantity", sale.Quantity).
		Str("total", sale.TotalAmount().StringFixed(2)).
		Msg("venta registrada")
}

func (s *Service) recordRejection(err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, domain.ErrInsufficientStock):
		metrics.SalesRejectedTotal.WithLabelValues("insufficient_stock").Inc()
	case errors.Is(err, domain.ErrNotFound):
		metrics.SalesRejectedTotal.WithLabelValues("not_found").Inc()
	case errors.Is(err, domain.ErrInvalidInput):
		metrics.SalesRejectedTotal.WithLabelValues("invalid_input").Inc()
	default:
		metrics.SalesRejectedTotal.WithLabelValues("error").Inc()
	}
}

func toSaleResponse(sale *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:           sale.ID,
		ProductID:    sale.ProductID,
		ProductName:  sale.ProductName,
		CategoryName: sale.CategoryName,
		SaleDate:     sale.SaleDate,
		Quantity:     sale.Quantity,
		UnitPrice:    sale.UnitPrice,
		TotalAmount:  sale.TotalAmount(),
		CustomerName: sale.CustomerName,
		Notes:        sale.Notes,
		ComboID:      sale.ComboID,
		ComboName:    sale.ComboName,
		SaleType:     sale.SaleType(),
	}
}

func checkStockResponse(stock CachedStock) *dto.CheckStockResponse {
	status := "NORMAL"
	if stock.CurrentStock <= stock.MinimumStock {
		status = "BAJO"
	}
	return &dto.CheckStockResponse{
		ProductID:    stock.ProductID,
		ProductName:  stock.ProductName,
		CurrentStock: stock.CurrentStock,
		MinimumStock: stock.MinimumStock,
		Status:       status,
		CanSell:      stock.CurrentStock > 0,
	}
}
