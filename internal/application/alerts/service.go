package alerts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lot-pos/lot-api/internal/application/dto"
	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
)

// Service consultas de alertas de stock: productos en o bajo su mínimo
// configurado, con filtros opcionales y un resumen agregado.
type Service struct {
	alerts repository.StockAlertReadRepository
}

// NewService construye el servicio de alertas.
func NewService(alerts repository.StockAlertReadRepository) *Service {
	return &Service{alerts: alerts}
}

// GetAlerts lista las alertas vigentes que satisfacen el filtro.
func (s *Service) GetAlerts(ctx context.Context, filter repository.StockAlertFilter) (*dto.StockAlertListResponse, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	items, err := s.alerts.GetAlerts(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StockAlertItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toAlertResponse(item))
	}
	return &dto.StockAlertListResponse{Alerts: out, Total: len(out)}, nil
}

// Summary agrega las alertas vigentes: conteo por nivel, valor del déficit
// total y los faltantes críticos más costosos.
func (s *Service) Summary(ctx context.Context, filter repository.StockAlertFilter) (*dto.StockAlertSummaryResponse, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	items, err := s.alerts.GetAlerts(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &dto.StockAlertSummaryResponse{
		TotalAlerts:       len(items),
		TotalDeficitValue: decimal.Zero,
	}
	var critical []entity.StockAlertItem
	for _, item := range items {
		switch item.AlertLevel {
		case entity.AlertLevelCritical:
			summary.CriticalCount++
			critical = append(critical, item)
		case entity.AlertLevelHigh:
			summary.HighCount++
		case entity.AlertLevelMedium:
			summary.MediumCount++
		}
		deficitValue := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.StockDeficit)))
		summary.TotalDeficitValue = summary.TotalDeficitValue.Add(deficitValue)
	}

	sort.Slice(critical, func(i, j int) bool {
		vi := critical[i].UnitPrice.Mul(decimal.NewFromInt(int64(critical[i].StockDeficit)))
		vj := critical[j].UnitPrice.Mul(decimal.NewFromInt(int64(critical[j].StockDeficit)))
		return vi.GreaterThan(vj)
	})
	if len(critical) > 5 {
		critical = critical[:5]
	}
	for _, item := range critical {
		summary.TopCritical = append(summary.TopCritical, toAlertResponse(item))
	}
	return summary, nil
}

func validateFilter(filter repository.StockAlertFilter) error {
	now := time.Now()
	if filter.CategoryID != nil && *filter.CategoryID <= 0 {
		return fmt.Errorf("%w: categoryId debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if filter.FromDate != nil && filter.FromDate.After(now) {
		return fmt.Errorf("%w: fromDate no puede ser futura", domain.ErrInvalidInput)
	}
	if filter.ToDate != nil && filter.ToDate.After(now) {
		return fmt.Errorf("%w: toDate no puede ser futura", domain.ErrInvalidInput)
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	return nil
}

func toAlertResponse(item entity.StockAlertItem) dto.StockAlertItemResponse {
	return dto.StockAlertItemResponse{
		ProductName:  item.ProductName,
		CategoryName: item.CategoryName,
		Quantity:     item.Quantity,
		MinStock:     item.MinStock,
		UnitPrice:    item.UnitPrice,
		EntryDate:    item.EntryDate,
		StockDeficit: item.StockDeficit,
		AlertLevel:   item.AlertLevel,
	}
}
