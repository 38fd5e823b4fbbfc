package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lot-pos/lot-api/internal/application/dto"
	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
	"github.com/lot-pos/lot-api/pkg/logger"
	"github.com/lot-pos/lot-api/pkg/metrics"
)

// PDFGenerator renderiza un reporte de categoría en PDF.
type PDFGenerator interface {
	CategoryReportPDF(report *entity.CategoryReport) ([]byte, error)
}

// Service genera y consulta los reportes derivados de inventario. Los reportes
// son snapshots aditivos: cada generación inserta una fila nueva.
type Service struct {
	categories      repository.CategoryRepository
	inventory       repository.InventoryByProductRepository
	categoryReports repository.CategoryReportRepository
	averageReports  repository.StockAverageReportRepository
	pdf             PDFGenerator
	log             *logger.Logger
}

// NewService construye el servicio de reportes.
func NewService(
	categories repository.CategoryRepository,
	inventory repository.InventoryByProductRepository,
	categoryReports repository.CategoryReportRepository,
	averageReports repository.StockAverageReportRepository,
	pdf PDFGenerator,
	log *logger.Logger,
) *Service {
	return &Service{
		categories:      categories,
		inventory:       inventory,
		categoryReports: categoryReports,
		averageReports:  averageReports,
		pdf:             pdf,
		log:             log,
	}
}

// GenerateCategoryReport calcula y persiste un snapshot del inventario de la
// categoría: total de productos, stock acumulado, valor total y productos en
// stock bajo.
func (s *Service) GenerateCategoryReport(ctx context.Context, categoryID int64) (*dto.CategoryReportResponse, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	stats, err := s.inventory.GetCategoryStats(ctx, categoryID)
	if err != nil {
		metrics.ReportGenerationFailures.Inc()
		return nil, err
	}

	report, err := entity.NewCategoryReport(
		categoryID,
		category.Name,
		time.Now().UTC(),
		stats.TotalProducts,
		stats.TotalStock,
		stats.TotalValue,
		stats.LowStockCount,
	)
	if err != nil {
		metrics.ReportGenerationFailures.Inc()
		return nil, err
	}
	if err := s.categoryReports.Create(ctx, report); err != nil {
		metrics.ReportGenerationFailures.Inc()
		return nil, err
	}

	metrics.ReportsGeneratedTotal.WithLabelValues("category").Inc()
	return toCategoryReportResponse(report), nil
}

// GenerateStockAverageReport calcula y persiste el snapshot de promedios de la
// categoría. Una categoría sin productos con inventario no tiene promedio
// definido y se rechaza.
func (s *Service) GenerateStockAverageReport(ctx context.Context, categoryID int64) (*dto.StockAverageReportResponse, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	avgs, err := s.inventory.GetCategoryAverages(ctx, categoryID)
	if err != nil {
		metrics.ReportGenerationFailures.Inc()
		return nil, err
	}
	if avgs.TotalProducts == 0 {
		return nil, fmt.Errorf("%w: la categoría no tiene productos con inventario", domain.ErrInvalidInput)
	}

	lowStockPct := lowStockPercentage(avgs.LowStockCount, avgs.TotalProducts)
	report, err := entity.NewStockAverageReport(
		categoryID,
		category.Name,
		time.Now().UTC(),
		avgs.RealAverage,
		avgs.MinimumAvg,
		avgs.TotalProducts,
		avgs.LowStockCount,
		lowStockPct,
	)
	if err != nil {
		metrics.ReportGenerationFailures.Inc()
		return nil, err
	}
	if err := s.averageReports.Create(ctx, report); err != nil {
		metrics.ReportGenerationFailures.Inc()
		return nil, err
	}

	metrics.ReportsGeneratedTotal.WithLabelValues("stock_average").Inc()
	return toStockAverageReportResponse(report), nil
}

// GetCategoryReport obtiene un reporte de categoría por id.
func (s *Service) GetCategoryReport(ctx context.Context, id int64) (*dto.CategoryReportResponse, error) {
	report, err := s.categoryReports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, nil
	}
	return toCategoryReportResponse(report), nil
}

// ListCategoryReports lista reportes de categoría, más recientes primero.
func (s *Service) ListCategoryReports(ctx context.Context, page dto.PageRequest) ([]dto.CategoryReportResponse, error) {
	page.DefaultPage()
	items, err := s.categoryReports.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryReportResponse, 0, len(items))
	for _, r := range items {
		out = append(out, *toCategoryReportResponse(r))
	}
	return out, nil
}

// ListCategoryReportsByDate lista reportes de categoría de un día concreto.
func (s *Service) ListCategoryReportsByDate(ctx context.Context, date time.Time) ([]dto.CategoryReportResponse, error) {
	items, err := s.categoryReports.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryReportResponse, 0, len(items))
	for _, r := range items {
		out = append(out, *toCategoryReportResponse(r))
	}
	return out, nil
}

// GetStockAverageReport obtiene un reporte de promedios por id.
func (s *Service) GetStockAverageReport(ctx context.Context, id int64) (*dto.StockAverageReportResponse, error) {
	report, err := s.averageReports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, nil
	}
	return toStockAverageReportResponse(report), nil
}

// ListStockAverageReports lista reportes de promedios, más recientes primero.
func (s *Service) ListStockAverageReports(ctx context.Context, page dto.PageRequest) ([]dto.StockAverageReportResponse, error) {
	page.DefaultPage()
	items, err := s.averageReports.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAverageReportResponse, 0, len(items))
	for _, r := range items {
		out = append(out, *toStockAverageReportResponse(r))
	}
	return out, nil
}

// ListStockAverageReportsByDate lista reportes de promedios de un día concreto.
func (s *Service) ListStockAverageReportsByDate(ctx context.Context, date time.Time) ([]dto.StockAverageReportResponse, error) {
	items, err := s.averageReports.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAverageReportResponse, 0, len(items))
	for _, r := range items {
		out = append(out, *toStockAverageReportResponse(r))
	}
	return out, nil
}

// ExportCategoryReportPDF renderiza un reporte de categoría existente en PDF.
func (s *Service) ExportCategoryReportPDF(ctx context.Context, id int64) ([]byte, error) {
	report, err := s.categoryReports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrNotFound
	}
	return s.pdf.CategoryReportPDF(report)
}

func lowStockPercentage(lowStockCount, totalProducts int) decimal.Decimal {
	if totalProducts == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(lowStockCount)).
		Div(decimal.NewFromInt(int64(totalProducts))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

func toCategoryReportResponse(r *entity.CategoryReport) *dto.CategoryReportResponse {
	return &dto.CategoryReportResponse{
		ID:                   r.ID,
		CategoryID:           r.CategoryID,
		CategoryName:         r.CategoryName,
		QueryDate:            r.QueryDate,
		TotalProducts:        r.TotalProducts,
		TotalStock:           r.TotalStock,
		TotalInventoryValue:  r.TotalInventoryValue,
		LowStockProductCount: r.LowStockProductCount,
		RiskLevel:            r.RiskLevel(),
	}
}

func toStockAverageReportResponse(r *entity.StockAverageReport) *dto.StockAverageReportResponse {
	return &dto.StockAverageReportResponse{
		ID:                   r.ID,
		CategoryID:           r.CategoryID,
		CategoryName:         r.CategoryName,
		QueryDate:            r.QueryDate,
		RealAverageStock:     r.RealAverageStock,
		AverageMinimumStock:  r.AverageMinimumStock,
		TotalProducts:        r.TotalProducts,
		LowStockProductCount: r.LowStockProductCount,
		LowStockPercentage:   r.LowStockPercentage,
		InventoryHealth:      r.InventoryHealth(),
		AttentionPriority:    r.AttentionPriority(),
		EfficiencyScore:      r.EfficiencyScore(),
		Recommendations:      r.Recommendations(),
	}
}
