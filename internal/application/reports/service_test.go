package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lot-pos/lot-api/internal/application/events"
	"github.com/lot-pos/lot-api/internal/application/reports"
	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
	"github.com/lot-pos/lot-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCategoryRepo struct {
	categories map[int64]*entity.Category
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *entity.Category) error { return nil }
func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return f.categories[id], nil
}
func (f *fakeCategoryRepo) List(ctx context.Context) ([]*entity.Category, error) { return nil, nil }
func (f *fakeCategoryRepo) Update(ctx context.Context, c *entity.Category) error { return nil }
func (f *fakeCategoryRepo) Delete(ctx context.Context, id int64) error           { return nil }

// fakeStatsRepo implementa solo el camino de agregados del repositorio de
// inventario; el resto no se usa en este servicio.
type fakeStatsRepo struct {
	stats map[int64]*repository.CategoryInventoryStats
	avgs  map[int64]*repository.CategoryStockAverages
}

func (f *fakeStatsRepo) Create(ctx context.Context, inv *entity.InventoryByProduct) error {
	return nil
}
func (f *fakeStatsRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryByProduct, error) {
	return nil, nil
}
func (f *fakeStatsRepo) GetByProduct(ctx context.Context, productID int64) (*entity.InventoryByProduct, error) {
	return nil, nil
}
func (f *fakeStatsRepo) GetByProductForUpdate(ctx context.Context, productID int64) (*entity.InventoryByProduct, error) {
	return nil, nil
}
func (f *fakeStatsRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryByProduct, error) {
	return nil, nil
}
func (f *fakeStatsRepo) Update(ctx context.Context, inv *entity.InventoryByProduct) error {
	return nil
}
func (f *fakeStatsRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	return nil
}
func (f *fakeStatsRepo) Delete(ctx context.Context, id int64) error { return nil }
func (f *fakeStatsRepo) GetCategoryStats(ctx context.Context, categoryID int64) (*repository.CategoryInventoryStats, error) {
	return f.stats[categoryID], nil
}
func (f *fakeStatsRepo) GetCategoryAverages(ctx context.Context, categoryID int64) (*repository.CategoryStockAverages, error) {
	return f.avgs[categoryID], nil
}

type fakeCategoryReportRepo struct {
	reports map[int64]*entity.CategoryReport
	nextID  int64
}

func (f *fakeCategoryReportRepo) Create(ctx context.Context, r *entity.CategoryReport) error {
	f.nextID++
	r.ID = f.nextID
	cp := *r
	f.reports[r.ID] = &cp
	return nil
}
func (f *fakeCategoryReportRepo) GetByID(ctx context.Context, id int64) (*entity.CategoryReport, error) {
	return f.reports[id], nil
}
func (f *fakeCategoryReportRepo) List(ctx context.Context, limit, offset int) ([]*entity.CategoryReport, error) {
	out := make([]*entity.CategoryReport, 0, len(f.reports))
	for _, r := range f.reports {
		out = append(out, r)
	}
	return out, nil
}
func (f *fakeCategoryReportRepo) ListByDate(ctx context.Context, date time.Time) ([]*entity.CategoryReport, error) {
	return nil, nil
}

type fakeAverageReportRepo struct {
	reports map[int64]*entity.StockAverageReport
	nextID  int64
}

func (f *fakeAverageReportRepo) Create(ctx context.Context, r *entity.StockAverageReport) error {
	f.nextID++
	r.ID = f.nextID
	cp := *r
	f.reports[r.ID] = &cp
	return nil
}
func (f *fakeAverageReportRepo) GetByID(ctx context.Context, id int64) (*entity.StockAverageReport, error) {
	return f.reports[id], nil
}
func (f *fakeAverageReportRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockAverageReport, error) {
	return nil, nil
}
func (f *fakeAverageReportRepo) ListByDate(ctx context.Context, date time.Time) ([]*entity.StockAverageReport, error) {
	return nil, nil
}

type fakePDFGenerator struct {
	rendered []int64
}

func (f *fakePDFGenerator) CategoryReportPDF(report *entity.CategoryReport) ([]byte, error) {
	f.rendered = append(f.rendered, report.ID)
	return []byte("%PDF-1.4 fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	svc           *reports.Service
	categoryRepo  *fakeCategoryReportRepo
	averageRepo   *fakeAverageReportRepo
	statsRepo     *fakeStatsRepo
	pdf           *fakePDFGenerator
}

func newFixture() *fixture {
	categories := &fakeCategoryRepo{categories: map[int64]*entity.Category{
		1: {ID: 1, Name: "Bebidas"},
		2: {ID: 2, Name: "Vacía"},
	}}
	stats := &fakeStatsRepo{
		stats: map[int64]*repository.CategoryInventoryStats{
			1: {CategoryName: "Bebidas", TotalProducts: 10, TotalStock: 120, TotalValue: decimal.NewFromInt(450), LowStockCount: 3},
			2: {CategoryName: "Vacía"},
		},
		avgs: map[int64]*repository.CategoryStockAverages{
			1: {CategoryName: "Bebidas", RealAverage: decimal.NewFromInt(12), MinimumAvg: decimal.NewFromInt(5), TotalProducts: 10, LowStockCount: 3},
			2: {CategoryName: "Vacía"},
		},
	}
	categoryReports := &fakeCategoryReportRepo{reports: map[int64]*entity.CategoryReport{}}
	averageReports := &fakeAverageReportRepo{reports: map[int64]*entity.StockAverageReport{}}
	pdf := &fakePDFGenerator{}
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	svc := reports.NewService(categories, stats, categoryReports, averageReports, pdf, log)
	return &fixture{svc: svc, categoryRepo: categoryReports, averageRepo: averageReports, statsRepo: stats, pdf: pdf}
}

// ──────────────────────────────────────────────────────────────────────────────
// GenerateCategoryReport
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateCategoryReport_PersisteSnapshot(t *testing.T) {
	f := newFixture()

	out, err := f.svc.GenerateCategoryReport(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Bebidas", out.CategoryName)
	assert.Equal(t, 10, out.TotalProducts)
	assert.Equal(t, 120, out.TotalStock)
	assert.Equal(t, 3, out.LowStockProductCount)
	assert.Equal(t, "Medio", out.RiskLevel, "3 de 10 productos bajos es riesgo medio")
	assert.Len(t, f.categoryRepo.reports, 1, "el snapshot debe quedar persistido")
}

func TestGenerateCategoryReport_EsAditivo(t *testing.T) {
	f := newFixture()

	first, err := f.svc.GenerateCategoryReport(context.Background(), 1)
	require.NoError(t, err)
	second, err := f.svc.GenerateCategoryReport(context.Background(), 1)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID, "cada generación inserta una fila nueva")
	assert.Len(t, f.categoryRepo.reports, 2)
}

func TestGenerateCategoryReport_CategoriaInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.svc.GenerateCategoryReport(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// GenerateStockAverageReport
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateStockAverageReport_CalculaPorcentaje(t *testing.T) {
	f := newFixture()

	out, err := f.svc.GenerateStockAverageReport(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, out.LowStockPercentage.Equal(decimal.NewFromInt(30)),
		"3 de 10 productos bajos debe ser 30%%, obtuvo %s", out.LowStockPercentage)
	assert.Equal(t, "Regular", out.InventoryHealth)
	assert.NotEmpty(t, out.Recommendations)
}

func TestGenerateStockAverageReport_CategoriaSinInventario(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GenerateStockAverageReport(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"una categoría sin productos con inventario no tiene promedios definidos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Export PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestExportCategoryReportPDF(t *testing.T) {
	f := newFixture()
	out, err := f.svc.GenerateCategoryReport(context.Background(), 1)
	require.NoError(t, err)

	pdf, err := f.svc.ExportCategoryReportPDF(context.Background(), out.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Contains(t, f.pdf.rendered, out.ID)
}

func TestExportCategoryReportPDF_ReporteInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.svc.ExportCategoryReportPDF(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// SaleReportConsumer — regeneración tras ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleConsumer_RegeneraReportesTrasVenta(t *testing.T) {
	f := newFixture()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	consumer := reports.NewSaleReportConsumer(f.svc, log)

	consumer.Handle(events.SaleCompleted{
		SaleID:     1,
		ProductID:  1,
		CategoryID: 1,
		Quantity:   2,
		OccurredAt: time.Now(),
	})

	assert.Len(t, f.categoryRepo.reports, 1, "la venta debe disparar el reporte de categoría")
	assert.Len(t, f.averageRepo.reports, 1, "la venta debe disparar el reporte de promedios")
}

func TestSaleConsumer_IgnoraVentasDeCombo(t *testing.T) {
	f := newFixture()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	consumer := reports.NewSaleReportConsumer(f.svc, log)

	comboID := int64(7)
	consumer.Handle(events.SaleCompleted{
		SaleID:     1,
		ComboID:    &comboID,
		ComboName:  "Combo Tarde",
		OccurredAt: time.Now(),
	})

	assert.Empty(t, f.categoryRepo.reports, "las ventas de combo no regeneran reportes por categoría")
	assert.Empty(t, f.averageRepo.reports)
}
