package alerts_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lot-pos/lot-api/internal/application/alerts"
	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
)

type fakeAlertRepo struct {
	items      []entity.StockAlertItem
	lastFilter repository.StockAlertFilter
}

func (f *fakeAlertRepo) GetAlerts(ctx context.Context, filter repository.StockAlertFilter) ([]entity.StockAlertItem, error) {
	f.lastFilter = filter
	return f.items, nil
}

func alertItem(name string, quantity, minimum int, price float64) entity.StockAlertItem {
	return entity.StockAlertItem{
		ProductName:  name,
		CategoryName: "Bebidas",
		Quantity:     quantity,
		MinStock:     minimum,
		UnitPrice:    decimal.NewFromFloat(price),
		StockDeficit: entity.DeficitFor(quantity, minimum),
		AlertLevel:   entity.AlertLevelFor(quantity, minimum),
	}
}

func TestGetAlerts_DevuelveItemsConTotal(t *testing.T) {
	repo := &fakeAlertRepo{items: []entity.StockAlertItem{
		alertItem("Gaseosa", 0, 10, 2.50),
		alertItem("Agua", 3, 10, 1.50),
	}}
	svc := alerts.NewService(repo)

	out, err := svc.GetAlerts(context.Background(), repository.StockAlertFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Total)
	require.Len(t, out.Alerts, 2)
	assert.Equal(t, entity.AlertLevelCritical, out.Alerts[0].AlertLevel)
	assert.Equal(t, 10, out.Alerts[0].StockDeficit)
}

func TestGetAlerts_PasaElFiltroAlRepositorio(t *testing.T) {
	repo := &fakeAlertRepo{}
	svc := alerts.NewService(repo)

	categoryID := int64(3)
	_, err := svc.GetAlerts(context.Background(), repository.StockAlertFilter{
		CategoryID:   &categoryID,
		CategoryName: "Beb",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.CategoryID)
	assert.Equal(t, int64(3), *repo.lastFilter.CategoryID)
	assert.Equal(t, "Beb", repo.lastFilter.CategoryName)
}

func TestGetAlerts_ValidacionDeFiltros(t *testing.T) {
	svc := alerts.NewService(&fakeAlertRepo{})
	future := time.Now().Add(48 * time.Hour)
	past := time.Now().Add(-48 * time.Hour)
	older := time.Now().Add(-96 * time.Hour)
	zero := int64(0)

	cases := []struct {
		name   string
		filter repository.StockAlertFilter
	}{
		{"categoryId cero", repository.StockAlertFilter{CategoryID: &zero}},
		{"fromDate futura", repository.StockAlertFilter{FromDate: &future}},
		{"toDate futura", repository.StockAlertFilter{ToDate: &future}},
		{"rango invertido", repository.StockAlertFilter{FromDate: &past, ToDate: &older}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.GetAlerts(context.Background(), tc.filter)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSummary_ConteosPorNivelYDeficit(t *testing.T) {
	repo := &fakeAlertRepo{items: []entity.StockAlertItem{
		alertItem("Gaseosa", 0, 10, 2.50),  // crítico, déficit 10 → 25.00
		alertItem("Agua", 0, 4, 1.00),      // crítico, déficit 4 → 4.00
		alertItem("Papas", 3, 10, 2.00),    // alto, déficit 7 → 14.00
		alertItem("Galletas", 8, 10, 3.00), // medio, déficit 2 → 6.00
	}}
	svc := alerts.NewService(repo)

	out, err := svc.Summary(context.Background(), repository.StockAlertFilter{})
	require.NoError(t, err)

	assert.Equal(t, 4, out.TotalAlerts)
	assert.Equal(t, 2, out.CriticalCount)
	assert.Equal(t, 1, out.HighCount)
	assert.Equal(t, 1, out.MediumCount)
	assert.True(t, out.TotalDeficitValue.Equal(decimal.NewFromFloat(49.00)),
		"déficit total esperado 49.00, obtuvo %s", out.TotalDeficitValue)
}

func TestSummary_TopCriticalOrdenadoPorValor(t *testing.T) {
	repo := &fakeAlertRepo{items: []entity.StockAlertItem{
		alertItem("Barato", 0, 4, 1.00),   // 4.00
		alertItem("Costoso", 0, 10, 5.00), // 50.00
		alertItem("Medio", 0, 6, 2.00),    // 12.00
	}}
	svc := alerts.NewService(repo)

	out, err := svc.Summary(context.Background(), repository.StockAlertFilter{})
	require.NoError(t, err)

	require.Len(t, out.TopCritical, 3)
	assert.Equal(t, "Costoso", out.TopCritical[0].ProductName)
	assert.Equal(t, "Medio", out.TopCritical[1].ProductName)
	assert.Equal(t, "Barato", out.TopCritical[2].ProductName)
}

func TestSummary_TopCriticalLimitadoACinco(t *testing.T) {
	var items []entity.StockAlertItem
	for i := 0; i < 8; i++ {
		items = append(items, alertItem("Producto", 0, 10+i, 1.00))
	}
	repo := &fakeAlertRepo{items: items}
	svc := alerts.NewService(repo)

	out, err := svc.Summary(context.Background(), repository.StockAlertFilter{})
	require.NoError(t, err)

	assert.Equal(t, 8, out.CriticalCount)
	assert.Len(t, out.TopCritical, 5, "el top de críticos se limita a 5 entradas")
}
