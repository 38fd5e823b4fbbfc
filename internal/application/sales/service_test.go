package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lot-pos/lot-api/internal/application/dto"
	"github.com/lot-pos/lot-api/internal/application/events"
	"github.com/lot-pos/lot-api/internal/application/sales"
	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
	"github.com/lot-pos/lot-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[int64]*entity.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListByTag(ctx context.Context, tagID int64) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id int64) error          { return nil }
func (f *fakeProductRepo) AddTag(ctx context.Context, productID, tagID int64) error {
	return nil
}
func (f *fakeProductRepo) RemoveTag(ctx context.Context, productID, tagID int64) error {
	return nil
}

// fakeInventoryRepo indexa por productID; los IDs de fila coinciden con el
// productID para simplificar UpdateQuantity.
type fakeInventoryRepo struct {
	rows map[int64]*entity.InventoryByProduct
}

func (f *fakeInventoryRepo) Create(ctx context.Context, inv *entity.InventoryByProduct) error {
	return nil
}
func (f *fakeInventoryRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryByProduct, error) {
	return f.rows[id], nil
}
func (f *fakeInventoryRepo) GetByProduct(ctx context.Context, productID int64) (*entity.InventoryByProduct, error) {
	row := f.rows[productID]
	if row == nil {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}
func (f *fakeInventoryRepo) GetByProductForUpdate(ctx context.Context, productID int64) (*entity.InventoryByProduct, error) {
	row := f.rows[productID]
	if row == nil {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}
func (f *fakeInventoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryByProduct, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) Update(ctx context.Context, inv *entity.InventoryByProduct) error {
	return nil
}
func (f *fakeInventoryRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	if row := f.rows[id]; row != nil {
		row.Quantity = quantity
	}
	return nil
}
func (f *fakeInventoryRepo) Delete(ctx context.Context, id int64) error { return nil }
func (f *fakeInventoryRepo) GetCategoryStats(ctx context.Context, categoryID int64) (*repository.CategoryInventoryStats, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) GetCategoryAverages(ctx context.Context, categoryID int64) (*repository.CategoryStockAverages, error) {
	return nil, nil
}

type fakeSaleRepo struct {
	sales  map[int64]*entity.Sale
	nextID int64
}

func (f *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	f.nextID++
	sale.ID = f.nextID
	cp := *sale
	f.sales[sale.ID] = &cp
	return nil
}
func (f *fakeSaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	return f.sales[id], nil
}
func (f *fakeSaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(f.sales))
	for _, s := range f.sales {
		out = append(out, s)
	}
	return out, nil
}
func (f *fakeSaleRepo) Delete(ctx context.Context, id int64) error {
	delete(f.sales, id)
	return nil
}

type fakeComboRepo struct {
	combos map[int64]*entity.Combo
}

func (f *fakeComboRepo) Create(ctx context.Context, combo *entity.Combo) error { return nil }
func (f *fakeComboRepo) GetWithItems(ctx context.Context, id int64) (*entity.Combo, error) {
	return f.combos[id], nil
}
func (f *fakeComboRepo) List(ctx context.Context) ([]*entity.Combo, error) { return nil, nil }
func (f *fakeComboRepo) UpdateName(ctx context.Context, id int64, name string) error {
	return nil
}
func (f *fakeComboRepo) AddItem(ctx context.Context, item *entity.ComboItem) error { return nil }
func (f *fakeComboRepo) RemoveItem(ctx context.Context, comboID, productID int64) error {
	return nil
}
func (f *fakeComboRepo) Delete(ctx context.Context, id int64) error { return nil }

// fakeTxRunner ejecuta la función directamente sobre los fakes compartidos.
type fakeTxRunner struct {
	repos sales.TxRepos
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(sales.TxRepos) error) error {
	return fn(f.repos)
}

type fakePublisher struct {
	events []events.SaleCompleted
}

func (f *fakePublisher) Publish(event events.SaleCompleted) {
	f.events = append(f.events, event)
}

type fakeStockCache struct {
	store       map[int64]sales.CachedStock
	invalidated []int64
}

func (f *fakeStockCache) Get(ctx context.Context, productID int64) (*sales.CachedStock, bool) {
	if s, ok := f.store[productID]; ok {
		return &s, true
	}
	return nil, false
}
func (f *fakeStockCache) Set(ctx context.Context, productID int64, stock sales.CachedStock) {
	f.store[productID] = stock
}
func (f *fakeStockCache) Invalidate(ctx context.Context, productIDs ...int64) {
	f.invalidated = append(f.invalidated, productIDs...)
	for _, id := range productIDs {
		delete(f.store, id)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	svc       *sales.Service
	products  *fakeProductRepo
	inventory *fakeInventoryRepo
	sales     *fakeSaleRepo
	combos    *fakeComboRepo
	publisher *fakePublisher
	cache     *fakeStockCache
}

func newFixture() *fixture {
	products := &fakeProductRepo{products: map[int64]*entity.Product{
		1: {ID: 1, Name: "Gaseosa 1.5L", CategoryID: 1, CategoryName: "Bebidas", SalePrice: decimal.NewFromFloat(2.50)},
		2: {ID: 2, Name: "Papas fritas 45g", CategoryID: 2, CategoryName: "Snacks", SalePrice: decimal.NewFromFloat(2.00)},
	}}
	inventory := &fakeInventoryRepo{rows: map[int64]*entity.InventoryByProduct{
		1: {ID: 1, ProductID: 1, Quantity: 10, MinimumStock: 3, UnitPrice: decimal.NewFromFloat(2.50)},
		2: {ID: 2, ProductID: 2, Quantity: 5, MinimumStock: 2, UnitPrice: decimal.NewFromFloat(2.00)},
	}}
	saleRepo := &fakeSaleRepo{sales: map[int64]*entity.Sale{}}
	combos := &fakeComboRepo{combos: map[int64]*entity.Combo{
		7: {ID: 7, Name: "Combo Tarde", Items: []entity.ComboItem{
			{ComboID: 7, ProductID: 1, ProductName: "Gaseosa 1.5L", Quantity: 2},
			{ComboID: 7, ProductID: 2, ProductName: "Papas fritas 45g", Quantity: 1},
		}},
	}}
	publisher := &fakePublisher{}
	cache := &fakeStockCache{store: map[int64]sales.CachedStock{}}

	tx := &fakeTxRunner{repos: sales.TxRepos{
		Sales:     saleRepo,
		Inventory: inventory,
		Products:  products,
		Combos:    combos,
	}}
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	svc := sales.NewService(tx, saleRepo, inventory, products, combos, publisher, cache, log)
	return &fixture{
		svc:       svc,
		products:  products,
		inventory: inventory,
		sales:     saleRepo,
		combos:    combos,
		publisher: publisher,
		cache:     cache,
	}
}

func saleRequest(productID int64, quantity int) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		ProductID:    productID,
		Quantity:     quantity,
		UnitPrice:    decimal.NewFromFloat(2.50),
		CustomerName: "Cliente Uno",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta regular
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_VentaRegular_DescuentaStock(t *testing.T) {
	f := newFixture()

	out, err := f.svc.Create(context.Background(), saleRequest(1, 4))
	require.NoError(t, err)

	assert.Equal(t, 6, f.inventory.rows[1].Quantity, "10 - 4 deben quedar 6 unidades")
	assert.Equal(t, "Gaseosa 1.5L", out.ProductName)
	assert.Equal(t, "Bebidas", out.CategoryName)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromFloat(10.00)),
		"4 unidades a 2.50 deben totalizar 10.00, obtuvo %s", out.TotalAmount)
	assert.Len(t, f.sales.sales, 1, "la venta debe quedar persistida")
}

func TestCreate_VentaRegular_PublicaEventoEInvalidaCache(t *testing.T) {
	f := newFixture()

	out, err := f.svc.Create(context.Background(), saleRequest(1, 4))
	require.NoError(t, err)

	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, out.ID, event.SaleID)
	assert.Equal(t, int64(1), event.CategoryID)
	assert.False(t, event.IsComboSale())

	assert.Contains(t, f.cache.invalidated, int64(1),
		"el cache de stock del producto vendido debe invalidarse")
}

func TestCreate_StockInsuficiente_RechazaSinMutar(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), saleRequest(1, 15))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var shortage *domain.StockShortageError
	require.ErrorAs(t, err, &shortage)
	require.Len(t, shortage.Shortages, 1)
	assert.Equal(t, 10, shortage.Shortages[0].Available)
	assert.Equal(t, 15, shortage.Shortages[0].Required)

	assert.Equal(t, 10, f.inventory.rows[1].Quantity, "el stock no debe mutar en un rechazo")
	assert.Empty(t, f.sales.sales, "no debe persistirse venta alguna")
	assert.Empty(t, f.publisher.events, "no debe publicarse evento")
}

func TestCreate_ProductoInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), saleRequest(99, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_SinFilaDeInventario_ReportaDisponibleCero(t *testing.T) {
	f := newFixture()
	delete(f.inventory.rows, 2)

	_, err := f.svc.Create(context.Background(), saleRequest(2, 1))
	var shortage *domain.StockShortageError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, 0, shortage.Shortages[0].Available)
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta de combo
// ──────────────────────────────────────────────────────────────────────────────

func comboRequest(comboID int64, quantity int) dto.CreateSaleRequest {
	req := saleRequest(0, quantity)
	req.ComboID = &comboID
	req.UnitPrice = decimal.NewFromFloat(6.00)
	return req
}

func TestCreate_Combo_DescuentaCadaComponente(t *testing.T) {
	f := newFixture()

	out, err := f.svc.Create(context.Background(), comboRequest(7, 2))
	require.NoError(t, err)

	// Receta: 2x gaseosa + 1x papas, por combo. Dos combos: 4 y 2 unidades.
	assert.Equal(t, 6, f.inventory.rows[1].Quantity)
	assert.Equal(t, 3, f.inventory.rows[2].Quantity)

	assert.Equal(t, "Combo Tarde", out.ProductName, "la venta lleva el nombre del combo")
	assert.Equal(t, entity.ComboCategoryName, out.CategoryName)
	require.NotNil(t, out.ComboID)
	assert.Equal(t, int64(7), *out.ComboID)
	assert.Equal(t, int64(1), out.ProductID, "producto de referencia: primer item del combo")
}

func TestCreate_Combo_TodoONada(t *testing.T) {
	f := newFixture()
	f.inventory.rows[2].Quantity = 1 // papas insuficientes para 2 combos

	_, err := f.svc.Create(context.Background(), comboRequest(7, 2))
	require.Error(t, err)

	var shortage *domain.StockShortageError
	require.ErrorAs(t, err, &shortage)
	require.Len(t, shortage.Shortages, 1)
	assert.Equal(t, "Papas fritas 45g", shortage.Shortages[0].ProductName)
	assert.Equal(t, 1, shortage.Shortages[0].Available)
	assert.Equal(t, 2, shortage.Shortages[0].Required)

	// Ningún componente debe mutar, ni siquiera los que sí tenían stock.
	assert.Equal(t, 10, f.inventory.rows[1].Quantity)
	assert.Equal(t, 1, f.inventory.rows[2].Quantity)
	assert.Empty(t, f.sales.sales)
}

func TestCreate_Combo_ReportaTodosLosFaltantes(t *testing.T) {
	f := newFixture()
	f.inventory.rows[1].Quantity = 1
	f.inventory.rows[2].Quantity = 0

	_, err := f.svc.Create(context.Background(), comboRequest(7, 2))

	var shortage *domain.StockShortageError
	require.ErrorAs(t, err, &shortage)
	assert.Len(t, shortage.Shortages, 2, "el rechazo debe listar cada producto corto")
}

func TestCreate_ComboInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), comboRequest(99, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_ComboSinItems(t *testing.T) {
	f := newFixture()
	f.combos.combos[8] = &entity.Combo{ID: 8, Name: "Combo Vacío"}

	_, err := f.svc.Create(context.Background(), comboRequest(8, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación con restauración de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_VentaRegular_RestauraStock(t *testing.T) {
	f := newFixture()
	out, err := f.svc.Create(context.Background(), saleRequest(1, 4))
	require.NoError(t, err)
	require.Equal(t, 6, f.inventory.rows[1].Quantity)

	require.NoError(t, f.svc.Delete(context.Background(), out.ID))

	assert.Equal(t, 10, f.inventory.rows[1].Quantity, "el stock descontado debe restaurarse")
	assert.Empty(t, f.sales.sales)
}

func TestDelete_VentaCombo_RestauraPorReceta(t *testing.T) {
	f := newFixture()
	out, err := f.svc.Create(context.Background(), comboRequest(7, 2))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), out.ID))

	assert.Equal(t, 10, f.inventory.rows[1].Quantity)
	assert.Equal(t, 5, f.inventory.rows[2].Quantity)
}

func TestDelete_InventarioEliminado_NoFalla(t *testing.T) {
	f := newFixture()
	out, err := f.svc.Create(context.Background(), saleRequest(1, 4))
	require.NoError(t, err)

	delete(f.inventory.rows, 1)

	assert.NoError(t, f.svc.Delete(context.Background(), out.ID),
		"sin fila de inventario la eliminación continúa y solo se registra la advertencia")
	assert.Empty(t, f.sales.sales)
}

func TestDelete_VentaInexistente(t *testing.T) {
	f := newFixture()
	assert.ErrorIs(t, f.svc.Delete(context.Background(), 99), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckStock
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckStock_EstadoSegunMinimo(t *testing.T) {
	f := newFixture()

	out, err := f.svc.CheckStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "NORMAL", out.Status)
	assert.Equal(t, 10, out.CurrentStock)
	assert.True(t, out.CanSell)

	f.inventory.rows[2].Quantity = 2 // igual al mínimo
	f.cache.Invalidate(context.Background(), 2)
	out, err = f.svc.CheckStock(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "BAJO", out.Status, "stock igual al mínimo debe reportarse BAJO")
	assert.True(t, out.CanSell, "stock bajo pero positivo sigue siendo vendible")

	f.inventory.rows[2].Quantity = 0
	f.cache.Invalidate(context.Background(), 2)
	out, err = f.svc.CheckStock(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, out.CanSell, "sin existencias no se puede vender")
}

func TestCheckStock_UsaCache(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CheckStock(context.Background(), 1)
	require.NoError(t, err)
	require.Contains(t, f.cache.store, int64(1), "la primera consulta debe poblar el cache")

	// Mutamos el inventario sin invalidar: la lectura debe venir del cache.
	f.inventory.rows[1].Quantity = 1
	out, err := f.svc.CheckStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, out.CurrentStock)
}

func TestCheckStock_ProductoSinInventario(t *testing.T) {
	f := newFixture()
	delete(f.inventory.rows, 2)

	_, err := f.svc.CheckStock(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
