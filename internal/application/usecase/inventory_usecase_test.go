package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lot-pos/lot-api/internal/application/dto"
	"github.com/lot-pos/lot-api/internal/application/sales"
	"github.com/lot-pos/lot-api/internal/application/usecase"
	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
)

type fakeInvRepo struct {
	rows   map[int64]*entity.InventoryByProduct
	nextID int64
}

func newFakeInvRepo() *fakeInvRepo {
	return &fakeInvRepo{rows: map[int64]*entity.InventoryByProduct{}}
}

func (f *fakeInvRepo) Create(ctx context.Context, inv *entity.InventoryByProduct) error {
	f.nextID++
	inv.ID = f.nextID
	f.rows[inv.ID] = inv
	return nil
}
func (f *fakeInvRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryByProduct, error) {
	return f.rows[id], nil
}
func (f *fakeInvRepo) GetByProduct(ctx context.Context, productID int64) (*entity.InventoryByProduct, error) {
	for _, inv := range f.rows {
		if inv.ProductID == productID {
			return inv, nil
		}
	}
	return nil, nil
}
func (f *fakeInvRepo) GetByProductForUpdate(ctx context.Context, productID int64) (*entity.InventoryByProduct, error) {
	return f.GetByProduct(ctx, productID)
}
func (f *fakeInvRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryByProduct, error) {
	out := make([]*entity.InventoryByProduct, 0, len(f.rows))
	for _, inv := range f.rows {
		out = append(out, inv)
	}
	return out, nil
}
func (f *fakeInvRepo) Update(ctx context.Context, inv *entity.InventoryByProduct) error {
	f.rows[inv.ID] = inv
	return nil
}
func (f *fakeInvRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	if inv := f.rows[id]; inv != nil {
		inv.Quantity = quantity
	}
	return nil
}
func (f *fakeInvRepo) Delete(ctx context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}
func (f *fakeInvRepo) GetCategoryStats(ctx context.Context, categoryID int64) (*repository.CategoryInventoryStats, error) {
	return &repository.CategoryInventoryStats{}, nil
}
func (f *fakeInvRepo) GetCategoryAverages(ctx context.Context, categoryID int64) (*repository.CategoryStockAverages, error) {
	return &repository.CategoryStockAverages{}, nil
}

type fakeBatchRepo struct{}

func (fakeBatchRepo) Create(ctx context.Context, batch *entity.InventoryByBatch) error { return nil }
func (fakeBatchRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryByBatch, error) {
	return nil, nil
}
func (fakeBatchRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryByBatch, error) {
	return nil, nil
}
func (fakeBatchRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeProductRepo struct {
	products map[int64]*entity.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error { return nil }
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
func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id int64) error                { return nil }
func (f *fakeProductRepo) AddTag(ctx context.Context, productID, tagID int64) error  { return nil }
func (f *fakeProductRepo) RemoveTag(ctx context.Context, productID, tagID int64) error {
	return nil
}

type recordingStockCache struct {
	invalidated []int64
}

func (recordingStockCache) Get(ctx context.Context, productID int64) (*sales.CachedStock, bool) {
	return nil, false
}
func (recordingStockCache) Set(ctx context.Context, productID int64, stock sales.CachedStock) {}
func (c *recordingStockCache) Invalidate(ctx context.Context, productIDs ...int64) {
	c.invalidated = append(c.invalidated, productIDs...)
}

type invFixture struct {
	uc    *usecase.InventoryUseCase
	repo  *fakeInvRepo
	cache *recordingStockCache
}

func newInvFixture() *invFixture {
	repo := newFakeInvRepo()
	cache := &recordingStockCache{}
	products := &fakeProductRepo{products: map[int64]*entity.Product{
		10: {ID: 10, Name: "Gaseosa 1.5L"},
	}}
	repo.rows[1] = &entity.InventoryByProduct{
		ID:           1,
		ProductID:    10,
		Quantity:     8,
		UnitPrice:    decimal.RequireFromString("4000"),
		MinimumStock: 3,
		EntryDate:    time.Now().UTC(),
	}
	repo.nextID = 1
	return &invFixture{
		uc:    usecase.NewInventoryUseCase(repo, fakeBatchRepo{}, products, cache),
		repo:  repo,
		cache: cache,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Invalidación del cache de check-stock en mutaciones de inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateByProduct_InvalidaCacheDeStock(t *testing.T) {
	f := newInvFixture()

	out, err := f.uc.UpdateByProduct(context.Background(), 1, dto.UpdateInventoryByProductRequest{
		Quantity: dto.Patch[int]{Set: true, Value: 20},
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, 20, out.Quantity)
	assert.Equal(t, []int64{10}, f.cache.invalidated,
		"el PATCH de cantidad debe invalidar la clave de check-stock del producto")
}

func TestUpdateByProduct_RechazoNoInvalidaCache(t *testing.T) {
	f := newInvFixture()

	_, err := f.uc.UpdateByProduct(context.Background(), 1, dto.UpdateInventoryByProductRequest{
		Quantity: dto.Patch[int]{Set: true, Null: true},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.cache.invalidated, "una actualización rechazada no toca el cache")
	assert.Equal(t, 8, f.repo.rows[1].Quantity)
}

func TestIncreaseStock_SumaEInvalidaCache(t *testing.T) {
	f := newInvFixture()

	out, err := f.uc.IncreaseStock(context.Background(), 1, 5)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, 13, out.Quantity)
	assert.Equal(t, 13, f.repo.rows[1].Quantity)
	assert.Equal(t, []int64{10}, f.cache.invalidated)
}

func TestIncreaseStock_CantidadNoPositiva(t *testing.T) {
	f := newInvFixture()

	_, err := f.uc.IncreaseStock(context.Background(), 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 8, f.repo.rows[1].Quantity)
	assert.Empty(t, f.cache.invalidated)
}

func TestIncreaseStock_RegistroInexistente(t *testing.T) {
	f := newInvFixture()

	out, err := f.uc.IncreaseStock(context.Background(), 99, 5)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestDeleteByProduct_InvalidaCacheDeStock(t *testing.T) {
	f := newInvFixture()

	require.NoError(t, f.uc.DeleteByProduct(context.Background(), 1))
	assert.Equal(t, []int64{10}, f.cache.invalidated)
	assert.NotContains(t, f.repo.rows, int64(1))
}
