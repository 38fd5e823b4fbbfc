// Comando de desarrollo: siembra datos mínimos para probar la API en local
// (usuario administrador, catálogo base, productos e inventario inicial).
package main

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/infrastructure/postgres"
	"github.com/lot-pos/lot-api/pkg/config"
	"github.com/lot-pos/lot-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	categories := postgres.NewCategoryRepository(pool)
	units := postgres.NewUnitRepository(pool)
	products := postgres.NewProductRepository(pool)
	inventory := postgres.NewInventoryByProductRepository(pool)

	// Usuario administrador de desarrollo
	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña")
	}
	admin := &entity.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         entity.RoleAdministrator,
	}
	if err := users.Create(ctx, admin); err != nil && !errors.Is(err, domain.ErrDuplicate) {
		log.Fatal().Err(err).Msg("crear usuario administrador")
	}

	seedCategories := []*entity.Category{
		{Name: "Bebidas", Description: "Bebidas frías y calientes"},
		{Name: "Snacks", Description: "Pasabocas y mecato"},
		{Name: "Aseo", Description: "Productos de limpieza"},
	}
	for _, c := range seedCategories {
		if err := categories.Create(ctx, c); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			log.Fatal().Err(err).Str("category", c.Name).Msg("crear categoría")
		}
	}

	seedUnits := []*entity.Unit{
		{Name: "Unidad", Abbreviation: "und"},
		{Name: "Litro", Abbreviation: "lt"},
		{Name: "Paquete", Abbreviation: "paq"},
	}
	for _, u := range seedUnits {
		if err := units.Create(ctx, u); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			log.Fatal().Err(err).Str("unit", u.Name).Msg("crear unidad")
		}
	}

	type seedProduct struct {
		name          string
		categoryIdx   int
		unitIdx       int
		purchasePrice string
		salePrice     string
		quantity      int
		minimumStock  int
	}
	seedProducts := []seedProduct{
		{"Gaseosa 1.5L", 0, 1, "2500", "4000", 48, 12},
		{"Agua 600ml", 0, 0, "800", "1500", 60, 20},
		{"Papas fritas 45g", 1, 0, "1200", "2000", 30, 10},
		{"Galletas surtidas", 1, 2, "1800", "3000", 24, 8},
		{"Jabón en barra", 2, 0, "1500", "2500", 15, 5},
	}

	created := 0
	seedProductIDs := map[string]int64{}
	for _, sp := range seedProducts {
		purchase, _ := decimal.NewFromString(sp.purchasePrice)
		sale, _ := decimal.NewFromString(sp.salePrice)
		p := &entity.Product{
			Name:          sp.name,
			PurchasePrice: purchase,
			SalePrice:     sale,
			CategoryID:    seedCategories[sp.categoryIdx].ID,
			UnitID:        seedUnits[sp.unitIdx].ID,
		}
		if err := products.Create(ctx, p); err != nil {
			log.Fatal().Err(err).Str("product", sp.name).Msg("crear producto")
		}
		inv := &entity.InventoryByProduct{
			ProductID:    p.ID,
			Quantity:     sp.quantity,
			UnitPrice:    sale,
			MinimumStock: sp.minimumStock,
			EntryDate:    time.Now(),
		}
		if err := inventory.Create(ctx, inv); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			log.Fatal().Err(err).Str("product", sp.name).Msg("crear inventario")
		}
		seedProductIDs[sp.name] = p.ID
		created++
	}

	combos := postgres.NewComboRepository(pool)
	combo := &entity.Combo{
		Name:      "Combo Tarde",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
		Items: []entity.ComboItem{
			{ProductID: seedProductIDs["Gaseosa 1.5L"], Quantity: 1},
			{ProductID: seedProductIDs["Papas fritas 45g"], Quantity: 2},
		},
	}
	if err := combos.Create(ctx, combo); err != nil && !errors.Is(err, domain.ErrDuplicate) {
		log.Fatal().Err(err).Str("combo", combo.Name).Msg("crear combo")
	}

	log.Info().
		Int("products", created).
		Int("categories", len(seedCategories)).
		Int("units", len(seedUnits)).
		Msg("datos de desarrollo sembrados")
}
