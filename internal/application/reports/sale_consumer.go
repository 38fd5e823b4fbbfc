package reports

import (
	"context"
	"time"

	"github.com/lot-pos/lot-api/internal/application/events"
	"github.com/lot-pos/lot-api/pkg/logger"
)

// SaleReportConsumer regenera los reportes de la categoría afectada cada vez
// que se confirma una venta. Las ventas de combos no tienen una categoría
// única, así que solo se registra el resumen estructurado; sus reportes se
// regeneran bajo demanda.
type SaleReportConsumer struct {
	reports *Service
	log     *logger.Logger
	timeout time.Duration
}

// NewSaleReportConsumer construye el consumidor.
func NewSaleReportConsumer(reports *Service, log *logger.Logger) *SaleReportConsumer {
	return &SaleReportConsumer{
		reports: reports,
		log:     log,
		timeout: 15 * time.Second,
	}
}

// Handle procesa un evento SaleCompleted. Un fallo aquí se registra y se
// descarta: los reportes son derivados y nunca condicionan la venta.
func (c *SaleReportConsumer) Handle(event events.SaleCompleted) {
	if event.IsComboSale() {
		c.log.Info().
			Int64("sale_id", event.SaleID).
			Int64("combo_id", *event.ComboID).
			Str("combo", event.ComboName).
			Int("quantity", event.Quantity).
			Str("total", event.TotalAmount.StringFixed(2)).
			Msg("venta de combo registrada, reportes por categoría no aplican")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if _, err := c.reports.GenerateCategoryReport(ctx, event.CategoryID); err != nil {
		c.log.Error().Err(err).
			Int64("sale_id", event.SaleID).
			Int64("category_id", event.CategoryID).
			Msg("fallo generando reporte de categoría tras la venta")
	}
	if _, err := c.reports.GenerateStockAverageReport(ctx, event.CategoryID); err != nil {
		c.log.Error().Err(err).
			Int64("sale_id", event.SaleID).
			Int64("category_id", event.CategoryID).
			Msg("fallo generando reporte de stock promedio tras la venta")
	}
}
