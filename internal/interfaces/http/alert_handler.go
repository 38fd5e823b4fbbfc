package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lot-pos/lot-api/internal/application/alerts"
	"github.com/lot-pos/lot-api/internal/application/dto"
	"github.com/lot-pos/lot-api/internal/domain/repository"
)

// AlertHandler consulta de alertas de stock bajo (protegido).
type AlertHandler struct {
	svc *alerts.Service
}

// NewAlertHandler construye el handler.
func NewAlertHandler(svc *alerts.Service) *AlertHandler {
	return &AlertHandler{svc: svc}
}

// List godoc
// @Summary      Listar alertas de stock bajo
// @Description  Productos con stock actual menor o igual al mínimo configurado, ordenados por severidad.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  int     false  "Filtrar por ID de categoría"
// @Param        category     query  string  false  "Filtrar por nombre de categoría (parcial)"
// @Param        from         query  string  false  "Fecha de entrada desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Fecha de entrada hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.StockAlertListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	filter, err := parseAlertFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: err.Error()})
	}
	out, err := h.svc.GetAlerts(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByCategory godoc
// @Summary      Listar alertas de stock de una categoría
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  int     true   "ID de la categoría"
// @Param        from         query  string  false  "Fecha de entrada desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Fecha de entrada hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.StockAlertListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/alerts/by-category [get]
func (h *AlertHandler) ListByCategory(c *fiber.Ctx) error {
	filter, err := parseAlertFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: err.Error()})
	}
	if filter.CategoryID == nil && filter.CategoryName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: "se requiere category_id o category"})
	}
	out, err := h.svc.GetAlerts(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de alertas de stock
// @Description  Conteos por severidad, valor total del déficit y top de productos críticos.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  int     false  "Filtrar por ID de categoría"
// @Param        category     query  string  false  "Filtrar por nombre de categoría (parcial)"
// @Param        from         query  string  false  "Fecha de entrada desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Fecha de entrada hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.StockAlertSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/alerts/summary [get]
func (h *AlertHandler) Summary(c *fiber.Ctx) error {
	filter, err := parseAlertFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: err.Error()})
	}
	out, err := h.svc.Summary(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func parseAlertFilter(c *fiber.Ctx) (repository.StockAlertFilter, error) {
	var filter repository.StockAlertFilter
	if v := c.QueryInt("category_id", 0); v > 0 {
		id := int64(v)
		filter.CategoryID = &id
	}
	filter.CategoryName = c.Query("category")
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errInvalidDate("from")
		}
		filter.FromDate = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errInvalidDate("to")
		}
		filter.ToDate = &t
	}
	return filter, nil
}

type invalidDateError struct{ field string }

func (e invalidDateError) Error() string { return "fecha inválida en " + e.field + ", se espera YYYY-MM-DD" }

func errInvalidDate(field string) error { return invalidDateError{field: field} }
