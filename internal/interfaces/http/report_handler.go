package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lot-pos/lot-api/internal/application/dto"
	"github.com/lot-pos/lot-api/internal/application/reports"
)

// ReportHandler generación y consulta de reportes derivados (protegido).
type ReportHandler struct {
	svc *reports.Service
}

// NewReportHandler construye el handler.
func NewReportHandler(svc *reports.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// GenerateCategoryReport godoc
// @Summary      Generar reporte de inventario por categoría
// @Description  Calcula un snapshot del inventario de la categoría y lo persiste.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        categoryId  path  int  true  "ID de la categoría"
// @Success      201  {object}  dto.CategoryReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/categories/{categoryId} [post]
func (h *ReportHandler) GenerateCategoryReport(c *fiber.Ctx) error {
	categoryID, err := paramID(c, "categoryId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "categoryId inválido"})
	}
	out, err := h.svc.GenerateCategoryReport(c.UserContext(), categoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetCategoryReport godoc
// @Summary      Obtener reporte de categoría por ID
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del reporte"
// @Success      200  {object}  dto.CategoryReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/categories/{id} [get]
func (h *ReportHandler) GetCategoryReport(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.svc.GetCategoryReport(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reporte no encontrado"})
	}
	return c.JSON(out)
}

// ListCategoryReports godoc
// @Summary      Listar reportes de categoría (más recientes primero)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date    query  string  false  "Filtrar por fecha (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.CategoryReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/categories [get]
func (h *ReportHandler) ListCategoryReports(c *fiber.Ctx) error {
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: "fecha inválida, se espera YYYY-MM-DD"})
		}
		out, err := h.svc.ListCategoryReportsByDate(c.UserContext(), date)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.svc.ListCategoryReports(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GenerateStockAverageReport godoc
// @Summary      Generar reporte de promedios de stock por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        categoryId  path  int  true  "ID de la categoría"
// @Success      201  {object}  dto.StockAverageReportResponse
// @Failure      400  {object}  dto.ErrorResponse  "La categoría no tiene productos con inventario"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/stock-averages/{categoryId} [post]
func (h *ReportHandler) GenerateStockAverageReport(c *fiber.Ctx) error {
	categoryID, err := paramID(c, "categoryId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "categoryId inválido"})
	}
	out, err := h.svc.GenerateStockAverageReport(c.UserContext(), categoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetStockAverageReport godoc
// @Summary      Obtener reporte de promedios por ID
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del reporte"
// @Success      200  {object}  dto.StockAverageReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/stock-averages/{id} [get]
func (h *ReportHandler) GetStockAverageReport(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.svc.GetStockAverageReport(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reporte no encontrado"})
	}
	return c.JSON(out)
}

// ListStockAverageReports godoc
// @Summary      Listar reportes de promedios (más recientes primero)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date    query  string  false  "Filtrar por fecha (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.StockAverageReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/stock-averages [get]
func (h *ReportHandler) ListStockAverageReports(c *fiber.Ctx) error {
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: "fecha inválida, se espera YYYY-MM-DD"})
		}
		out, err := h.svc.ListStockAverageReportsByDate(c.UserContext(), date)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.svc.ListStockAverageReports(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportCategoryReportPDF godoc
// @Summary      Exportar reporte de categoría en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "ID del reporte"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/categories/{id}/pdf [get]
func (h *ReportHandler) ExportCategoryReportPDF(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	pdf, err := h.svc.ExportCategoryReportPDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="reporte_categoria_%d.pdf"`, id))
	return c.Send(pdf)
}
