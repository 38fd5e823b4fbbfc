package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lot-pos/lot-api/internal/application/dto"
	"github.com/lot-pos/lot-api/internal/application/usecase"
)

// ComboHandler administración de combos (protegido).
type ComboHandler struct {
	uc *usecase.ComboUseCase
}

// NewComboHandler construye el handler.
func NewComboHandler(uc *usecase.ComboUseCase) *ComboHandler {
	return &ComboHandler{uc: uc}
}

// Create godoc
// @Summary      Crear combo
// @Tags         combos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateComboRequest  true  "Combo con sus componentes"
// @Success      201   {object}  dto.ComboResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/combos [post]
func (h *ComboHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateComboRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener combo por ID
// @Tags         combos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del combo"
// @Success      200  {object}  dto.ComboResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/combos/{id} [get]
func (h *ComboHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "combo no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar combos
// @Tags         combos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ComboResponse
// @Router       /api/v1/combos [get]
func (h *ComboHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rename godoc
// @Summary      Renombrar combo
// @Tags         combos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del combo"
// @Param        body  body  dto.UpdateComboNameRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.ComboResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/combos/{id} [put]
func (h *ComboHandler) Rename(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.UpdateComboNameRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Rename(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "combo no encontrado"})
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar producto a un combo
// @Tags         combos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del combo"
// @Param        body  body  dto.ComboItemRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.ComboResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/combos/{id}/items [post]
func (h *ComboHandler) AddItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.ComboItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddItem(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "combo no encontrado"})
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar producto de un combo
// @Tags         combos
// @Security     Bearer
// @Produce      json
// @Param        id         path  int  true  "ID del combo"
// @Param        productId  path  int  true  "ID del producto"
// @Success      200  {object}  dto.ComboResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/combos/{id}/items/{productId} [delete]
func (h *ComboHandler) RemoveItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "productId inválido"})
	}
	out, err := h.uc.RemoveItem(c.UserContext(), id, productID)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "combo no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar combo
// @Tags         combos
// @Security     Bearer
// @Param        id  path  int  true  "ID del combo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/combos/{id} [delete]
func (h *ComboHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
