package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dcardona/fermentos-api/internal/application/dto"
	"github.com/dcardona/fermentos-api/internal/application/usecase"
	"github.com/dcardona/fermentos-api/internal/domain"
)

// ItemHandler maneja las peticiones HTTP para los ítems de inventario.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create crea un ítem de inventario.
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Category == "" || in.Unit == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, category y unit son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), usecase.CreateItemInput{
		Name:                in.Name,
		Category:            in.Category,
		Unit:                in.Unit,
		CurrentStock:        in.CurrentStock,
		ReservedStock:       in.ReservedStock,
		ReorderPoint:        in.ReorderPoint,
		CostPerUnit:         in.CostPerUnit,
		DefaultSupplierID:   in.DefaultSupplierID,
		ShelfLifeDays:       in.ShelfLifeDays,
		StorageRequirements: in.StorageRequirements,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ItemFromEntity(out))
}

// GetByID devuelve un ítem por id.
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ItemFromEntity(out))
}

// List lista los ítems activos.
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ItemListFromEntities(items))
}

// ListLowStock lista los ítems en o bajo su punto de reorden.
func (h *ItemHandler) ListLowStock(c *fiber.Ctx) error {
	items, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ItemListFromEntities(items))
}

// Update actualiza los campos descriptivos de un ítem. Las columnas de stock
// no se tocan por esta vía.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), id, usecase.UpdateItemInput{
		Name:                in.Name,
		Category:            in.Category,
		Unit:                in.Unit,
		ReorderPoint:        in.ReorderPoint,
		CostPerUnit:         in.CostPerUnit,
		DefaultSupplierID:   in.DefaultSupplierID,
		ShelfLifeDays:       in.ShelfLifeDays,
		StorageRequirements: in.StorageRequirements,
		IsActive:            in.IsActive,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ItemFromEntity(out))
}

// Delete elimina un ítem. Se rechaza si un lote in_progress lo referencia.
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el ítem es usado por lotes de producción en curso"})
		}
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
