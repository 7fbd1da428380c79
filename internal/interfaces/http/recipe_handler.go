package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dcardona/fermentos-api/internal/application/dto"
	"github.com/dcardona/fermentos-api/internal/application/usecase"
	"github.com/dcardona/fermentos-api/internal/domain"
)

// RecipeHandler maneja las peticiones HTTP para plantillas de receta.
type RecipeHandler struct {
	uc *usecase.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *usecase.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

func recipeInput(in dto.RecipeRequest) usecase.RecipeInput {
	return usecase.RecipeInput{
		ProductInventoryID: in.ProductInventoryID,
		TemplateName:       in.TemplateName,
		Description:        in.Description,
		DefaultBatchSize:   in.DefaultBatchSize,
		DefaultUnit:        in.DefaultUnit,
		EstimatedDuration:  in.EstimatedDuration,
		IngredientTemplate: in.IngredientTemplate,
		Instructions:       in.Instructions,
	}
}

// Create registra una plantilla de receta.
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.RecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductInventoryID == nil || in.TemplateName == nil || *in.TemplateName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_inventory_id y template_name son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), recipeInput(in))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecipeFromEntity(out))
}

// GetByID devuelve una plantilla por id.
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.RecipeFromEntity(out))
}

// List lista las plantillas activas.
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	recipes, err := h.uc.List(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.RecipeListFromEntities(recipes))
}

// Update actualiza una plantilla; los campos nil conservan su valor.
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	var in dto.RecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), recipeInput(in))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.RecipeFromEntity(out))
}

// Delete desactiva una plantilla (borrado lógico). Se rechaza mientras un
// lote in_progress la referencie.
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la receta es usada por lotes de producción en curso"})
		}
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
