package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/domain"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
	"github.com/dcardona/fermentos-api/internal/domain/repository"
)

// RecipeUseCase administra las plantillas de receta.
type RecipeUseCase struct {
	recipeRepo repository.RecipeRepository
	itemRepo   repository.InventoryRepository
	batchRepo  repository.BatchRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(
	recipeRepo repository.RecipeRepository,
	itemRepo repository.InventoryRepository,
	batchRepo repository.BatchRepository,
) *RecipeUseCase {
	return &RecipeUseCase{recipeRepo: recipeRepo, itemRepo: itemRepo, batchRepo: batchRepo}
}

// RecipeInput entrada para crear o actualizar una receta; en actualización,
// nil conserva el valor actual.
type RecipeInput struct {
	ProductInventoryID *string
	TemplateName       *string
	Description        *string
	DefaultBatchSize   *decimal.Decimal
	DefaultUnit        *string
	EstimatedDuration  *decimal.Decimal
	IngredientTemplate json.RawMessage
	Instructions       *string
}

// Create registra una plantilla de receta. El producto debe existir y estar activo.
func (uc *RecipeUseCase) Create(ctx context.Context, input RecipeInput) (*entity.RecipeTemplate, error) {
	if input.ProductInventoryID == nil || input.TemplateName == nil || *input.TemplateName == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.itemRepo.GetByID(*input.ProductInventoryID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	recipe := &entity.RecipeTemplate{
		ID:                 uuid.New().String(),
		ProductInventoryID: *input.ProductInventoryID,
		TemplateName:       *input.TemplateName,
		Description:        input.Description,
		DefaultBatchSize:   input.DefaultBatchSize,
		DefaultUnit:        input.DefaultUnit,
		EstimatedDuration:  input.EstimatedDuration,
		IngredientTemplate: input.IngredientTemplate,
		Instructions:       input.Instructions,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.recipeRepo.Create(recipe); err != nil {
		return nil, fmt.Errorf("crear receta: %w", err)
	}
	return recipe, nil
}

// Update aplica cambios parciales. Un cambio de producto se valida contra el
// inventario activo.
func (uc *RecipeUseCase) Update(ctx context.Context, id string, input RecipeInput) (*entity.RecipeTemplate, error) {
	recipe, err := uc.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}

	if input.ProductInventoryID != nil {
		product, err := uc.itemRepo.GetByID(*input.ProductInventoryID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, domain.ErrNotFound
		}
		recipe.ProductInventoryID = *input.ProductInventoryID
	}
	if input.TemplateName != nil {
		recipe.TemplateName = *input.TemplateName
	}
	if input.Description != nil {
		recipe.Description = input.Description
	}
	if input.DefaultBatchSize != nil {
		recipe.DefaultBatchSize = input.DefaultBatchSize
	}
	if input.DefaultUnit != nil {
		recipe.DefaultUnit = input.DefaultUnit
	}
	if input.EstimatedDuration != nil {
		recipe.EstimatedDuration = input.EstimatedDuration
	}
	if input.IngredientTemplate != nil {
		recipe.IngredientTemplate = input.IngredientTemplate
	}
	if input.Instructions != nil {
		recipe.Instructions = input.Instructions
	}
	recipe.UpdatedAt = time.Now()

	if err := uc.recipeRepo.Update(recipe); err != nil {
		return nil, fmt.Errorf("actualizar receta: %w", err)
	}
	return recipe, nil
}

// Delete desactiva una receta (eliminación lógica). Se rechaza con
// ErrConflict mientras un lote in_progress la referencie.
func (uc *RecipeUseCase) Delete(ctx context.Context, id string) error {
	recipe, err := uc.recipeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return domain.ErrNotFound
	}
	active, err := uc.batchRepo.CountActiveByRecipe(id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.ErrConflict
	}
	return uc.recipeRepo.Deactivate(id)
}

// GetByID devuelve una receta por id.
func (uc *RecipeUseCase) GetByID(ctx context.Context, id string) (*entity.RecipeTemplate, error) {
	recipe, err := uc.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	return recipe, nil
}

// List lista las recetas activas.
func (uc *RecipeUseCase) List(ctx context.Context) ([]*entity.RecipeTemplate, error) {
	return uc.recipeRepo.ListActive()
}
