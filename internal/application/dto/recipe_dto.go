package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/domain/entity"
)

// RecipeRequest entrada para crear o actualizar una plantilla de receta.
type RecipeRequest struct {
	ProductInventoryID *string          `json:"product_inventory_id"`
	TemplateName       *string          `json:"template_name" validate:"omitempty,min=1,max=200"`
	Description        *string          `json:"description"`
	DefaultBatchSize   *decimal.Decimal `json:"default_batch_size"`
	DefaultUnit        *string          `json:"default_unit"`
	EstimatedDuration  *decimal.Decimal `json:"estimated_duration_hours"`
	IngredientTemplate json.RawMessage  `json:"ingredient_template"`
	Instructions       *string          `json:"instructions"`
}

// RecipeResponse salida de una plantilla de receta.
type RecipeResponse struct {
	ID                 string           `json:"id"`
	ProductInventoryID string           `json:"product_inventory_id"`
	TemplateName       string           `json:"template_name"`
	Description        *string          `json:"description"`
	DefaultBatchSize   *decimal.Decimal `json:"default_batch_size"`
	DefaultUnit        *string          `json:"default_unit"`
	EstimatedDuration  *decimal.Decimal `json:"estimated_duration_hours"`
	IngredientTemplate json.RawMessage  `json:"ingredient_template"`
	Instructions       *string          `json:"instructions"`
	IsActive           bool             `json:"is_active"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// RecipeListResponse lista de plantillas de receta.
type RecipeListResponse struct {
	Items []RecipeResponse `json:"items"`
	Total int              `json:"total"`
}

// RecipeFromEntity mapea la entidad a su respuesta HTTP.
func RecipeFromEntity(r *entity.RecipeTemplate) RecipeResponse {
	return RecipeResponse{
		ID:                 r.ID,
		ProductInventoryID: r.ProductInventoryID,
		TemplateName:       r.TemplateName,
		Description:        r.Description,
		DefaultBatchSize:   r.DefaultBatchSize,
		DefaultUnit:        r.DefaultUnit,
		EstimatedDuration:  r.EstimatedDuration,
		IngredientTemplate: r.IngredientTemplate,
		Instructions:       r.Instructions,
		IsActive:           r.IsActive,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// RecipeListFromEntities mapea una lista de entidades.
func RecipeListFromEntities(recipes []*entity.RecipeTemplate) RecipeListResponse {
	out := RecipeListResponse{Items: make([]RecipeResponse, 0, len(recipes)), Total: len(recipes)}
	for _, r := range recipes {
		out.Items = append(out.Items, RecipeFromEntity(r))
	}
	return out
}
