package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/domain/entity"
)

// CreateItemRequest entrada para crear un ítem de inventario.
type CreateItemRequest struct {
	Name                string           `json:"name" validate:"required,min=1,max=200"`
	Category            string           `json:"category" validate:"required"`
	Unit                string           `json:"unit" validate:"required"`
	CurrentStock        *decimal.Decimal `json:"current_stock"`
	ReservedStock       *decimal.Decimal `json:"reserved_stock"`
	ReorderPoint        *decimal.Decimal `json:"reorder_point"`
	CostPerUnit         *decimal.Decimal `json:"cost_per_unit"`
	DefaultSupplierID   *string          `json:"default_supplier_id"`
	ShelfLifeDays       *int             `json:"shelf_life_days"`
	StorageRequirements *string          `json:"storage_requirements"`
}

// UpdateItemRequest entrada para actualizar un ítem. Sin columnas de stock:
// el stock solo cambia a través de las operaciones del libro.
type UpdateItemRequest struct {
	Name                *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category            *string          `json:"category"`
	Unit                *string          `json:"unit"`
	ReorderPoint        *decimal.Decimal `json:"reorder_point"`
	CostPerUnit         *decimal.Decimal `json:"cost_per_unit"`
	DefaultSupplierID   *string          `json:"default_supplier_id"`
	ShelfLifeDays       *int             `json:"shelf_life_days"`
	StorageRequirements *string          `json:"storage_requirements"`
	IsActive            *bool            `json:"is_active"`
}

// ItemResponse salida de un ítem de inventario.
type ItemResponse struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Category            string           `json:"category"`
	Unit                string           `json:"unit"`
	CurrentStock        decimal.Decimal  `json:"current_stock"`
	ReservedStock       decimal.Decimal  `json:"reserved_stock"`
	AvailableStock      decimal.Decimal  `json:"available_stock"`
	ReorderPoint        decimal.Decimal  `json:"reorder_point"`
	CostPerUnit         *decimal.Decimal `json:"cost_per_unit"`
	DefaultSupplierID   *string          `json:"default_supplier_id"`
	ShelfLifeDays       *int             `json:"shelf_life_days"`
	StorageRequirements *string          `json:"storage_requirements"`
	IsActive            bool             `json:"is_active"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// ItemListResponse lista de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// ItemFromEntity mapea la entidad a su respuesta HTTP.
func ItemFromEntity(it *entity.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:                  it.ID,
		Name:                it.Name,
		Category:            it.Category,
		Unit:                it.Unit,
		CurrentStock:        it.CurrentStock,
		ReservedStock:       it.ReservedStock,
		AvailableStock:      it.AvailableStock,
		ReorderPoint:        it.ReorderPoint,
		CostPerUnit:         it.CostPerUnit,
		DefaultSupplierID:   it.DefaultSupplierID,
		ShelfLifeDays:       it.ShelfLifeDays,
		StorageRequirements: it.StorageRequirements,
		IsActive:            it.IsActive,
		CreatedAt:           it.CreatedAt,
		UpdatedAt:           it.UpdatedAt,
	}
}

// ItemListFromEntities mapea una lista de entidades.
func ItemListFromEntities(items []*entity.InventoryItem) ItemListResponse {
	out := ItemListResponse{Items: make([]ItemResponse, 0, len(items)), Total: len(items)}
	for _, it := range items {
		out.Items = append(out.Items, ItemFromEntity(it))
	}
	return out
}
