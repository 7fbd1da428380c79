package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/application/ledger"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
)

// PurchaseLineRequest una línea de compra.
type PurchaseLineRequest struct {
	InventoryID string          `json:"inventory_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	ExpiryDate  *time.Time      `json:"expiry_date"`
	BatchNumber *string         `json:"batch_number"`
}

// PurchaseRequest entrada para registrar una compra.
type PurchaseRequest struct {
	SupplierID   string                `json:"supplier_id" validate:"required"`
	Items        []PurchaseLineRequest `json:"items" validate:"required,min=1"`
	PurchaseDate *time.Time            `json:"purchase_date"`
	Notes        *string               `json:"notes"`
}

// ToInput convierte la petición en la entrada del motor.
func (r PurchaseRequest) ToInput() ledger.PurchaseInput {
	in := ledger.PurchaseInput{
		SupplierID:   r.SupplierID,
		PurchaseDate: r.PurchaseDate,
		Notes:        r.Notes,
	}
	for _, line := range r.Items {
		in.Items = append(in.Items, ledger.PurchaseLineInput{
			InventoryID: line.InventoryID,
			Quantity:    line.Quantity,
			UnitCost:    line.UnitCost,
			ExpiryDate:  line.ExpiryDate,
			BatchNumber: line.BatchNumber,
		})
	}
	return in
}

// PurchaseResponse resultado de una compra.
type PurchaseResponse struct {
	Success      bool           `json:"success"`
	Message      string         `json:"message"`
	UpdatedItems []ItemResponse `json:"updated_items"`
}

// PurchaseFromResult mapea el resultado del motor.
func PurchaseFromResult(res *ledger.PurchaseResult) PurchaseResponse {
	out := PurchaseResponse{
		Success:      res.Success,
		Message:      res.Message,
		UpdatedItems: make([]ItemResponse, 0, len(res.UpdatedItems)),
	}
	for _, it := range res.UpdatedItems {
		out.UpdatedItems = append(out.UpdatedItems, ItemFromEntity(it))
	}
	return out
}

// IngredientRequest ingrediente a consumir al crear un lote.
type IngredientRequest struct {
	InventoryID  string          `json:"inventory_id" validate:"required"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
}

// CreateBatchRequest entrada para crear un lote de producción.
type CreateBatchRequest struct {
	ProductInventoryID      string              `json:"product_inventory_id" validate:"required"`
	RecipeTemplateID        *string             `json:"recipe_template_id"`
	BatchSize               decimal.Decimal     `json:"batch_size"`
	Unit                    string              `json:"unit" validate:"required"`
	EstimatedCompletionDate *time.Time          `json:"estimated_completion_date"`
	StorageLocation         *string             `json:"storage_location"`
	Ingredients             []IngredientRequest `json:"ingredients" validate:"required,min=1"`
	Notes                   *string             `json:"notes"`
}

// ToInput convierte la petición en la entrada del motor.
func (r CreateBatchRequest) ToInput() ledger.CreateBatchInput {
	in := ledger.CreateBatchInput{
		ProductInventoryID:      r.ProductInventoryID,
		RecipeTemplateID:        r.RecipeTemplateID,
		BatchSize:               r.BatchSize,
		Unit:                    r.Unit,
		EstimatedCompletionDate: r.EstimatedCompletionDate,
		StorageLocation:         r.StorageLocation,
		Notes:                   r.Notes,
	}
	for _, ing := range r.Ingredients {
		in.Ingredients = append(in.Ingredients, ledger.IngredientInput{
			InventoryID:  ing.InventoryID,
			QuantityUsed: ing.QuantityUsed,
		})
	}
	return in
}

// CompleteBatchRequest entrada para completar un lote.
type CompleteBatchRequest struct {
	ActualYield  decimal.Decimal `json:"actual_yield"`
	QualityNotes *string         `json:"quality_notes"`
}

// FailBatchRequest entrada para marcar un lote como fallido.
type FailBatchRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// BatchOperationResponse resultado de crear, completar o fallar un lote.
type BatchOperationResponse struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	BatchID     *string `json:"batch_id"`
	BatchNumber *string `json:"batch_number"`
}

// BatchOperationFromResult mapea el resultado del motor.
func BatchOperationFromResult(res *ledger.BatchResult) BatchOperationResponse {
	return BatchOperationResponse{
		Success:     res.Success,
		Message:     res.Message,
		BatchID:     res.BatchID,
		BatchNumber: res.BatchNumber,
	}
}

// AdjustmentRequest entrada para un ajuste manual de stock. Cantidad positiva
// suma, negativa resta.
type AdjustmentRequest struct {
	InventoryID string          `json:"inventory_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason" validate:"required"`
}

// AdjustmentResponse resultado de un ajuste manual.
type AdjustmentResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Item    *ItemResponse `json:"item,omitempty"`
}

// AdjustmentFromResult mapea el resultado del motor.
func AdjustmentFromResult(res *ledger.AdjustmentResult) AdjustmentResponse {
	out := AdjustmentResponse{Success: res.Success, Message: res.Message}
	if res.Item != nil {
		item := ItemFromEntity(res.Item)
		out.Item = &item
	}
	return out
}

// BatchResponse salida de un lote de producción.
type BatchResponse struct {
	ID                      string           `json:"id"`
	BatchNumber             string           `json:"batch_number"`
	ProductInventoryID      string           `json:"product_inventory_id"`
	RecipeTemplateID        *string          `json:"recipe_template_id"`
	BatchSize               decimal.Decimal  `json:"batch_size"`
	Unit                    string           `json:"unit"`
	StartDate               time.Time        `json:"start_date"`
	EstimatedCompletionDate *time.Time       `json:"estimated_completion_date"`
	CompletionDate          *time.Time       `json:"completion_date"`
	Status                  string           `json:"status"`
	ProductionTimeHours     *decimal.Decimal `json:"production_time_hours"`
	YieldPercentage         *decimal.Decimal `json:"yield_percentage"`
	ActualYield             *decimal.Decimal `json:"actual_yield"`
	QualityNotes            *string          `json:"quality_notes"`
	StorageLocation         *string          `json:"storage_location"`
	Notes                   *string          `json:"notes"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
}

// BatchListResponse lista de lotes.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Total int             `json:"total"`
}

// BatchFromEntity mapea la entidad a su respuesta HTTP.
func BatchFromEntity(b *entity.ProductionBatch) BatchResponse {
	return BatchResponse{
		ID:                      b.ID,
		BatchNumber:             b.BatchNumber,
		ProductInventoryID:      b.ProductInventoryID,
		RecipeTemplateID:        b.RecipeTemplateID,
		BatchSize:               b.BatchSize,
		Unit:                    b.Unit,
		StartDate:               b.StartDate,
		EstimatedCompletionDate: b.EstimatedCompletionDate,
		CompletionDate:          b.CompletionDate,
		Status:                  b.Status,
		ProductionTimeHours:     b.ProductionTimeHours,
		YieldPercentage:         b.YieldPercentage,
		ActualYield:             b.ActualYield,
		QualityNotes:            b.QualityNotes,
		StorageLocation:         b.StorageLocation,
		Notes:                   b.Notes,
		CreatedAt:               b.CreatedAt,
		UpdatedAt:               b.UpdatedAt,
	}
}

// BatchListFromEntities mapea una lista de entidades.
func BatchListFromEntities(batches []*entity.ProductionBatch) BatchListResponse {
	out := BatchListResponse{Items: make([]BatchResponse, 0, len(batches)), Total: len(batches)}
	for _, b := range batches {
		out.Items = append(out.Items, BatchFromEntity(b))
	}
	return out
}

// BatchIngredientResponse salida de un ingrediente consumido por un lote.
type BatchIngredientResponse struct {
	ID                    string          `json:"id"`
	BatchID               string          `json:"batch_id"`
	IngredientInventoryID string          `json:"ingredient_inventory_id"`
	QuantityUsed          decimal.Decimal `json:"quantity_used"`
	Unit                  string          `json:"unit"`
	Notes                 *string         `json:"notes"`
}

// BatchIngredientsFromEntities mapea una lista de ingredientes.
func BatchIngredientsFromEntities(items []*entity.ProductionBatchIngredient) []BatchIngredientResponse {
	out := make([]BatchIngredientResponse, 0, len(items))
	for _, it := range items {
		out = append(out, BatchIngredientResponse{
			ID:                    it.ID,
			BatchID:               it.BatchID,
			IngredientInventoryID: it.IngredientInventoryID,
			QuantityUsed:          it.QuantityUsed,
			Unit:                  it.Unit,
			Notes:                 it.Notes,
		})
	}
	return out
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID          string           `json:"id"`
	InventoryID string           `json:"inventory_id"`
	Type        string           `json:"movement_type"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
	Reason      string           `json:"reason"`
	BatchNumber *string          `json:"batch_number"`
	ExpiryDate  *time.Time       `json:"expiry_date"`
	CreatedAt   time.Time        `json:"created_at"`
}

// MovementListResponse lista de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}

// MovementListFromEntities mapea una lista de movimientos.
func MovementListFromEntities(movs []*entity.Movement) MovementListResponse {
	out := MovementListResponse{Items: make([]MovementResponse, 0, len(movs)), Total: len(movs)}
	for _, m := range movs {
		out.Items = append(out.Items, MovementResponse{
			ID:          m.ID,
			InventoryID: m.InventoryID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			UnitCost:    m.UnitCost,
			Reason:      m.Reason,
			BatchNumber: m.BatchNumber,
			ExpiryDate:  m.ExpiryDate,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out
}
