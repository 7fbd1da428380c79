package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/domain/entity"
)

// Entradas y resultados de las operaciones del motor. Los resultados de
// negocio (stock insuficiente, no encontrado, lote ya terminal) viajan como
// {Success:false, Message}, nunca como error.

// PurchaseLineInput es una línea de compra.
type PurchaseLineInput struct {
	InventoryID string
	Quantity    decimal.Decimal // > 0
	UnitCost    decimal.Decimal
	ExpiryDate  *time.Time
	BatchNumber *string
}

// PurchaseInput entrada para registrar una compra.
type PurchaseInput struct {
	SupplierID   string
	Items        []PurchaseLineInput
	PurchaseDate *time.Time // nil = ahora
	Notes        *string
}

// PurchaseResult resultado de una compra. Todas las líneas se confirman o
// se revierten juntas.
type PurchaseResult struct {
	Success      bool
	Message      string
	UpdatedItems []*entity.InventoryItem
}

// IngredientInput es un ingrediente a consumir al crear un lote.
type IngredientInput struct {
	InventoryID  string
	QuantityUsed decimal.Decimal // > 0
}

// CreateBatchInput entrada para crear un lote de producción.
type CreateBatchInput struct {
	ProductInventoryID      string
	RecipeTemplateID        *string
	BatchSize               decimal.Decimal // > 0
	Unit                    string
	EstimatedCompletionDate *time.Time
	StorageLocation         *string
	Ingredients             []IngredientInput // no vacío
	Notes                   *string
}

// BatchResult resultado de las operaciones sobre lotes.
type BatchResult struct {
	Success     bool
	Message     string
	BatchID     *string
	BatchNumber *string
}

// CompleteBatchInput entrada para completar un lote.
type CompleteBatchInput struct {
	BatchID      string
	ActualYield  decimal.Decimal // >= 0
	QualityNotes *string
}

// FailBatchInput entrada para marcar un lote como fallido.
type FailBatchInput struct {
	BatchID string
	Reason  string
}

// AdjustmentInput entrada para un ajuste manual de stock.
// Quantity positiva suma, negativa resta (sujeta al decremento condicional).
type AdjustmentInput struct {
	InventoryID string
	Quantity    decimal.Decimal
	Reason      string
}

// AdjustmentResult resultado de un ajuste manual.
type AdjustmentResult struct {
	Success bool
	Message string
	Item    *entity.InventoryItem
}

func failBatch(message string) *BatchResult {
	return &BatchResult{Success: false, Message: message}
}

func failBatchFor(message, batchNumber string) *BatchResult {
	return &BatchResult{Success: false, Message: message, BatchNumber: &batchNumber}
}
