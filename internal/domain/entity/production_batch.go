package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del lote de producción. in_progress es el único estado inicial;
// completed y failed son terminales: sin más transiciones ni cambios de campos.
const (
	BatchStatusInProgress = "in_progress"
	BatchStatusCompleted  = "completed"
	BatchStatusFailed     = "failed"
)

// ProductionBatch representa una corrida de producción que convierte
// ingredientes en una cantidad de producto terminado.
type ProductionBatch struct {
	ID                      string
	BatchNumber             string // formato BATCH-YYYYMMDD-NNN, único
	ProductInventoryID      string
	RecipeTemplateID        *string
	BatchSize               decimal.Decimal
	Unit                    string
	StartDate               time.Time
	EstimatedCompletionDate *time.Time
	CompletionDate          *time.Time
	ProductionDate          time.Time // campo legado: espejo de start_date
	Status                  string
	ProductionTimeHours     *decimal.Decimal
	YieldPercentage         *decimal.Decimal
	ActualYield             *decimal.Decimal
	QualityNotes            *string
	StorageLocation         *string
	Notes                   *string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsTerminal indica si el lote ya no admite transiciones.
func (b *ProductionBatch) IsTerminal() bool {
	return b.Status != BatchStatusInProgress
}

// ProductionBatchIngredient registra qué se consumió al crear el lote.
// Inmutable una vez creado el lote: es el rastro de auditoría del consumo.
type ProductionBatchIngredient struct {
	ID                    string
	BatchID               string
	IngredientInventoryID string
	QuantityUsed          decimal.Decimal // > 0
	Unit                  string
	Notes                 *string
}

// BatchCompletion agrupa los valores calculados al completar un lote.
type BatchCompletion struct {
	CompletionDate      time.Time
	ActualYield         decimal.Decimal
	YieldPercentage     decimal.Decimal
	ProductionTimeHours decimal.Decimal
	QualityNotes        *string
}
