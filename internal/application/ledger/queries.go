package ledger

import (
	"context"
	"time"

	"github.com/dcardona/fermentos-api/internal/domain/entity"
)

// Consultas de solo lectura sobre lotes y movimientos. No abren transacción:
// usan los repositorios atados al pool.

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// ActiveBatches lista los lotes in_progress.
func (e *Engine) ActiveBatches(ctx context.Context) ([]*entity.ProductionBatch, error) {
	return e.batchRepo.ListActive()
}

// BatchByID devuelve un lote por id, nil si no existe.
func (e *Engine) BatchByID(ctx context.Context, id string) (*entity.ProductionBatch, error) {
	return e.batchRepo.GetByID(id)
}

// BatchIngredients lista los ingredientes consumidos por un lote.
func (e *Engine) BatchIngredients(ctx context.Context, batchID string) ([]*entity.ProductionBatchIngredient, error) {
	return e.batchRepo.ListIngredients(batchID)
}

// ProductionHistory lista lotes por fecha de inicio descendente, con filtro
// opcional por producto. Límite por defecto 50, máximo 500.
func (e *Engine) ProductionHistory(ctx context.Context, productInventoryID *string, limit int) ([]*entity.ProductionBatch, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return e.batchRepo.ListHistory(productInventoryID, limit)
}

// MovementsByItem lista los movimientos de un ítem en un rango de fechas.
func (e *Engine) MovementsByItem(ctx context.Context, inventoryID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return e.movRepo.ListByItem(inventoryID, from, to, limit, offset)
}
