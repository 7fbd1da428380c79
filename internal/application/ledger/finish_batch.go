package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/domain/entity"
	"github.com/dcardona/fermentos-api/internal/domain/production"
)

// CompleteProductionBatch transiciona un lote in_progress a completed:
// calcula rendimiento y horas de producción, suma el rendimiento real al
// stock del producto y anota un movimiento production_output. Un lote ya
// terminal devuelve un resultado "ya está X" sin mutar nada.
func (e *Engine) CompleteProductionBatch(ctx context.Context, input CompleteBatchInput) (*BatchResult, error) {
	if input.ActualYield.LessThan(decimal.Zero) {
		return failBatch("El rendimiento real no puede ser negativo"), nil
	}

	var result *BatchResult
	var failure *BatchResult

	err := e.tx.Run(ctx, func(r TxRepos) error {
		batch, err := r.Batches.GetByID(input.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			failure = failBatch("Lote de producción no encontrado")
			return errRollback
		}
		if batch.IsTerminal() {
			failure = failBatchFor(fmt.Sprintf("El lote ya está %s", batch.Status), batch.BatchNumber)
			return errRollback
		}

		now := e.now()
		yieldPct := production.YieldPercentage(input.ActualYield, batch.BatchSize)
		hours := production.ProductionHours(batch.StartDate, now)

		// UPDATE condicionado al estado: si otra operación finalizó el lote
		// entre la lectura y aquí, cero filas afectadas.
		ok, err := r.Batches.Complete(batch.ID, entity.BatchCompletion{
			CompletionDate:      now,
			ActualYield:         input.ActualYield,
			YieldPercentage:     yieldPct,
			ProductionTimeHours: hours,
			QualityNotes:        input.QualityNotes,
		})
		if err != nil {
			return err
		}
		if !ok {
			failure = failBatchFor("El lote ya fue finalizado por otra operación", batch.BatchNumber)
			return errRollback
		}

		if _, err := r.Items.AddStock(batch.ProductInventoryID, input.ActualYield, nil, now); err != nil {
			return err
		}
		if err := r.Movements.Append(&entity.Movement{
			InventoryID: batch.ProductInventoryID,
			Type:        entity.MovementTypeProductionOutput,
			Quantity:    input.ActualYield,
			Reason:      fmt.Sprintf("Producido en el lote %s", batch.BatchNumber),
			BatchNumber: &batch.BatchNumber,
			CreatedAt:   now,
		}); err != nil {
			return err
		}

		e.log.Info().
			Str("batch_number", batch.BatchNumber).
			Str("yield_pct", yieldPct.StringFixed(1)).
			Msg("lote de producción completado")

		result = &BatchResult{
			Success:     true,
			Message:     fmt.Sprintf("Lote %s completado. Rendimiento: %s%%", batch.BatchNumber, yieldPct.StringFixed(1)),
			BatchID:     &batch.ID,
			BatchNumber: &batch.BatchNumber,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errRollback) {
			return failure, nil
		}
		return nil, fmt.Errorf("completar lote de producción: %w", err)
	}
	return result, nil
}

// FailProductionBatch transiciona un lote in_progress a failed. No toca
// stock: los ingredientes consumidos a la creación quedan como insumo
// perdido, no se restituyen.
func (e *Engine) FailProductionBatch(ctx context.Context, input FailBatchInput) (*BatchResult, error) {
	if input.Reason == "" {
		return failBatch("Se requiere el motivo de la falla"), nil
	}

	var result *BatchResult
	var failure *BatchResult

	err := e.tx.Run(ctx, func(r TxRepos) error {
		batch, err := r.Batches.GetByID(input.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			failure = failBatch("Lote de producción no encontrado")
			return errRollback
		}
		if batch.IsTerminal() {
			failure = failBatchFor(fmt.Sprintf("El lote ya está %s", batch.Status), batch.BatchNumber)
			return errRollback
		}

		ok, err := r.Batches.Fail(batch.ID, input.Reason, e.now())
		if err != nil {
			return err
		}
		if !ok {
			failure = failBatchFor("El lote ya fue finalizado por otra operación", batch.BatchNumber)
			return errRollback
		}

		e.log.Info().
			Str("batch_number", batch.BatchNumber).
			Str("reason", input.Reason).
			Msg("lote de producción marcado como fallido")

		result = &BatchResult{
			Success:     true,
			Message:     fmt.Sprintf("Lote de producción %s marcado como fallido", batch.BatchNumber),
			BatchID:     &batch.ID,
			BatchNumber: &batch.BatchNumber,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errRollback) {
			return failure, nil
		}
		return nil, fmt.Errorf("marcar lote como fallido: %w", err)
	}
	return result, nil
}
