package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/domain"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
	"github.com/dcardona/fermentos-api/internal/domain/production"
)

// CreateProductionBatch crea un lote in_progress: asigna el número de lote,
// inserta el lote con sus ingredientes y, por cada ingrediente, descuenta el
// stock con el decremento condicional y anota un movimiento production_use
// negativo. Cualquier precondición incumplida devuelve un resultado de
// negocio y revierte la transacción completa.
//
// Dos llamadas concurrentes sobre el mismo ingrediente con stock para una
// sola: exactamente una gana; la otra recibe stock insuficiente aunque su
// chequeo de lectura haya pasado. El número de lote sale del contador por
// fecha y el índice único de batch_number respalda con reintento acotado.
func (e *Engine) CreateProductionBatch(ctx context.Context, input CreateBatchInput) (*BatchResult, error) {
	if !input.BatchSize.GreaterThan(decimal.Zero) {
		return failBatch("El tamaño del lote debe ser mayor que 0"), nil
	}
	if len(input.Ingredients) == 0 {
		return failBatch("Se requiere al menos un ingrediente"), nil
	}
	for _, ing := range input.Ingredients {
		if !ing.QuantityUsed.GreaterThan(decimal.Zero) {
			return failBatch("Las cantidades de los ingredientes deben ser mayores que 0"), nil
		}
	}

	var result *BatchResult
	var failure *BatchResult

	for attempt := 1; attempt <= maxSequenceAttempts; attempt++ {
		err := e.tx.Run(ctx, func(r TxRepos) error {
			res, err := e.createBatchInTx(r, input)
			if err != nil {
				return err
			}
			if !res.Success {
				failure = res
				return errRollback
			}
			result = res
			return nil
		})
		switch {
		case err == nil:
			return result, nil
		case errors.Is(err, errRollback):
			return failure, nil
		case errors.Is(err, domain.ErrDuplicate):
			// Colisión de batch_number: recalcular la secuencia y reintentar.
			e.log.Warn().Int("attempt", attempt).Msg("colisión de número de lote, reintentando")
			continue
		default:
			return nil, fmt.Errorf("crear lote de producción: %w", err)
		}
	}
	return nil, fmt.Errorf("crear lote de producción: %w", domain.ErrConflict)
}

// createBatchInTx ejecuta la creación dentro de la transacción en curso.
// Un resultado con Success=false señala una precondición incumplida; el
// caller revierte la transacción.
func (e *Engine) createBatchInTx(r TxRepos, input CreateBatchInput) (*BatchResult, error) {
	now := e.now()

	// Precondiciones: producto e ingredientes existen, están activos y el
	// stock alcanza al momento de la lectura. La suficiencia se re-verifica
	// más abajo en el decremento condicional.
	product, err := r.Items.GetByID(input.ProductInventoryID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return failBatch("Producto no encontrado o inactivo"), nil
	}

	ingredients := make([]*entity.InventoryItem, 0, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		item, err := r.Items.GetByID(ing.InventoryID)
		if err != nil {
			return nil, err
		}
		if item == nil || !item.IsActive {
			return failBatch(fmt.Sprintf("Ingrediente %s no encontrado o inactivo", ing.InventoryID)), nil
		}
		if item.CurrentStock.LessThan(ing.QuantityUsed) {
			return failBatch(fmt.Sprintf(
				"Stock insuficiente para %s: se requieren %s, hay %s",
				item.Name, ing.QuantityUsed.String(), item.CurrentStock.String(),
			)), nil
		}
		ingredients = append(ingredients, item)
	}

	sequence, err := r.Sequences.NextBatchSequence(now)
	if err != nil {
		return nil, err
	}
	batchNumber := production.FormatBatchNumber(now, sequence)

	batch := &entity.ProductionBatch{
		ID:                      uuid.New().String(),
		BatchNumber:             batchNumber,
		ProductInventoryID:      input.ProductInventoryID,
		RecipeTemplateID:        input.RecipeTemplateID,
		BatchSize:               input.BatchSize,
		Unit:                    input.Unit,
		StartDate:               now,
		EstimatedCompletionDate: input.EstimatedCompletionDate,
		ProductionDate:          now,
		Status:                  entity.BatchStatusInProgress,
		StorageLocation:         input.StorageLocation,
		Notes:                   input.Notes,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := r.Batches.Create(batch); err != nil {
		return nil, err
	}

	for i, ing := range input.Ingredients {
		item := ingredients[i]
		if err := r.Batches.AddIngredient(&entity.ProductionBatchIngredient{
			ID:                    uuid.New().String(),
			BatchID:               batch.ID,
			IngredientInventoryID: ing.InventoryID,
			QuantityUsed:          ing.QuantityUsed,
			Unit:                  item.Unit,
		}); err != nil {
			return nil, err
		}

		ok, err := r.Items.ConsumeStock(ing.InventoryID, ing.QuantityUsed, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			// El chequeo de lectura pasó pero otro caller consumió primero.
			return failBatch(fmt.Sprintf(
				"Stock insuficiente para %s: se requieren %s, hay %s",
				item.Name, ing.QuantityUsed.String(), item.CurrentStock.String(),
			)), nil
		}

		if err := r.Movements.Append(&entity.Movement{
			InventoryID: ing.InventoryID,
			Type:        entity.MovementTypeProductionUse,
			Quantity:    ing.QuantityUsed.Neg(),
			Reason:      fmt.Sprintf("Consumido en el lote de producción %s", batchNumber),
			BatchNumber: &batchNumber,
			CreatedAt:   now,
		}); err != nil {
			return nil, err
		}
	}

	e.log.Info().
		Str("batch_number", batchNumber).
		Int("ingredients", len(input.Ingredients)).
		Msg("lote de producción creado")

	return &BatchResult{
		Success:     true,
		Message:     fmt.Sprintf("Lote de producción %s creado con %d ingrediente(s)", batchNumber, len(input.Ingredients)),
		BatchID:     &batch.ID,
		BatchNumber: &batchNumber,
	}, nil
}
