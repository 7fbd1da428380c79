package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/domain/entity"
)

// RegisterAdjustment anota una corrección manual de stock: positiva suma,
// negativa resta. La resta pasa por el mismo decremento condicional que el
// consumo de producción, así el stock nunca queda negativo.
func (e *Engine) RegisterAdjustment(ctx context.Context, input AdjustmentInput) (*AdjustmentResult, error) {
	if input.Quantity.IsZero() {
		return &AdjustmentResult{Success: false, Message: "La cantidad del ajuste no puede ser cero"}, nil
	}
	if input.Reason == "" {
		return &AdjustmentResult{Success: false, Message: "Se requiere el motivo del ajuste"}, nil
	}

	var result *AdjustmentResult
	var failure *AdjustmentResult

	err := e.tx.Run(ctx, func(r TxRepos) error {
		now := e.now()
		item, err := r.Items.GetByID(input.InventoryID)
		if err != nil {
			return err
		}
		if item == nil {
			failure = &AdjustmentResult{Success: false, Message: fmt.Sprintf("Ítem %s no encontrado", input.InventoryID)}
			return errRollback
		}
		if !item.IsActive {
			failure = &AdjustmentResult{Success: false, Message: fmt.Sprintf("El ítem '%s' está inactivo", item.Name)}
			return errRollback
		}

		if input.Quantity.GreaterThan(decimal.Zero) {
			item, err = r.Items.AddStock(input.InventoryID, input.Quantity, nil, now)
			if err != nil {
				return err
			}
		} else {
			ok, err := r.Items.ConsumeStock(input.InventoryID, input.Quantity.Neg(), now)
			if err != nil {
				return err
			}
			if !ok {
				failure = &AdjustmentResult{Success: false, Message: fmt.Sprintf(
					"Stock insuficiente para ajustar '%s': hay %s", item.Name, item.CurrentStock.String(),
				)}
				return errRollback
			}
			item, err = r.Items.GetByID(input.InventoryID)
			if err != nil {
				return err
			}
		}

		if err := r.Movements.Append(&entity.Movement{
			InventoryID: input.InventoryID,
			Type:        entity.MovementTypeAdjustment,
			Quantity:    input.Quantity,
			Reason:      input.Reason,
			CreatedAt:   now,
		}); err != nil {
			return err
		}

		result = &AdjustmentResult{
			Success: true,
			Message: fmt.Sprintf("Ajuste registrado para '%s'", item.Name),
			Item:    item,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errRollback) {
			return failure, nil
		}
		return nil, fmt.Errorf("registrar ajuste: %w", err)
	}

	e.log.Info().
		Str("inventory_id", input.InventoryID).
		Str("quantity", input.Quantity.String()).
		Msg("ajuste de inventario registrado")

	return result, nil
}
