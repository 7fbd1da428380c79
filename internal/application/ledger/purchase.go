package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/domain/entity"
)

// Purchase registra una compra a proveedor: por cada línea anota un movimiento
// purchase y suma el stock sobrescribiendo cost_per_unit con el costo de la
// línea (último costo gana). Todas las líneas se confirman o se revierten
// juntas; una línea inválida aborta la compra completa.
func (e *Engine) Purchase(ctx context.Context, input PurchaseInput) (*PurchaseResult, error) {
	if len(input.Items) == 0 {
		return &PurchaseResult{Success: false, Message: "La compra debe incluir al menos una línea"}, nil
	}
	for _, line := range input.Items {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return &PurchaseResult{Success: false, Message: "Las cantidades de compra deben ser mayores que 0"}, nil
		}
		if line.UnitCost.LessThan(decimal.Zero) {
			return &PurchaseResult{Success: false, Message: "El costo unitario no puede ser negativo"}, nil
		}
	}

	purchaseDate := e.now()
	if input.PurchaseDate != nil {
		purchaseDate = *input.PurchaseDate
	}
	reason := "Compra"
	if input.Notes != nil && *input.Notes != "" {
		reason = *input.Notes
	}

	var failure *PurchaseResult
	updated := make([]*entity.InventoryItem, 0, len(input.Items))

	err := e.tx.Run(ctx, func(r TxRepos) error {
		for _, line := range input.Items {
			item, err := r.Items.GetByID(line.InventoryID)
			if err != nil {
				return err
			}
			if item == nil {
				failure = &PurchaseResult{Success: false, Message: fmt.Sprintf("Ítem %s no encontrado", line.InventoryID)}
				return errRollback
			}
			if !item.IsActive {
				failure = &PurchaseResult{Success: false, Message: fmt.Sprintf("El ítem '%s' está inactivo y no admite compras", item.Name)}
				return errRollback
			}

			unitCost := line.UnitCost
			if err := r.Movements.Append(&entity.Movement{
				InventoryID: line.InventoryID,
				Type:        entity.MovementTypePurchase,
				Quantity:    line.Quantity,
				UnitCost:    &unitCost,
				Reason:      reason,
				BatchNumber: line.BatchNumber,
				ExpiryDate:  line.ExpiryDate,
				CreatedAt:   purchaseDate,
			}); err != nil {
				return err
			}

			item, err = r.Items.AddStock(line.InventoryID, line.Quantity, &unitCost, purchaseDate)
			if err != nil {
				return err
			}
			updated = append(updated, item)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errRollback) {
			return failure, nil
		}
		return nil, fmt.Errorf("registrar compra: %w", err)
	}

	e.log.Info().
		Str("supplier_id", input.SupplierID).
		Int("lines", len(updated)).
		Msg("compra registrada")

	return &PurchaseResult{
		Success:      true,
		Message:      fmt.Sprintf("Compra procesada: %d línea(s) de inventario actualizadas", len(updated)),
		UpdatedItems: updated,
	}, nil
}
