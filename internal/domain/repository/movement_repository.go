package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/domain/entity"
)

// MovementRepository define el puerto del libro de movimientos.
// Solo inserción: los movimientos nunca se actualizan ni se borran.
type MovementRepository interface {
	Append(movement *entity.Movement) error
	ListByItem(inventoryID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	// SumByItem suma las cantidades de todos los movimientos de un ítem.
	// Debe coincidir con current_stock (consistencia libro/agregado).
	SumByItem(inventoryID string) (decimal.Decimal, error)
}
