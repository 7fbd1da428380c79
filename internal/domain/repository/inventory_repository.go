package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para InventoryItem.
// AddStock y ConsumeStock son las únicas formas de tocar current_stock desde
// el motor del libro; se usan dentro de transacciones.
type InventoryRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	// GetActiveByName busca un ítem activo por nombre exacto (unicidad de nombre).
	GetActiveByName(name string) (*entity.InventoryItem, error)
	List(onlyActive bool) ([]*entity.InventoryItem, error)
	// ListBelowReorderPoint lista ítems activos con current_stock <= reorder_point.
	ListBelowReorderPoint() ([]*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	Delete(id string) error

	// AddStock suma quantity (positiva) a current_stock y, si newCost no es nil,
	// sobrescribe cost_per_unit (política de último costo). Devuelve el ítem
	// actualizado o domain.ErrNotFound si el id no resuelve.
	AddStock(id string, quantity decimal.Decimal, newCost *decimal.Decimal, at time.Time) (*entity.InventoryItem, error)

	// ConsumeStock aplica el decremento condicional
	//   UPDATE ... SET current_stock = current_stock - q
	//   WHERE id = $1 AND current_stock >= q
	// re-verificando la suficiencia en el momento de la mutación. Devuelve
	// false si la condición no se cumple (cero filas afectadas).
	ConsumeStock(id string, quantity decimal.Decimal, at time.Time) (bool, error)
}
