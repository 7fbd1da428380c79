package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypePurchase         = "purchase"          // compra a proveedor
	MovementTypeProductionUse    = "production_use"    // consumo en un lote
	MovementTypeProductionOutput = "production_output" // producto terminado de un lote
	MovementTypeAdjustment       = "adjustment"        // corrección manual
)

// Movement es un hecho inmutable del libro de movimientos: nunca se actualiza
// ni se borra. La suma de los movimientos de un ítem debe igualar su
// current_stock; el agregado es una caché materializada de esa suma.
type Movement struct {
	ID          string
	InventoryID string
	Type        string
	Quantity    decimal.Decimal // negativo = consumo
	UnitCost    *decimal.Decimal
	Reason      string
	BatchNumber *string
	ExpiryDate  *time.Time
	CreatedAt   time.Time
}
