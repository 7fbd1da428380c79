package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un ítem físico del inventario: materia prima o
// producto terminado. El stock nunca se edita campo a campo; solo cambia a
// través de las operaciones del libro (compras, producción, ajustes).
// AvailableStock es columna generada en la BD (current_stock - reserved_stock)
// y jamás se escribe desde la aplicación.
type InventoryItem struct {
	ID                  string
	Name                string // único entre ítems activos
	Category            string
	Unit                string
	CurrentStock        decimal.Decimal
	ReservedStock       decimal.Decimal
	AvailableStock      decimal.Decimal // generada: current_stock - reserved_stock
	ReorderPoint        decimal.Decimal
	CostPerUnit         *decimal.Decimal
	DefaultSupplierID   *string
	ShelfLifeDays       *int
	StorageRequirements *string
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
