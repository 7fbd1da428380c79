package entity

import "time"

// Supplier representa un proveedor de materias primas.
type Supplier struct {
	ID           string
	Name         string // único
	ContactEmail *string
	ContactPhone *string
	Address      *string
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
