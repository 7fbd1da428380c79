package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El motor del libro los traduce a resultados de negocio {success:false, message};
// solo las fallas de infraestructura suben como error al caller.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrItemInactive      = errors.New("ítem de inventario inactivo")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrBatchNotFound     = errors.New("lote de producción no encontrado")
	ErrBatchFinalized    = errors.New("el lote ya está en estado terminal")
)
