package dto

import (
	"time"

	"github.com/dcardona/fermentos-api/internal/domain/entity"
)

// SupplierRequest entrada para crear o actualizar un proveedor.
type SupplierRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	Address      *string `json:"address"`
	Notes        *string `json:"notes"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail *string   `json:"contact_email"`
	ContactPhone *string   `json:"contact_phone"`
	Address      *string   `json:"address"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SupplierListResponse lista de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Total int                `json:"total"`
}

// SupplierFromEntity mapea la entidad a su respuesta HTTP.
func SupplierFromEntity(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		ContactEmail: s.ContactEmail,
		ContactPhone: s.ContactPhone,
		Address:      s.Address,
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// SupplierListFromEntities mapea una lista de entidades.
func SupplierListFromEntities(suppliers []*entity.Supplier) SupplierListResponse {
	out := SupplierListResponse{Items: make([]SupplierResponse, 0, len(suppliers)), Total: len(suppliers)}
	for _, s := range suppliers {
		out.Items = append(out.Items, SupplierFromEntity(s))
	}
	return out
}
