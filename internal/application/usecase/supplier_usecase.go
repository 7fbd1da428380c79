package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dcardona/fermentos-api/internal/domain"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
	"github.com/dcardona/fermentos-api/internal/domain/repository"
)

// SupplierUseCase administra los proveedores.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo}
}

// SupplierInput entrada para crear o actualizar un proveedor; en
// actualización, nil conserva el valor actual.
type SupplierInput struct {
	Name         *string
	ContactEmail *string
	ContactPhone *string
	Address      *string
	Notes        *string
}

// Create registra un proveedor. El nombre debe ser único.
func (uc *SupplierUseCase) Create(ctx context.Context, input SupplierInput) (*entity.Supplier, error) {
	if input.Name == nil || *input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.supplierRepo.GetByName(*input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	supplier := &entity.Supplier{
		ID:           uuid.New().String(),
		Name:         *input.Name,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Address:      input.Address,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, fmt.Errorf("crear proveedor: %w", err)
	}
	return supplier, nil
}

// Update aplica cambios parciales a un proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, input SupplierInput) (*entity.Supplier, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	if input.Name != nil && *input.Name != supplier.Name {
		conflict, err := uc.supplierRepo.GetByName(*input.Name)
		if err != nil {
			return nil, err
		}
		if conflict != nil && conflict.ID != id {
			return nil, domain.ErrDuplicate
		}
		supplier.Name = *input.Name
	}
	if input.ContactEmail != nil {
		supplier.ContactEmail = input.ContactEmail
	}
	if input.ContactPhone != nil {
		supplier.ContactPhone = input.ContactPhone
	}
	if input.Address != nil {
		supplier.Address = input.Address
	}
	if input.Notes != nil {
		supplier.Notes = input.Notes
	}
	supplier.UpdatedAt = time.Now()

	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, fmt.Errorf("actualizar proveedor: %w", err)
	}
	return supplier, nil
}

// GetByID devuelve un proveedor por id.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return supplier, nil
}

// List lista los proveedores ordenados por nombre.
func (uc *SupplierUseCase) List(ctx context.Context) ([]*entity.Supplier, error) {
	return uc.supplierRepo.List()
}
