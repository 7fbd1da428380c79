package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/domain"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
	"github.com/dcardona/fermentos-api/internal/domain/repository"
)

// ItemUseCase administra el catálogo de ítems de inventario. Las columnas de
// stock no se editan por aquí: solo cambian a través del motor del libro
// (compras, lotes, ajustes).
type ItemUseCase struct {
	itemRepo     repository.InventoryRepository
	supplierRepo repository.SupplierRepository
	batchRepo    repository.BatchRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	itemRepo repository.InventoryRepository,
	supplierRepo repository.SupplierRepository,
	batchRepo repository.BatchRepository,
) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, supplierRepo: supplierRepo, batchRepo: batchRepo}
}

// CreateItemInput entrada para crear un ítem. El stock inicial es opcional.
type CreateItemInput struct {
	Name                string
	Category            string
	Unit                string
	CurrentStock        *decimal.Decimal
	ReservedStock       *decimal.Decimal
	ReorderPoint        *decimal.Decimal
	CostPerUnit         *decimal.Decimal
	DefaultSupplierID   *string
	ShelfLifeDays       *int
	StorageRequirements *string
}

// UpdateItemInput entrada para actualizar un ítem: nil conserva el valor
// actual. No incluye columnas de stock a propósito.
type UpdateItemInput struct {
	Name                *string
	Category            *string
	Unit                *string
	ReorderPoint        *decimal.Decimal
	CostPerUnit         *decimal.Decimal
	DefaultSupplierID   *string
	ShelfLifeDays       *int
	StorageRequirements *string
	IsActive            *bool
}

// Create registra un ítem nuevo. El nombre debe ser único entre ítems activos
// y el proveedor por defecto, si viene, debe existir.
func (uc *ItemUseCase) Create(ctx context.Context, input CreateItemInput) (*entity.InventoryItem, error) {
	if input.Name == "" || input.Category == "" || input.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.itemRepo.GetActiveByName(input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if input.DefaultSupplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(*input.DefaultSupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:                  uuid.New().String(),
		Name:                input.Name,
		Category:            input.Category,
		Unit:                input.Unit,
		CurrentStock:        valueOrZero(input.CurrentStock),
		ReservedStock:       valueOrZero(input.ReservedStock),
		ReorderPoint:        valueOrZero(input.ReorderPoint),
		CostPerUnit:         input.CostPerUnit,
		DefaultSupplierID:   input.DefaultSupplierID,
		ShelfLifeDays:       input.ShelfLifeDays,
		StorageRequirements: input.StorageRequirements,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, fmt.Errorf("crear ítem: %w", err)
	}
	return item, nil
}

// Update aplica cambios parciales. Un cambio de nombre se valida contra los
// ítems activos restantes.
func (uc *ItemUseCase) Update(ctx context.Context, id string, input UpdateItemInput) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if input.Name != nil && *input.Name != item.Name {
		conflict, err := uc.itemRepo.GetActiveByName(*input.Name)
		if err != nil {
			return nil, err
		}
		if conflict != nil && conflict.ID != id {
			return nil, domain.ErrDuplicate
		}
		item.Name = *input.Name
	}
	if input.DefaultSupplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(*input.DefaultSupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
		item.DefaultSupplierID = input.DefaultSupplierID
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.ReorderPoint != nil {
		item.ReorderPoint = *input.ReorderPoint
	}
	if input.CostPerUnit != nil {
		item.CostPerUnit = input.CostPerUnit
	}
	if input.ShelfLifeDays != nil {
		item.ShelfLifeDays = input.ShelfLifeDays
	}
	if input.StorageRequirements != nil {
		item.StorageRequirements = input.StorageRequirements
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	item.UpdatedAt = time.Now()

	if err := uc.itemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("actualizar ítem: %w", err)
	}
	return item, nil
}

// Delete elimina un ítem de forma definitiva. Se rechaza con ErrConflict
// mientras un lote in_progress lo consuma.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	active, err := uc.batchRepo.CountActiveByIngredient(id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.ErrConflict
	}
	return uc.itemRepo.Delete(id)
}

// GetByID devuelve un ítem por id.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List lista los ítems activos ordenados por nombre.
func (uc *ItemUseCase) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.itemRepo.List(true)
}

// ListLowStock lista los ítems activos en o bajo su punto de reorden.
func (uc *ItemUseCase) ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.itemRepo.ListBelowReorderPoint()
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
