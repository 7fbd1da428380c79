package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/domain"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
	"github.com/dcardona/fermentos-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `
	id, name, category, unit, current_stock, reserved_stock, available_stock,
	reorder_point, cost_per_unit, default_supplier_id, shelf_life_days,
	storage_requirements, is_active, created_at, updated_at`

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL
// (usable con pool o tx). available_stock es columna generada: se lee,
// nunca se escribe.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.Name, &it.Category, &it.Unit, &it.CurrentStock,
		&it.ReservedStock, &it.AvailableStock, &it.ReorderPoint, &it.CostPerUnit,
		&it.DefaultSupplierID, &it.ShelfLifeDays, &it.StorageRequirements,
		&it.IsActive, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un ítem nuevo.
func (r *InventoryRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory (
			id, name, category, unit, current_stock, reserved_stock, reorder_point,
			cost_per_unit, default_supplier_id, shelf_life_days, storage_requirements,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.Unit, item.CurrentStock,
		item.ReservedStock, item.ReorderPoint, item.CostPerUnit,
		item.DefaultSupplierID, item.ShelfLifeDays, item.StorageRequirements,
		item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por id; nil si no existe.
func (r *InventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT` + inventoryColumns + ` FROM inventory WHERE id = $1`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

// GetActiveByName busca un ítem activo por nombre exacto; nil si no existe.
func (r *InventoryRepo) GetActiveByName(name string) (*entity.InventoryItem, error) {
	query := `SELECT` + inventoryColumns + ` FROM inventory WHERE name = $1 AND is_active = true`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item by name: %w", err)
	}
	return item, nil
}

// List lista ítems ordenados por nombre; onlyActive filtra por is_active.
func (r *InventoryRepo) List(onlyActive bool) ([]*entity.InventoryItem, error) {
	query := `SELECT` + inventoryColumns + ` FROM inventory`
	if onlyActive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name`
	return r.list(query)
}

// ListBelowReorderPoint lista ítems activos en o bajo su punto de reorden.
func (r *InventoryRepo) ListBelowReorderPoint() ([]*entity.InventoryItem, error) {
	query := `SELECT` + inventoryColumns + `
		FROM inventory
		WHERE is_active = true AND current_stock <= reorder_point
		ORDER BY name`
	return r.list(query)
}

func (r *InventoryRepo) list(query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var items []*entity.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Update persiste los campos de catálogo de un ítem. No toca las columnas de
// stock: esas cambian solo vía AddStock/ConsumeStock.
func (r *InventoryRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory
		SET name = $2, category = $3, unit = $4, reorder_point = $5,
			cost_per_unit = $6, default_supplier_id = $7, shelf_life_days = $8,
			storage_requirements = $9, is_active = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.Unit, item.ReorderPoint,
		item.CostPerUnit, item.DefaultSupplierID, item.ShelfLifeDays,
		item.StorageRequirements, item.IsActive, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un ítem de forma definitiva.
func (r *InventoryRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddStock suma quantity a current_stock y sobrescribe cost_per_unit si
// newCost no es nil. Devuelve el ítem actualizado.
func (r *InventoryRepo) AddStock(id string, quantity decimal.Decimal, newCost *decimal.Decimal, at time.Time) (*entity.InventoryItem, error) {
	query := `
		UPDATE inventory
		SET current_stock = current_stock + $2,
			cost_per_unit = COALESCE($3, cost_per_unit),
			updated_at = $4
		WHERE id = $1
		RETURNING` + inventoryColumns
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id, quantity, newCost, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("add stock: %w", err)
	}
	return item, nil
}

// ConsumeStock aplica el decremento condicional: cero filas afectadas
// significa stock insuficiente en el momento de la mutación.
func (r *InventoryRepo) ConsumeStock(id string, quantity decimal.Decimal, at time.Time) (bool, error) {
	query := `
		UPDATE inventory
		SET current_stock = current_stock - $2, updated_at = $3
		WHERE id = $1 AND current_stock >= $2`
	tag, err := r.q.Exec(context.Background(), query, id, quantity, at)
	if err != nil {
		return false, fmt.Errorf("consume stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
