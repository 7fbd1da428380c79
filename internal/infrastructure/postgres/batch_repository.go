package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dcardona/fermentos-api/internal/domain"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
	"github.com/dcardona/fermentos-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `
	id, batch_number, product_inventory_id, recipe_template_id, batch_size,
	unit, start_date, estimated_completion_date, completion_date,
	production_date, status, production_time_hours, yield_percentage,
	actual_yield, quality_notes, storage_location, notes, created_at, updated_at`

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con
// pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

func scanBatch(row pgx.Row) (*entity.ProductionBatch, error) {
	var b entity.ProductionBatch
	err := row.Scan(
		&b.ID, &b.BatchNumber, &b.ProductInventoryID, &b.RecipeTemplateID,
		&b.BatchSize, &b.Unit, &b.StartDate, &b.EstimatedCompletionDate,
		&b.CompletionDate, &b.ProductionDate, &b.Status, &b.ProductionTimeHours,
		&b.YieldPercentage, &b.ActualYield, &b.QualityNotes, &b.StorageLocation,
		&b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserta el lote. Una violación del índice único de batch_number se
// traduce a domain.ErrDuplicate para que el motor reintente la secuencia.
func (r *BatchRepo) Create(batch *entity.ProductionBatch) error {
	query := `
		INSERT INTO production_batches (
			id, batch_number, product_inventory_id, recipe_template_id, batch_size,
			unit, start_date, estimated_completion_date, production_date, status,
			storage_location, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.BatchNumber, batch.ProductInventoryID,
		batch.RecipeTemplateID, batch.BatchSize, batch.Unit, batch.StartDate,
		batch.EstimatedCompletionDate, batch.ProductionDate, batch.Status,
		batch.StorageLocation, batch.Notes, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create production batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por id; nil si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.ProductionBatch, error) {
	query := `SELECT` + batchColumns + ` FROM production_batches WHERE id = $1`
	batch, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production batch: %w", err)
	}
	return batch, nil
}

// ListActive lista los lotes in_progress, más recientes primero.
func (r *BatchRepo) ListActive() ([]*entity.ProductionBatch, error) {
	query := `SELECT` + batchColumns + `
		FROM production_batches
		WHERE status = $1
		ORDER BY start_date DESC`
	return r.list(query, entity.BatchStatusInProgress)
}

// ListHistory lista lotes por fecha de inicio descendente, con filtro
// opcional por producto.
func (r *BatchRepo) ListHistory(productInventoryID *string, limit int) ([]*entity.ProductionBatch, error) {
	if productInventoryID != nil {
		query := `SELECT` + batchColumns + `
			FROM production_batches
			WHERE product_inventory_id = $1
			ORDER BY start_date DESC LIMIT $2`
		return r.list(query, *productInventoryID, limit)
	}
	query := `SELECT` + batchColumns + `
		FROM production_batches
		ORDER BY start_date DESC LIMIT $1`
	return r.list(query, limit)
}

func (r *BatchRepo) list(query string, args ...any) ([]*entity.ProductionBatch, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production batches: %w", err)
	}
	defer rows.Close()
	var batches []*entity.ProductionBatch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production batch: %w", err)
		}
		batches = append(batches, batch)
	}
	return batches, rows.Err()
}

// AddIngredient persiste un ingrediente del lote.
func (r *BatchRepo) AddIngredient(ing *entity.ProductionBatchIngredient) error {
	if ing.ID == "" {
		ing.ID = uuid.New().String()
	}
	query := `
		INSERT INTO production_batch_ingredients (
			id, batch_id, ingredient_inventory_id, quantity_used, unit, notes
		) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		ing.ID, ing.BatchID, ing.IngredientInventoryID, ing.QuantityUsed, ing.Unit, ing.Notes,
	)
	if err != nil {
		return fmt.Errorf("add batch ingredient: %w", err)
	}
	return nil
}

// ListIngredients lista los ingredientes de un lote.
func (r *BatchRepo) ListIngredients(batchID string) ([]*entity.ProductionBatchIngredient, error) {
	query := `
		SELECT id, batch_id, ingredient_inventory_id, quantity_used, unit, notes
		FROM production_batch_ingredients WHERE batch_id = $1`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionBatchIngredient
	for rows.Next() {
		var ing entity.ProductionBatchIngredient
		if err := rows.Scan(&ing.ID, &ing.BatchID, &ing.IngredientInventoryID,
			&ing.QuantityUsed, &ing.Unit, &ing.Notes); err != nil {
			return nil, fmt.Errorf("scan batch ingredient: %w", err)
		}
		list = append(list, &ing)
	}
	return list, rows.Err()
}

// CountActiveByIngredient cuenta lotes in_progress que consumen un ítem.
func (r *BatchRepo) CountActiveByIngredient(inventoryID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM production_batch_ingredients i
		JOIN production_batches b ON b.id = i.batch_id
		WHERE i.ingredient_inventory_id = $1 AND b.status = $2`
	var count int
	err := r.q.QueryRow(context.Background(), query, inventoryID, entity.BatchStatusInProgress).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active batches by ingredient: %w", err)
	}
	return count, nil
}

// CountActiveByRecipe cuenta lotes in_progress que referencian una receta.
func (r *BatchRepo) CountActiveByRecipe(recipeTemplateID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM production_batches
		WHERE recipe_template_id = $1 AND status = $2`
	var count int
	err := r.q.QueryRow(context.Background(), query, recipeTemplateID, entity.BatchStatusInProgress).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active batches by recipe: %w", err)
	}
	return count, nil
}

// Complete marca el lote como completed solo si sigue in_progress.
func (r *BatchRepo) Complete(id string, c entity.BatchCompletion) (bool, error) {
	query := `
		UPDATE production_batches
		SET status = $2, completion_date = $3, actual_yield = $4,
			yield_percentage = $5, production_time_hours = $6,
			quality_notes = $7, updated_at = $3
		WHERE id = $1 AND status = $8`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.BatchStatusCompleted, c.CompletionDate, c.ActualYield,
		c.YieldPercentage, c.ProductionTimeHours, c.QualityNotes,
		entity.BatchStatusInProgress,
	)
	if err != nil {
		return false, fmt.Errorf("complete production batch: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Fail marca el lote como failed solo si sigue in_progress. El motivo queda
// en quality_notes.
func (r *BatchRepo) Fail(id string, reason string, at time.Time) (bool, error) {
	query := `
		UPDATE production_batches
		SET status = $2, completion_date = $3, quality_notes = $4, updated_at = $3
		WHERE id = $1 AND status = $5`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.BatchStatusFailed, at, reason, entity.BatchStatusInProgress,
	)
	if err != nil {
		return false, fmt.Errorf("fail production batch: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
