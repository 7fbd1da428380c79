package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dcardona/fermentos-api/internal/domain"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
	"github.com/dcardona/fermentos-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

const recipeColumns = `
	id, product_inventory_id, template_name, description, default_batch_size,
	default_unit, estimated_duration_hours, ingredient_template, instructions,
	is_active, created_at, updated_at`

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

func scanRecipe(row pgx.Row) (*entity.RecipeTemplate, error) {
	var rec entity.RecipeTemplate
	err := row.Scan(
		&rec.ID, &rec.ProductInventoryID, &rec.TemplateName, &rec.Description,
		&rec.DefaultBatchSize, &rec.DefaultUnit, &rec.EstimatedDuration,
		&rec.IngredientTemplate, &rec.Instructions, &rec.IsActive,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create persiste una plantilla de receta.
func (r *RecipeRepo) Create(recipe *entity.RecipeTemplate) error {
	query := `
		INSERT INTO recipe_templates (
			id, product_inventory_id, template_name, description,
			default_batch_size, default_unit, estimated_duration_hours,
			ingredient_template, instructions, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.ProductInventoryID, recipe.TemplateName,
		recipe.Description, recipe.DefaultBatchSize, recipe.DefaultUnit,
		recipe.EstimatedDuration, recipe.IngredientTemplate, recipe.Instructions,
		recipe.IsActive, recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create recipe template: %w", err)
	}
	return nil
}

// GetByID obtiene una receta por id; nil si no existe.
func (r *RecipeRepo) GetByID(id string) (*entity.RecipeTemplate, error) {
	query := `SELECT` + recipeColumns + ` FROM recipe_templates WHERE id = $1`
	recipe, err := scanRecipe(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe template: %w", err)
	}
	return recipe, nil
}

// ListActive lista las recetas activas ordenadas por nombre.
func (r *RecipeRepo) ListActive() ([]*entity.RecipeTemplate, error) {
	query := `SELECT` + recipeColumns + `
		FROM recipe_templates WHERE is_active = true ORDER BY template_name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list recipe templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.RecipeTemplate
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe template: %w", err)
		}
		list = append(list, recipe)
	}
	return list, rows.Err()
}

// Update persiste los cambios de una receta.
func (r *RecipeRepo) Update(recipe *entity.RecipeTemplate) error {
	query := `
		UPDATE recipe_templates
		SET product_inventory_id = $2, template_name = $3, description = $4,
			default_batch_size = $5, default_unit = $6,
			estimated_duration_hours = $7, ingredient_template = $8,
			instructions = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.ProductInventoryID, recipe.TemplateName,
		recipe.Description, recipe.DefaultBatchSize, recipe.DefaultUnit,
		recipe.EstimatedDuration, recipe.IngredientTemplate, recipe.Instructions,
		recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update recipe template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate aplica la eliminación lógica (is_active=false).
func (r *RecipeRepo) Deactivate(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE recipe_templates SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate recipe template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
