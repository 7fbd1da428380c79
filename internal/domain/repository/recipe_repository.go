package repository

import "github.com/dcardona/fermentos-api/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para RecipeTemplate.
type RecipeRepository interface {
	Create(recipe *entity.RecipeTemplate) error
	GetByID(id string) (*entity.RecipeTemplate, error)
	ListActive() ([]*entity.RecipeTemplate, error)
	Update(recipe *entity.RecipeTemplate) error
	// Deactivate es la eliminación lógica (is_active=false).
	Deactivate(id string) error
}
