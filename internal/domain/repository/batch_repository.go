package repository

import (
	"time"

	"github.com/dcardona/fermentos-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes de producción
// y sus ingredientes.
type BatchRepository interface {
	// Create inserta el lote. Devuelve domain.ErrDuplicate si batch_number
	// choca con el índice único (respaldo contra colisiones del asignador).
	Create(batch *entity.ProductionBatch) error
	GetByID(id string) (*entity.ProductionBatch, error)
	ListActive() ([]*entity.ProductionBatch, error)
	// ListHistory lista lotes por fecha de inicio descendente, con filtro
	// opcional por producto.
	ListHistory(productInventoryID *string, limit int) ([]*entity.ProductionBatch, error)

	AddIngredient(ingredient *entity.ProductionBatchIngredient) error
	ListIngredients(batchID string) ([]*entity.ProductionBatchIngredient, error)
	// CountActiveByIngredient cuenta lotes in_progress que consumen un ítem
	// (bloquea la eliminación del ítem).
	CountActiveByIngredient(inventoryID string) (int, error)
	// CountActiveByRecipe cuenta lotes in_progress que referencian una receta.
	CountActiveByRecipe(recipeTemplateID string) (int, error)

	// Complete marca el lote como completed solo si sigue in_progress
	// (UPDATE condicionado al estado). Devuelve false si ya era terminal.
	Complete(id string, completion entity.BatchCompletion) (bool, error)
	// Fail marca el lote como failed solo si sigue in_progress. No toca stock:
	// los ingredientes consumidos al crear no se restituyen.
	Fail(id string, reason string, at time.Time) (bool, error)
}

// SequenceRepository define el puerto del contador de lotes por fecha.
// El contador es estado global compartido: vive en la BD y se asigna con una
// operación atómica, nunca como variable en memoria.
type SequenceRepository interface {
	// NextBatchSequence reserva y devuelve la siguiente secuencia del día.
	// Dos llamadas concurrentes para el mismo día nunca reciben el mismo valor.
	NextBatchSequence(day time.Time) (int, error)
}
