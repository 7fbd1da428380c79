package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// RecipeTemplate define el proceso estándar para fabricar un producto,
// incluidas las proporciones de ingredientes. La eliminación es lógica
// (is_active=false) y se rechaza mientras un lote in_progress la referencie.
type RecipeTemplate struct {
	ID                 string
	ProductInventoryID string
	TemplateName       string
	Description        *string
	DefaultBatchSize   *decimal.Decimal
	DefaultUnit        *string
	EstimatedDuration  *decimal.Decimal // horas
	// IngredientTemplate es JSON con la plantilla de ingredientes, por ejemplo:
	// [{"inventory_id": "uuid", "quantity_per_batch": 0.5, "unit": "kg"}]
	IngredientTemplate json.RawMessage
	Instructions       *string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
