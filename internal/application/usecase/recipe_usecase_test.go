package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcardona/fermentos-api/internal/application/usecase"
	"github.com/dcardona/fermentos-api/internal/domain"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
	"github.com/dcardona/fermentos-api/internal/testutil"
)

func newRecipeUC(store *testutil.MemStore) *usecase.RecipeUseCase {
	repos := store.Repos()
	return usecase.NewRecipeUseCase(store.Recipes(), repos.Items, repos.Batches)
}

func seedProduct(store *testutil.MemStore, name string) string {
	id := uuid.New().String()
	store.SeedItem(&entity.InventoryItem{
		ID: id, Name: name, Category: "product", Unit: "l", IsActive: true,
	})
	return id
}

func TestRecipeCreate(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newRecipeUC(store)
	ctx := context.Background()

	producto := seedProduct(store, "Kombucha")
	template := json.RawMessage(`[{"inventory_id":"abc","quantity_per_batch":0.5,"unit":"kg"}]`)

	recipe, err := uc.Create(ctx, usecase.RecipeInput{
		ProductInventoryID: &producto,
		TemplateName:       strPtr("Kombucha base"),
		IngredientTemplate: template,
	})
	require.NoError(t, err)
	assert.True(t, recipe.IsActive)
	assert.Equal(t, producto, recipe.ProductInventoryID)
	assert.JSONEq(t, string(template), string(recipe.IngredientTemplate))
}

func TestRecipeCreate_ProductoInvalido(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newRecipeUC(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, usecase.RecipeInput{
		ProductInventoryID: strPtr("no-existe"),
		TemplateName:       strPtr("Receta"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, usecase.RecipeInput{TemplateName: strPtr("Receta")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecipeDelete_EsLogicoYSeRechazaConLoteActivo(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newRecipeUC(store)
	ctx := context.Background()

	producto := seedProduct(store, "Kombucha")
	recipe, err := uc.Create(ctx, usecase.RecipeInput{
		ProductInventoryID: &producto,
		TemplateName:       strPtr("Kombucha base"),
	})
	require.NoError(t, err)

	store.SeedBatch(&entity.ProductionBatch{
		ID:                 uuid.New().String(),
		BatchNumber:        "BATCH-20260314-001",
		ProductInventoryID: producto,
		RecipeTemplateID:   &recipe.ID,
		Status:             entity.BatchStatusInProgress,
		StartDate:          time.Now(),
	})

	err = uc.Delete(ctx, recipe.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Sin lotes activos, la receta se desactiva pero sigue consultable.
	failed := entity.BatchStatusFailed
	for _, b := range mustListActive(t, store) {
		b.Status = failed
		store.SeedBatch(b)
	}
	require.NoError(t, uc.Delete(ctx, recipe.ID))

	got, err := uc.GetByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	listed, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func mustListActive(t *testing.T, store *testutil.MemStore) []*entity.ProductionBatch {
	t.Helper()
	batches, err := store.Repos().Batches.ListActive()
	require.NoError(t, err)
	return batches
}
