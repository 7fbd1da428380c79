package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcardona/fermentos-api/internal/application/usecase"
	"github.com/dcardona/fermentos-api/internal/domain"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
	"github.com/dcardona/fermentos-api/internal/testutil"
)

func newItemUC(store *testutil.MemStore) *usecase.ItemUseCase {
	repos := store.Repos()
	return usecase.NewItemUseCase(repos.Items, store.Suppliers(), repos.Batches)
}

func strPtr(s string) *string { return &s }

func decPtr(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func TestItemCreate_NombreDuplicado(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newItemUC(store)
	ctx := context.Background()

	first, err := uc.Create(ctx, usecase.CreateItemInput{Name: "Harina", Category: "ingredient", Unit: "kg"})
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, first.IsActive)
	assert.True(t, first.CurrentStock.IsZero())

	_, err = uc.Create(ctx, usecase.CreateItemInput{Name: "Harina", Category: "ingredient", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Desactivar el primero libera el nombre.
	inactive := false
	_, err = uc.Update(ctx, first.ID, usecase.UpdateItemInput{IsActive: &inactive})
	require.NoError(t, err)
	_, err = uc.Create(ctx, usecase.CreateItemInput{Name: "Harina", Category: "ingredient", Unit: "kg"})
	assert.NoError(t, err)
}

func TestItemCreate_ProveedorInexistente(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newItemUC(store)

	_, err := uc.Create(context.Background(), usecase.CreateItemInput{
		Name: "Harina", Category: "ingredient", Unit: "kg",
		DefaultSupplierID: strPtr("no-existe"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemCreate_CamposRequeridos(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newItemUC(store)

	_, err := uc.Create(context.Background(), usecase.CreateItemInput{Name: "Harina"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemUpdate_NoTocaStock(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newItemUC(store)
	ctx := context.Background()

	stock := decimal.NewFromInt(12)
	item, err := uc.Create(ctx, usecase.CreateItemInput{
		Name: "Harina", Category: "ingredient", Unit: "kg",
		CurrentStock: &stock,
	})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, item.ID, usecase.UpdateItemInput{
		Name:         strPtr("Harina integral"),
		ReorderPoint: decPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "Harina integral", updated.Name)
	assert.True(t, updated.ReorderPoint.Equal(decimal.NewFromInt(3)))

	// El stock sobrevive intacto a cualquier actualización descriptiva.
	got, err := uc.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(stock))
}

func TestItemUpdate_ConflictoDeNombre(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newItemUC(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, usecase.CreateItemInput{Name: "Harina", Category: "ingredient", Unit: "kg"})
	require.NoError(t, err)
	other, err := uc.Create(ctx, usecase.CreateItemInput{Name: "Azúcar", Category: "ingredient", Unit: "kg"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, other.ID, usecase.UpdateItemInput{Name: strPtr("Harina")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemDelete_RechazadoConLoteActivo(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newItemUC(store)
	ctx := context.Background()

	item, err := uc.Create(ctx, usecase.CreateItemInput{Name: "Té negro", Category: "ingredient", Unit: "kg"})
	require.NoError(t, err)

	// Un lote in_progress consume el ítem.
	batchID := uuid.New().String()
	store.SeedBatch(&entity.ProductionBatch{
		ID:          batchID,
		BatchNumber: "BATCH-20260314-001",
		Status:      entity.BatchStatusInProgress,
		StartDate:   time.Now(),
	})
	repos := store.Repos()
	require.NoError(t, repos.Batches.AddIngredient(&entity.ProductionBatchIngredient{
		ID:                    uuid.New().String(),
		BatchID:               batchID,
		IngredientInventoryID: item.ID,
		QuantityUsed:          decimal.NewFromInt(1),
		Unit:                  "kg",
	}))

	err = uc.Delete(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Con el lote terminal, la eliminación procede.
	_, err = repos.Batches.Fail(batchID, "contaminación", time.Now())
	require.NoError(t, err)
	assert.NoError(t, uc.Delete(ctx, item.ID))

	_, err = uc.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemListLowStock(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newItemUC(store)
	ctx := context.Background()

	low := decimal.NewFromInt(2)
	high := decimal.NewFromInt(50)
	point := decimal.NewFromInt(5)
	_, err := uc.Create(ctx, usecase.CreateItemInput{
		Name: "Harina", Category: "ingredient", Unit: "kg",
		CurrentStock: &low, ReorderPoint: &point,
	})
	require.NoError(t, err)
	_, err = uc.Create(ctx, usecase.CreateItemInput{
		Name: "Azúcar", Category: "ingredient", Unit: "kg",
		CurrentStock: &high, ReorderPoint: &point,
	})
	require.NoError(t, err)

	items, err := uc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Harina", items[0].Name)
}
