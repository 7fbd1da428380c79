package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcardona/fermentos-api/internal/application/ledger"
)

func TestProductionHistory_FiltroPorProducto(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	kombucha := seedItem(store, "Kombucha", dec(0))
	pan := seedItem(store, "Pan", dec(0))
	harina := seedItem(store, "Harina", dec(100))

	for _, producto := range []string{kombucha, kombucha, pan} {
		res, err := engine.CreateProductionBatch(ctx, ledger.CreateBatchInput{
			ProductInventoryID: producto,
			BatchSize:          dec(5),
			Unit:               "kg",
			Ingredients:        []ledger.IngredientInput{{InventoryID: harina, QuantityUsed: dec(1)}},
		})
		require.NoError(t, err)
		require.True(t, res.Success)
	}

	all, err := engine.ProductionHistory(ctx, nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	only, err := engine.ProductionHistory(ctx, &kombucha, 0)
	require.NoError(t, err)
	require.Len(t, only, 2)
	for _, b := range only {
		assert.Equal(t, kombucha, b.ProductInventoryID)
	}

	limited, err := engine.ProductionHistory(ctx, nil, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestMovementsByItem_FiltroDeFechas(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	id := seedItem(store, "Harina", dec(0))

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		day := base.AddDate(0, 0, i)
		engine.SetClock(func() time.Time { return day })
		res, err := engine.Purchase(ctx, ledger.PurchaseInput{
			SupplierID: "prov-1",
			Items:      []ledger.PurchaseLineInput{{InventoryID: id, Quantity: dec(1), UnitCost: dec(2)}},
		})
		require.NoError(t, err)
		require.True(t, res.Success)
	}

	all, err := engine.MovementsByItem(ctx, id, nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Orden descendente por fecha.
	assert.True(t, all[0].CreatedAt.After(all[2].CreatedAt))

	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 1)
	window, err := engine.MovementsByItem(ctx, id, &from, &to, 0, 0)
	require.NoError(t, err)
	assert.Len(t, window, 1)

	paged, err := engine.MovementsByItem(ctx, id, nil, nil, 2, 2)
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}
