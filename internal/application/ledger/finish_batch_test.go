package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcardona/fermentos-api/internal/application/ledger"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
)

// createBatchForTest crea un lote in_progress de 20 litros consumiendo 5 del
// ingrediente y devuelve su id.
func createBatchForTest(t *testing.T, engine *ledger.Engine, producto, ingrediente string) string {
	t.Helper()
	res, err := engine.CreateProductionBatch(context.Background(), ledger.CreateBatchInput{
		ProductInventoryID: producto,
		BatchSize:          dec(20),
		Unit:               "l",
		Ingredients:        []ledger.IngredientInput{{InventoryID: ingrediente, QuantityUsed: dec(5)}},
	})
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	return *res.BatchID
}

func TestCompleteProductionBatch_RendimientoYHoras(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	engine.SetClock(func() time.Time { return start })

	producto := seedItem(store, "Kombucha", dec(0))
	te := seedItem(store, "Té negro", dec(10))
	batchID := createBatchForTest(t, engine, producto, te)

	// 26.5 horas después: horas completas = 26.
	engine.SetClock(func() time.Time { return start.Add(26*time.Hour + 30*time.Minute) })

	res, err := engine.CompleteProductionBatch(ctx, ledger.CompleteBatchInput{
		BatchID:     batchID,
		ActualYield: dec(19),
	})
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	assert.Contains(t, res.Message, "95.0%")

	repos := store.Repos()
	batch, err := repos.Batches.GetByID(batchID)
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusCompleted, batch.Status)
	require.NotNil(t, batch.YieldPercentage)
	assert.True(t, batch.YieldPercentage.Equal(decimal.NewFromInt(95)))
	require.NotNil(t, batch.ProductionTimeHours)
	assert.True(t, batch.ProductionTimeHours.Equal(dec(26)))
	require.NotNil(t, batch.CompletionDate)

	// El rendimiento real entra al stock del producto con su movimiento.
	it, err := repos.Items.GetByID(producto)
	require.NoError(t, err)
	assert.True(t, it.CurrentStock.Equal(dec(19)))
	movs, err := repos.Movements.ListByItem(producto, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeProductionOutput, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(dec(19)))
}

func TestCompleteProductionBatch_RendimientoCero(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	producto := seedItem(store, "Kombucha", dec(0))
	te := seedItem(store, "Té negro", dec(10))
	batchID := createBatchForTest(t, engine, producto, te)

	res, err := engine.CompleteProductionBatch(ctx, ledger.CompleteBatchInput{
		BatchID:     batchID,
		ActualYield: dec(0),
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Contains(t, res.Message, "0.0%")
}

func TestCompleteProductionBatch_RendimientoNegativo(t *testing.T) {
	engine, _ := newTestEngine(t)

	res, err := engine.CompleteProductionBatch(context.Background(), ledger.CompleteBatchInput{
		BatchID:     "cualquiera",
		ActualYield: dec(-1),
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestCompleteProductionBatch_LoteTerminalEsIdempotente(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	producto := seedItem(store, "Kombucha", dec(0))
	te := seedItem(store, "Té negro", dec(10))
	batchID := createBatchForTest(t, engine, producto, te)

	res, err := engine.CompleteProductionBatch(ctx, ledger.CompleteBatchInput{BatchID: batchID, ActualYield: dec(18)})
	require.NoError(t, err)
	require.True(t, res.Success)

	// Segundo complete: resultado de negocio, nada cambia.
	res, err = engine.CompleteProductionBatch(ctx, ledger.CompleteBatchInput{BatchID: batchID, ActualYield: dec(99)})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "ya está completed")

	// Fail sobre un lote completed también se rechaza.
	fres, err := engine.FailProductionBatch(ctx, ledger.FailBatchInput{BatchID: batchID, Reason: "contaminación"})
	require.NoError(t, err)
	assert.False(t, fres.Success)

	it, err := store.Repos().Items.GetByID(producto)
	require.NoError(t, err)
	assert.True(t, it.CurrentStock.Equal(dec(18)), "el stock solo refleja el primer complete")
}

func TestCompleteProductionBatch_NoEncontrado(t *testing.T) {
	engine, _ := newTestEngine(t)

	res, err := engine.CompleteProductionBatch(context.Background(), ledger.CompleteBatchInput{
		BatchID:     "no-existe",
		ActualYield: dec(1),
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "no encontrado")
}

func TestFailProductionBatch_NoRestauraStock(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	producto := seedItem(store, "Kombucha", dec(0))
	te := seedItem(store, "Té negro", dec(10))
	batchID := createBatchForTest(t, engine, producto, te)

	res, err := engine.FailProductionBatch(ctx, ledger.FailBatchInput{
		BatchID: batchID,
		Reason:  "contaminación del cultivo",
	})
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	repos := store.Repos()
	batch, err := repos.Batches.GetByID(batchID)
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusFailed, batch.Status)
	require.NotNil(t, batch.QualityNotes)
	assert.Equal(t, "contaminación del cultivo", *batch.QualityNotes)
	require.NotNil(t, batch.CompletionDate)

	// Los 5 consumidos al crear quedan como insumo perdido.
	it, err := repos.Items.GetByID(te)
	require.NoError(t, err)
	assert.True(t, it.CurrentStock.Equal(dec(5)))
	it, err = repos.Items.GetByID(producto)
	require.NoError(t, err)
	assert.True(t, it.CurrentStock.IsZero(), "un lote fallido no produce stock")
}

func TestFailProductionBatch_RequiereMotivo(t *testing.T) {
	engine, _ := newTestEngine(t)

	res, err := engine.FailProductionBatch(context.Background(), ledger.FailBatchInput{BatchID: "x"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "motivo")
}
