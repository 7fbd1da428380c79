package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/application/ledger"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
	"github.com/dcardona/fermentos-api/internal/testutil"
	"github.com/dcardona/fermentos-api/pkg/logger"
)

// newTestEngine construye un motor sobre el almacén en memoria.
func newTestEngine(t *testing.T) (*ledger.Engine, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	repos := store.Repos()
	log := logger.New(logger.Config{Env: "test", Level: "disabled"})
	engine := ledger.NewEngine(testutil.NewMemTxRunner(store), repos.Items, repos.Batches, repos.Movements, log)
	return engine, store
}

// seedItem inserta un ítem activo con el stock indicado y devuelve su id.
func seedItem(store *testutil.MemStore, name string, stock decimal.Decimal) string {
	id := uuid.New().String()
	now := time.Now()
	store.SeedItem(&entity.InventoryItem{
		ID:           id,
		Name:         name,
		Category:     "ingredient",
		Unit:         "kg",
		CurrentStock: stock,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	return id
}

// seedInactiveItem inserta un ítem inactivo.
func seedInactiveItem(store *testutil.MemStore, name string, stock decimal.Decimal) string {
	id := uuid.New().String()
	now := time.Now()
	store.SeedItem(&entity.InventoryItem{
		ID:           id,
		Name:         name,
		Category:     "ingredient",
		Unit:         "kg",
		CurrentStock: stock,
		IsActive:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	return id
}

func dec(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}
