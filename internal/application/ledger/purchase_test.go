package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcardona/fermentos-api/internal/application/ledger"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
)

func TestPurchase_MultiLinea(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	harina := seedItem(store, "Harina", dec(10))
	azucar := seedItem(store, "Azúcar", dec(0))

	costHarina := decimal.RequireFromString("2.50")
	costAzucar := decimal.RequireFromString("1.75")
	res, err := engine.Purchase(ctx, ledger.PurchaseInput{
		SupplierID: "prov-1",
		Items: []ledger.PurchaseLineInput{
			{InventoryID: harina, Quantity: dec(5), UnitCost: costHarina},
			{InventoryID: azucar, Quantity: dec(8), UnitCost: costAzucar},
		},
	})
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	require.Len(t, res.UpdatedItems, 2)

	repos := store.Repos()
	it, err := repos.Items.GetByID(harina)
	require.NoError(t, err)
	assert.True(t, it.CurrentStock.Equal(dec(15)), "stock esperado 15, hay %s", it.CurrentStock)
	require.NotNil(t, it.CostPerUnit)
	assert.True(t, it.CostPerUnit.Equal(costHarina))

	it, err = repos.Items.GetByID(azucar)
	require.NoError(t, err)
	assert.True(t, it.CurrentStock.Equal(dec(8)))

	// Consistencia libro/agregado: la suma de movimientos iguala el stock.
	sum, err := repos.Movements.SumByItem(harina)
	require.NoError(t, err)
	assert.True(t, sum.Equal(dec(5)))
	movs, err := repos.Movements.ListByItem(harina, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypePurchase, movs[0].Type)
}

func TestPurchase_UltimoCostoGana(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	id := seedItem(store, "Levadura", dec(0))

	first := decimal.RequireFromString("3.00")
	second := decimal.RequireFromString("2.40")
	for _, cost := range []decimal.Decimal{first, second} {
		res, err := engine.Purchase(ctx, ledger.PurchaseInput{
			SupplierID: "prov-1",
			Items:      []ledger.PurchaseLineInput{{InventoryID: id, Quantity: dec(1), UnitCost: cost}},
		})
		require.NoError(t, err)
		require.True(t, res.Success)
	}

	it, err := store.Repos().Items.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, it.CostPerUnit)
	assert.True(t, it.CostPerUnit.Equal(second), "el costo por unidad debe ser el de la última compra")
}

func TestPurchase_Validaciones(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	id := seedItem(store, "Sal", dec(0))

	cases := []struct {
		name  string
		input ledger.PurchaseInput
	}{
		{"sin líneas", ledger.PurchaseInput{SupplierID: "prov-1"}},
		{"cantidad cero", ledger.PurchaseInput{
			SupplierID: "prov-1",
			Items:      []ledger.PurchaseLineInput{{InventoryID: id, Quantity: dec(0), UnitCost: dec(1)}},
		}},
		{"costo negativo", ledger.PurchaseInput{
			SupplierID: "prov-1",
			Items:      []ledger.PurchaseLineInput{{InventoryID: id, Quantity: dec(1), UnitCost: dec(-1)}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := engine.Purchase(ctx, tc.input)
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Message)
		})
	}

	// Nada quedó anotado en el libro.
	sum, err := store.Repos().Movements.SumByItem(id)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

func TestPurchase_LineaInvalidaRevierteTodo(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	valido := seedItem(store, "Harina", dec(10))
	inactivo := seedInactiveItem(store, "Colorante", dec(0))

	res, err := engine.Purchase(ctx, ledger.PurchaseInput{
		SupplierID: "prov-1",
		Items: []ledger.PurchaseLineInput{
			{InventoryID: valido, Quantity: dec(5), UnitCost: dec(2)},
			{InventoryID: inactivo, Quantity: dec(3), UnitCost: dec(1)},
		},
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "inactivo")

	// La primera línea también se revirtió: todo-o-nada.
	repos := store.Repos()
	it, err := repos.Items.GetByID(valido)
	require.NoError(t, err)
	assert.True(t, it.CurrentStock.Equal(dec(10)), "la compra fallida no debe dejar stock parcial")
	sum, err := repos.Movements.SumByItem(valido)
	require.NoError(t, err)
	assert.True(t, sum.IsZero(), "la compra fallida no debe dejar movimientos")
}

func TestPurchase_ItemInexistente(t *testing.T) {
	engine, _ := newTestEngine(t)

	res, err := engine.Purchase(context.Background(), ledger.PurchaseInput{
		SupplierID: "prov-1",
		Items:      []ledger.PurchaseLineInput{{InventoryID: "no-existe", Quantity: dec(1), UnitCost: dec(1)}},
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "no encontrado")
}
