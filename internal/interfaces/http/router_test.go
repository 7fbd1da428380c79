package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcardona/fermentos-api/internal/application/ledger"
	"github.com/dcardona/fermentos-api/internal/application/usecase"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
	apphttp "github.com/dcardona/fermentos-api/internal/interfaces/http"
	"github.com/dcardona/fermentos-api/internal/testutil"
	"github.com/dcardona/fermentos-api/pkg/logger"
)

// buildTestApp arma la aplicación Fiber completa sobre el almacén en memoria.
func buildTestApp(t *testing.T) (*fiber.App, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	repos := store.Repos()
	log := logger.New(logger.Config{Env: "test", Level: "disabled"})

	engine := ledger.NewEngine(testutil.NewMemTxRunner(store), repos.Items, repos.Batches, repos.Movements, log)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Engine:     engine,
		ItemUC:     usecase.NewItemUseCase(repos.Items, store.Suppliers(), repos.Batches),
		SupplierUC: usecase.NewSupplierUseCase(store.Suppliers()),
		RecipeUC:   usecase.NewRecipeUseCase(store.Recipes(), repos.Items, repos.Batches),
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "cuerpo no JSON: %s", raw)
	}
	return resp, decoded
}

func seedStock(store *testutil.MemStore, name string, stock int64) string {
	id := uuid.New().String()
	now := time.Now()
	store.SeedItem(&entity.InventoryItem{
		ID:           id,
		Name:         name,
		Category:     "ingredient",
		Unit:         "kg",
		CurrentStock: decimal.NewFromInt(stock),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	return id
}

func TestItemEndpoints_CRUD(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/inventory/", map[string]any{
		"name":     "Harina",
		"category": "ingredient",
		"unit":     "kg",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	itemID := body["id"].(string)
	assert.Equal(t, "Harina", body["name"])

	// Nombre duplicado responde 409.
	resp, body = doJSON(t, app, http.MethodPost, "/api/inventory/", map[string]any{
		"name":     "Harina",
		"category": "ingredient",
		"unit":     "kg",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", body["code"])

	// Cuerpo incompleto responde 400.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/inventory/", map[string]any{"name": "Sal"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/inventory/"+itemID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Harina", body["name"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/inventory/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPut, "/api/inventory/"+itemID, map[string]any{
		"name": "Harina integral",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Harina integral", body["name"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/inventory/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])
}

func TestPurchaseEndpoint(t *testing.T) {
	app, store := buildTestApp(t)
	itemID := seedStock(store, "Harina", 10)

	resp, body := doJSON(t, app, http.MethodPost, "/api/purchases", map[string]any{
		"supplier_id": uuid.New().String(),
		"items": []map[string]any{
			{"inventory_id": itemID, "quantity": "5", "unit_cost": "2.50"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	// Cantidad inválida: 200 con success=false, no un error HTTP.
	resp, body = doJSON(t, app, http.MethodPost, "/api/purchases", map[string]any{
		"supplier_id": uuid.New().String(),
		"items": []map[string]any{
			{"inventory_id": itemID, "quantity": "0", "unit_cost": "1"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestBatchLifecycleEndpoints(t *testing.T) {
	app, store := buildTestApp(t)
	productID := seedStock(store, "Kombucha", 0)
	teaID := seedStock(store, "Té negro", 10)

	// Crear lote.
	resp, body := doJSON(t, app, http.MethodPost, "/api/batches/", map[string]any{
		"product_inventory_id": productID,
		"batch_size":           "20",
		"unit":                 "l",
		"ingredients": []map[string]any{
			{"inventory_id": teaID, "quantity_used": "5"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, true, body["success"], body["message"])
	batchID := body["batch_id"].(string)
	assert.Regexp(t, `^BATCH-\d{8}-\d{3}$`, body["batch_number"])

	// Aparece entre los activos.
	resp, body = doJSON(t, app, http.MethodGet, "/api/batches/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])

	// Ingredientes consumidos.
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/batches/%s/ingredients", batchID), nil)
	ingResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, ingResp.StatusCode)

	// Completar.
	resp, body = doJSON(t, app, http.MethodPost, "/api/batches/"+batchID+"/complete", map[string]any{
		"actual_yield": "19",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"], body["message"])

	// Segundo complete: resultado de negocio.
	resp, body = doJSON(t, app, http.MethodPost, "/api/batches/"+batchID+"/complete", map[string]any{
		"actual_yield": "19",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	// Historia incluye el lote completado.
	resp, body = doJSON(t, app, http.MethodGet, "/api/batches/history", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])

	// Movimientos del ingrediente.
	resp, body = doJSON(t, app, http.MethodGet, "/api/inventory/"+teaID+"/movements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])
}

func TestBatchEndpoint_StockInsuficiente(t *testing.T) {
	app, store := buildTestApp(t)
	productID := seedStock(store, "Kombucha", 0)
	teaID := seedStock(store, "Té negro", 2)

	resp, body := doJSON(t, app, http.MethodPost, "/api/batches/", map[string]any{
		"product_inventory_id": productID,
		"batch_size":           "20",
		"unit":                 "l",
		"ingredients": []map[string]any{
			{"inventory_id": teaID, "quantity_used": "5"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "Stock insuficiente")
}

func TestAdjustmentEndpoint(t *testing.T) {
	app, store := buildTestApp(t)
	itemID := seedStock(store, "Harina", 10)

	resp, body := doJSON(t, app, http.MethodPost, "/api/adjustments", map[string]any{
		"inventory_id": itemID,
		"quantity":     "-4",
		"reason":       "merma",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, true, body["success"])
	item := body["item"].(map[string]any)
	assert.Equal(t, "6", item["current_stock"])
}

func TestSupplierAndRecipeEndpoints(t *testing.T) {
	app, store := buildTestApp(t)
	productID := seedStock(store, "Kombucha", 0)

	resp, body := doJSON(t, app, http.MethodPost, "/api/suppliers/", map[string]any{
		"name": "Molinos del Valle",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, body["id"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/suppliers/", map[string]any{
		"name": "Molinos del Valle",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/api/recipes/", map[string]any{
		"product_inventory_id": productID,
		"template_name":        "Kombucha base",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	recipeID := body["id"].(string)

	req := httptest.NewRequest(http.MethodDelete, "/api/recipes/"+recipeID, nil)
	delResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/recipes/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["total"])
}
