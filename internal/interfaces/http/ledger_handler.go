package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcardona/fermentos-api/internal/application/dto"
	"github.com/dcardona/fermentos-api/internal/application/ledger"
)

// LedgerHandler expone las operaciones del motor del libro: compras, lotes de
// producción, ajustes y consultas sobre movimientos.
type LedgerHandler struct {
	engine *ledger.Engine
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(engine *ledger.Engine) *LedgerHandler {
	return &LedgerHandler{engine: engine}
}

// Purchase registra una compra multi-línea. Todas las líneas se confirman o
// se revierten juntas; el resultado de negocio viaja en el cuerpo.
func (h *LedgerHandler) Purchase(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.engine.Purchase(c.Context(), in.ToInput())
	if err != nil {
		return mapDomainError(c, err)
	}
	status := fiber.StatusCreated
	if !res.Success {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(dto.PurchaseFromResult(res))
}

// CreateBatch crea un lote de producción y consume sus ingredientes.
func (h *LedgerHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.engine.CreateProductionBatch(c.Context(), in.ToInput())
	if err != nil {
		return mapDomainError(c, err)
	}
	status := fiber.StatusCreated
	if !res.Success {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(dto.BatchOperationFromResult(res))
}

// CompleteBatch marca un lote como completado y suma el rendimiento real al
// stock del producto.
func (h *LedgerHandler) CompleteBatch(c *fiber.Ctx) error {
	var in dto.CompleteBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.engine.CompleteProductionBatch(c.Context(), ledger.CompleteBatchInput{
		BatchID:      c.Params("id"),
		ActualYield:  in.ActualYield,
		QualityNotes: in.QualityNotes,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.BatchOperationFromResult(res))
}

// FailBatch marca un lote como fallido. El stock consumido no se restaura.
func (h *LedgerHandler) FailBatch(c *fiber.Ctx) error {
	var in dto.FailBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.engine.FailProductionBatch(c.Context(), ledger.FailBatchInput{
		BatchID: c.Params("id"),
		Reason:  in.Reason,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.BatchOperationFromResult(res))
}

// Adjust registra un ajuste manual de stock con su movimiento en el libro.
func (h *LedgerHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.engine.RegisterAdjustment(c.Context(), ledger.AdjustmentInput{
		InventoryID: in.InventoryID,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	status := fiber.StatusCreated
	if !res.Success {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(dto.AdjustmentFromResult(res))
}

// ActiveBatches lista los lotes in_progress.
func (h *LedgerHandler) ActiveBatches(c *fiber.Ctx) error {
	batches, err := h.engine.ActiveBatches(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.BatchListFromEntities(batches))
}

// BatchByID devuelve un lote por id.
func (h *LedgerHandler) BatchByID(c *fiber.Ctx) error {
	batch, err := h.engine.BatchByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	if batch == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote de producción no encontrado"})
	}
	return c.JSON(dto.BatchFromEntity(batch))
}

// BatchIngredients lista los ingredientes consumidos por un lote.
func (h *LedgerHandler) BatchIngredients(c *fiber.Ctx) error {
	items, err := h.engine.BatchIngredients(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.BatchIngredientsFromEntities(items))
}

// ProductionHistory lista los lotes terminados, opcionalmente filtrados por
// producto.
func (h *LedgerHandler) ProductionHistory(c *fiber.Ctx) error {
	var productID *string
	if v := c.Query("product_inventory_id"); v != "" {
		productID = &v
	}
	limit := c.QueryInt("limit", 0)
	batches, err := h.engine.ProductionHistory(c.Context(), productID, limit)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.BatchListFromEntities(batches))
}

// MovementsByItem lista los movimientos de un ítem, con filtros opcionales de
// fecha (RFC 3339) y paginación.
func (h *LedgerHandler) MovementsByItem(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC 3339"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC 3339"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	movs, err := h.engine.MovementsByItem(c.Context(), c.Params("id"), from, to, limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.MovementListFromEntities(movs))
}

func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
