package ledger

import (
	"errors"
	"time"

	"github.com/dcardona/fermentos-api/internal/domain/repository"
	"github.com/dcardona/fermentos-api/pkg/logger"
)

// Engine orquesta las operaciones transaccionales del libro de inventario:
// compras, ciclo de vida de lotes de producción y ajustes manuales. Cada
// operación valida, muta el agregado de stock, anota el libro de movimientos
// y confirma o revierte como una sola unidad de trabajo.
type Engine struct {
	tx        TxRunner
	itemRepo  repository.InventoryRepository
	batchRepo repository.BatchRepository
	movRepo   repository.MovementRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewEngine construye el motor. Los repositorios sueltos (atados al pool) se
// usan para pre-validaciones y consultas; las mutaciones viajan por txRunner.
func NewEngine(
	txRunner TxRunner,
	itemRepo repository.InventoryRepository,
	batchRepo repository.BatchRepository,
	movRepo repository.MovementRepository,
	log *logger.Logger,
) *Engine {
	return &Engine{
		tx:        txRunner,
		itemRepo:  itemRepo,
		batchRepo: batchRepo,
		movRepo:   movRepo,
		log:       log,
		now:       time.Now,
	}
}

// errRollback aborta la transacción cuando la operación termina en un
// resultado de negocio: la tx se revierte pero el caller recibe
// {success:false} en lugar de un error.
var errRollback = errors.New("rollback por resultado de negocio")

// maxSequenceAttempts acota el reintento ante una colisión de batch_number
// (índice único). Agotados los intentos, sube como falla de infraestructura.
const maxSequenceAttempts = 3
