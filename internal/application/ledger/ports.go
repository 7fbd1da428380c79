package ledger

import (
	"context"

	"github.com/dcardona/fermentos-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a la transacción en curso.
// Todos comparten la misma transacción de BD.
type TxRepos struct {
	Items     repository.InventoryRepository
	Movements repository.MovementRepository
	Batches   repository.BatchRepository
	Sequences repository.SequenceRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Commit si fn devuelve nil, Rollback si no:
// garantiza la atomicidad todo-o-nada de cada operación del libro, incluida
// la cancelación del caller antes del commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
