package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dcardona/fermentos-api/internal/domain/production"
	"github.com/dcardona/fermentos-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo asigna secuencias de número de lote desde un contador por
// fecha en batch_counters. El contador es la fuente del estado compartido:
// nunca una variable en memoria, así varias instancias del servicio siguen
// siendo correctas.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// NextBatchSequence reserva la siguiente secuencia del día. El upsert toma el
// bloqueo de fila del contador, con lo que llamadas concurrentes para el
// mismo día se serializan y nunca reciben el mismo valor. La primera
// asignación de un día (o un contador rezagado) se siembra desde el mayor
// batch_number existente para ese prefijo; un sufijo corrupto cuenta como 0.
func (r *SequenceRepo) NextBatchSequence(day time.Time) (int, error) {
	ctx := context.Background()

	var lastNumber string
	prefix := production.BatchPrefix(day)
	err := r.q.QueryRow(ctx, `
		SELECT batch_number FROM production_batches
		WHERE batch_number LIKE $1
		ORDER BY batch_number DESC LIMIT 1`,
		prefix+"-%",
	).Scan(&lastNumber)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("last batch number: %w", err)
	}
	maxExisting := production.ParseSequence(lastNumber)

	var sequence int
	err = r.q.QueryRow(ctx, `
		INSERT INTO batch_counters (day, last_seq)
		VALUES ($1, $2 + 1)
		ON CONFLICT (day)
		DO UPDATE SET last_seq = GREATEST(batch_counters.last_seq, $2) + 1
		RETURNING last_seq`,
		day.UTC().Truncate(24*time.Hour), maxExisting,
	).Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("next batch sequence: %w", err)
	}
	return sequence, nil
}
