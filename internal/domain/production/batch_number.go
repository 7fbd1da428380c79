package production

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Servicios de dominio del ciclo de producción: formato del número de lote
// y cálculos derivados al completar (rendimiento y horas de producción).

// BatchPrefix devuelve el prefijo BATCH-YYYYMMDD para una fecha (en UTC).
func BatchPrefix(date time.Time) string {
	return "BATCH-" + date.UTC().Format("20060102")
}

// FormatBatchNumber arma el número completo con la secuencia a 3 dígitos.
func FormatBatchNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("%s-%03d", BatchPrefix(date), sequence)
}

// ParseSequence extrae la secuencia NNN de un batch_number.
// Un formato corrupto devuelve 0 en lugar de fallar: el asignador parte
// de 1 y la operación completa no se cae por un número malformado.
func ParseSequence(batchNumber string) int {
	parts := strings.Split(batchNumber, "-")
	if len(parts) != 3 {
		return 0
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// YieldPercentage calcula actual_yield / batch_size * 100.
// Con batch_size cero devuelve 100 (guarda para el caso degenerado).
func YieldPercentage(actualYield, batchSize decimal.Decimal) decimal.Decimal {
	if !batchSize.GreaterThan(decimal.Zero) {
		return decimal.NewFromInt(100)
	}
	return actualYield.Div(batchSize).Mul(decimal.NewFromInt(100))
}

// ProductionHours devuelve las horas completas entre inicio y fin, nunca negativas.
func ProductionHours(start, end time.Time) decimal.Decimal {
	hours := int64(end.Sub(start).Hours())
	if hours < 0 {
		hours = 0
	}
	return decimal.NewFromInt(hours)
}
