package ledger

import "time"

// SetClock fija el reloj del motor en pruebas.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}
