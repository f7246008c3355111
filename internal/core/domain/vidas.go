package domain

import "fmt"

// Severidad grades a strike result for callers that want to escalate
// (warning banner vs. terminal block).
type Severidad string

const (
	SeveridadAdvertencia Severidad = "advertencia"
	SeveridadUltima      Severidad = "ultima_oportunidad"
	SeveridadTerminal    Severidad = "terminal"
)

// StrikeResult is the outcome of removing one life. It carries everything a
// caller needs to persist the new state and append the matching historial
// entry: no decision about tags or wording is made anywhere else.
type StrikeResult struct {
	NuevasVidas int
	Bloqueado   bool
	Accion      string
	Severidad   Severidad
	// Mensaje is the user-facing message for the staff UI.
	Mensaje string
	// Detalle is the historial entry body.
	Detalle string
}

// ApplyStrike computes the effect of removing one life from c. Pure: it has
// no side effects and does not modify c; callers persist NuevasVidas and
// Bloqueado through the store in a single atomic step.
//
// A blocked client (Vidas <= 0) cannot be struck again; the call returns
// ErrClienteBloqueado and the count stays at the floor.
func ApplyStrike(c *Cliente) (*StrikeResult, error) {
	if c.Bloqueado || c.Vidas <= 0 {
		return nil, ErrClienteBloqueado
	}
	return StrikeResultFor(c.Vidas - 1), nil
}

// StrikeResultFor maps the life count left after a decrement to its action
// tag, severity, and messages. Split out from ApplyStrike so callers that
// decrement atomically in the store can derive the result from the
// read-back row.
func StrikeResultFor(nuevasVidas int) *StrikeResult {
	r := &StrikeResult{
		NuevasVidas: nuevasVidas,
		Bloqueado:   nuevasVidas <= 0,
		Detalle:     fmt.Sprintf("Se quitó una vida. Vidas restantes: %d", nuevasVidas),
	}

	switch {
	case nuevasVidas == 2:
		r.Accion = AccionVidaQuitada
		r.Severidad = SeveridadAdvertencia
		r.Mensaje = "Se quitó 1 vida. El cliente tiene 2 vidas restantes."
	case nuevasVidas == 1:
		r.Accion = AccionVidaQuitada
		r.Severidad = SeveridadUltima
		r.Mensaje = "Se quitó 1 vida. El cliente tiene 1 vida restante. ÚLTIMA OPORTUNIDAD."
	case nuevasVidas <= 0:
		r.Accion = AccionBloqueado
		r.Severidad = SeveridadTerminal
		r.Mensaje = "CLIENTE BLOQUEADO. No tiene más vidas disponibles."
	default:
		r.Accion = AccionVidaQuitada
		r.Severidad = SeveridadAdvertencia
		r.Mensaje = fmt.Sprintf("Se quitó 1 vida. Vidas restantes: %d", nuevasVidas)
	}
	return r
}
