package domain

import (
	"errors"
	"time"
)

// VidasIniciales is the life count assigned on first registration. Every
// client walks the same ladder: 3 → 2 → 1 → 0 (blocked).
const VidasIniciales = 3

// Historial action tags. The vocabulary is fixed; the frontend and the audit
// reports key off these exact strings.
const (
	AccionRegistroInicial = "REGISTRO_INICIAL"
	AccionRegistro        = "REGISTRO"
	AccionIntentoRegistro = "INTENTO_REGISTRO"
	AccionVidaQuitada     = "VIDA_QUITADA"
	AccionBloqueado       = "BLOQUEADO"
	AccionReinicio        = "REINICIO"
)

var ErrClienteNotFound = errors.New("cliente not found")
var ErrClienteExists = errors.New("cliente already exists")
var ErrClienteBloqueado = errors.New("cliente is blocked")
var ErrValidacion = errors.New("invalid input")

// Cliente is the core aggregate: one row per guest, keyed naturally by
// celular. Invariant: Bloqueado == (Vidas <= 0) after every mutation.
type Cliente struct {
	ID            int64     `json:"id"`
	Nombre        string    `json:"nombre"`
	Celular       string    `json:"celular"`
	Vidas         int       `json:"vidas"`
	Habitacion    int       `json:"habitacion"`
	FechaRegistro time.Time `json:"fecha_registro"`
	Bloqueado     bool      `json:"bloqueado"`
}

// HistorialEntry is one line of the append-only audit log. Entries are never
// updated or deleted.
type HistorialEntry struct {
	ID        int64     `json:"id"`
	ClienteID int64     `json:"cliente_id"`
	Accion    string    `json:"accion"`
	Detalle   string    `json:"detalle"`
	Fecha     time.Time `json:"fecha"`
}
