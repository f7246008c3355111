package ports

import (
	"context"
	"time"
)

// InfraccionInput is an infraction report submitted by a staff device. The
// transport layer fills ReporteID (UUID) and Fecha when the device omits
// them; the pair (Celular, ReporteID) identifies a report for dedup.
type InfraccionInput struct {
	Celular   string
	Motivo    string
	ReporteID string
	Fecha     time.Time
}

// InfraccionService processes queued infraction reports: deduplicates,
// applies the strike, and records the historial entry.
type InfraccionService interface {
	Process(ctx context.Context, in InfraccionInput) error
}
