package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/hostalcentro/sistema-clientes/internal/api/metrics"
	"github.com/hostalcentro/sistema-clientes/internal/core/domain"
	"github.com/hostalcentro/sistema-clientes/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) for infraction
// reports.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, celular, reporteID string) (bool, error)
	Mark(ctx context.Context, celular, reporteID string) error
}

type infraccionService struct {
	repo  ports.ClienteRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewInfraccionService returns an InfraccionService implementation.
func NewInfraccionService(repo ports.ClienteRepository, dedup DedupChecker, log zerolog.Logger) ports.InfraccionService {
	return &infraccionService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and applies a single infraction report. Reports that
// were already processed, and reports against an already blocked client, are
// skipped without error; staff devices retry freely.
func (s *infraccionService) Process(ctx context.Context, in ports.InfraccionInput) error {
	// 1. Idempotency check — silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.Celular, in.ReporteID)
	if err != nil {
		s.log.Warn().Err(err).Str("celular", in.Celular).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("celular", in.Celular).Str("reporte_id", in.ReporteID).Msg("duplicate report skipped")
		metrics.InfraccionesProcesadasTotal.WithLabelValues("duplicada").Inc()
		return nil
	}

	// 2. Atomic strike with floor at zero.
	cliente, err := s.repo.DecrementVidas(ctx, in.Celular)
	if err != nil {
		if errors.Is(err, domain.ErrClienteBloqueado) {
			s.log.Info().Str("celular", in.Celular).Str("motivo", in.Motivo).Msg("report against blocked cliente skipped")
			metrics.InfraccionesProcesadasTotal.WithLabelValues("bloqueado").Inc()
			return nil
		}
		if errors.Is(err, domain.ErrClienteNotFound) {
			metrics.InfraccionesErroresTotal.WithLabelValues("cliente_no_encontrado").Inc()
			return fmt.Errorf("process infraccion: %w", err)
		}
		metrics.InfraccionesErroresTotal.WithLabelValues("update_failed").Inc()
		return fmt.Errorf("process infraccion: %w", err)
	}

	// 3. The strike is applied; mark the report so a device retry cannot
	// strike twice. Marking any earlier would leave the key set on the
	// error branches and swallow the retry.
	if markErr := s.dedup.Mark(ctx, in.Celular, in.ReporteID); markErr != nil {
		s.log.Warn().Err(markErr).Str("celular", in.Celular).Msg("failed to set dedup key")
	}

	// 4. Audit entry carries the reported motivo and time.
	result := domain.StrikeResultFor(cliente.Vidas)
	detalle := result.Detalle
	if in.Motivo != "" {
		detalle = fmt.Sprintf("%s. Motivo: %s", detalle, in.Motivo)
	}
	if !in.Fecha.IsZero() {
		detalle = fmt.Sprintf("%s. Reportado: %s", detalle, in.Fecha.Format(time.RFC3339))
	}
	if _, err := s.repo.AppendHistorial(ctx, cliente.ID, result.Accion, detalle); err != nil {
		metrics.InfraccionesErroresTotal.WithLabelValues("historial_failed").Inc()
		return fmt.Errorf("process infraccion: historial: %w", err)
	}

	s.log.Info().
		Str("celular", in.Celular).
		Str("reporte_id", in.ReporteID).
		Str("motivo", in.Motivo).
		Int("vidas", cliente.Vidas).
		Bool("bloqueado", cliente.Bloqueado).
		Msg("infraccion processed")
	metrics.InfraccionesProcesadasTotal.WithLabelValues("aplicada").Inc()
	metrics.VidasQuitadasTotal.WithLabelValues(strconv.Itoa(cliente.Vidas)).Inc()
	if result.Bloqueado {
		metrics.ClientesBloqueadosTotal.Inc()
	}

	return nil
}
