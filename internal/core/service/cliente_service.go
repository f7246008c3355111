package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/hostalcentro/sistema-clientes/internal/api/metrics"
	"github.com/hostalcentro/sistema-clientes/internal/core/domain"
	"github.com/hostalcentro/sistema-clientes/internal/core/ports"
)

// ClienteService implements the registration gate, the strike flow, and the
// admin operations. All durable state lives behind the repository; the
// service holds no state between calls.
type ClienteService struct {
	repo   ports.ClienteRepository
	logger zerolog.Logger
}

func NewClienteService(repo ports.ClienteRepository, logger zerolog.Logger) *ClienteService {
	return &ClienteService{repo: repo, logger: logger}
}

// Register decides the effect of a registration request: create an unseen
// client, acknowledge a known one, or refuse a blocked one. It never mutates
// vidas; each branch appends exactly one historial entry.
func (s *ClienteService) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegistrationOutcome, error) {
	cliente, err := s.repo.FindByCelular(ctx, input.Celular)
	switch {
	case err == nil:
		return s.registerKnown(ctx, cliente)
	case errors.Is(err, domain.ErrClienteNotFound):
		return s.registerNew(ctx, input)
	default:
		return nil, fmt.Errorf("register: %w", err)
	}
}

func (s *ClienteService) registerNew(ctx context.Context, input ports.RegisterInput) (*ports.RegistrationOutcome, error) {
	cliente, err := s.repo.Create(ctx, input.Nombre, input.Celular, input.Habitacion)
	if err != nil {
		// Lost a create race: another request registered the same celular
		// between our lookup and the insert. The unique constraint is the
		// authoritative guard; resolve through the known-client branch.
		if errors.Is(err, domain.ErrClienteExists) {
			existing, findErr := s.repo.FindByCelular(ctx, input.Celular)
			if findErr != nil {
				return nil, fmt.Errorf("register: %w", findErr)
			}
			return s.registerKnown(ctx, existing)
		}
		s.logger.Error().Err(err).Str("celular", input.Celular).Msg("failed to create cliente")
		return nil, fmt.Errorf("register: %w", err)
	}

	if _, err := s.repo.AppendHistorial(ctx, cliente.ID, domain.AccionRegistroInicial, "Primer registro del cliente"); err != nil {
		return nil, fmt.Errorf("register: historial: %w", err)
	}

	s.logger.Info().
		Int64("cliente_id", cliente.ID).
		Str("celular", cliente.Celular).
		Int("habitacion", cliente.Habitacion).
		Msg("cliente registered")
	metrics.RegistrosTotal.WithLabelValues("inicial").Inc()

	return &ports.RegistrationOutcome{
		Created: true,
		Mensaje: "Cliente registrado exitosamente",
		Cliente: cliente,
	}, nil
}

func (s *ClienteService) registerKnown(ctx context.Context, cliente *domain.Cliente) (*ports.RegistrationOutcome, error) {
	if cliente.Bloqueado {
		if _, err := s.repo.AppendHistorial(ctx, cliente.ID, domain.AccionIntentoRegistro, "Cliente bloqueado intentó registrarse"); err != nil {
			return nil, fmt.Errorf("register: historial: %w", err)
		}
		s.logger.Warn().
			Int64("cliente_id", cliente.ID).
			Str("celular", cliente.Celular).
			Msg("blocked cliente attempted to register")
		metrics.RegistrosTotal.WithLabelValues("bloqueado").Inc()

		return &ports.RegistrationOutcome{
			Blocked: true,
			Mensaje: "CLIENTE NO DESEADO - BLOQUEADO",
			Cliente: cliente,
		}, nil
	}

	detalle := fmt.Sprintf("Registro del día. Vidas restantes: %d", cliente.Vidas)
	if _, err := s.repo.AppendHistorial(ctx, cliente.ID, domain.AccionRegistro, detalle); err != nil {
		return nil, fmt.Errorf("register: historial: %w", err)
	}
	metrics.RegistrosTotal.WithLabelValues("repetido").Inc()

	return &ports.RegistrationOutcome{
		Mensaje: fmt.Sprintf("Cliente registrado anteriormente. Vidas restantes: %d", cliente.Vidas),
		Cliente: cliente,
	}, nil
}

// RemoveLife applies one strike to the client with the given celular. The
// decrement is a single conditional update in the store, so two concurrent
// calls can never both observe the same starting count. Already blocked
// clients are a rejection outcome, not an error, and leave no new
// VIDA_QUITADA/BLOQUEADO entry.
func (s *ClienteService) RemoveLife(ctx context.Context, celular string) (*ports.DecrementOutcome, error) {
	cliente, err := s.repo.DecrementVidas(ctx, celular)
	if err != nil {
		if errors.Is(err, domain.ErrClienteBloqueado) {
			s.logger.Warn().Str("celular", celular).Msg("strike refused, cliente already blocked")
			metrics.VidasRechazadasTotal.Inc()
			return &ports.DecrementOutcome{
				Rejected: true,
				Mensaje:  "CLIENTE BLOQUEADO",
				Cliente:  cliente,
			}, nil
		}
		return nil, fmt.Errorf("remove life: %w", err)
	}

	result := domain.StrikeResultFor(cliente.Vidas)
	if _, err := s.repo.AppendHistorial(ctx, cliente.ID, result.Accion, result.Detalle); err != nil {
		return nil, fmt.Errorf("remove life: historial: %w", err)
	}

	s.logger.Info().
		Int64("cliente_id", cliente.ID).
		Str("celular", cliente.Celular).
		Int("vidas", cliente.Vidas).
		Bool("bloqueado", cliente.Bloqueado).
		Msg("life removed")
	metrics.VidasQuitadasTotal.WithLabelValues(strconv.Itoa(cliente.Vidas)).Inc()
	if result.Bloqueado {
		metrics.ClientesBloqueadosTotal.Inc()
	}

	return &ports.DecrementOutcome{
		Mensaje:   result.Mensaje,
		Accion:    result.Accion,
		Severidad: result.Severidad,
		Cliente:   cliente,
	}, nil
}

// GetCliente returns the client and its historial, newest first.
func (s *ClienteService) GetCliente(ctx context.Context, celular string) (*ports.ClienteDetail, error) {
	cliente, err := s.repo.FindByCelular(ctx, celular)
	if err != nil {
		return nil, fmt.Errorf("get cliente: %w", err)
	}

	historial, err := s.repo.Historial(ctx, cliente.ID)
	if err != nil {
		return nil, fmt.Errorf("get cliente: historial: %w", err)
	}

	return &ports.ClienteDetail{Cliente: cliente, Historial: historial}, nil
}

// ListClientes returns all clients, newest registration first.
func (s *ClienteService) ListClientes(ctx context.Context) ([]*domain.Cliente, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	return clientes, nil
}

// ResetCliente restores the full life count from any state, including
// blocked, and logs a REINICIO entry.
func (s *ClienteService) ResetCliente(ctx context.Context, id int64) (*domain.Cliente, error) {
	cliente, err := s.repo.Reset(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reset cliente: %w", err)
	}

	if _, err := s.repo.AppendHistorial(ctx, cliente.ID, domain.AccionReinicio, "Vidas reiniciadas a 3"); err != nil {
		return nil, fmt.Errorf("reset cliente: historial: %w", err)
	}

	s.logger.Info().Int64("cliente_id", cliente.ID).Msg("vidas reset")
	metrics.ReiniciosTotal.Inc()

	return cliente, nil
}
