package ports

import (
	"context"

	"github.com/hostalcentro/sistema-clientes/internal/core/domain"
)

// RegisterInput carries a registration request from the transport layer.
// Format checks (8-digit celular, habitación 1..3) happen upstream; the
// service still defends its own invariants.
type RegisterInput struct {
	Nombre     string
	Celular    string
	Habitacion int
}

// RegistrationOutcome is the result of a registration attempt. Blocked and
// already-registered are routine outcomes, not errors.
type RegistrationOutcome struct {
	// Created is true when a new client row was inserted.
	Created bool
	// Blocked is true when an existing blocked client tried to register;
	// the attempt was logged and refused.
	Blocked bool
	Mensaje string
	Cliente *domain.Cliente
}

// DecrementOutcome is the result of a remove-life request.
type DecrementOutcome struct {
	// Rejected is true when the client was already blocked; vidas is
	// unchanged and no VIDA_QUITADA/BLOQUEADO entry was appended.
	Rejected  bool
	Mensaje   string
	Accion    string
	Severidad domain.Severidad
	Cliente   *domain.Cliente
}

// ClienteDetail bundles a client with its full historial, newest first.
type ClienteDetail struct {
	Cliente   *domain.Cliente
	Historial []*domain.HistorialEntry
}

// ClienteService defines the use-case operations of the registry.
type ClienteService interface {
	Register(ctx context.Context, input RegisterInput) (*RegistrationOutcome, error)
	// RemoveLife errors with domain.ErrClienteNotFound for unknown phones.
	RemoveLife(ctx context.Context, celular string) (*DecrementOutcome, error)
	GetCliente(ctx context.Context, celular string) (*ClienteDetail, error)
	ListClientes(ctx context.Context) ([]*domain.Cliente, error)
	ResetCliente(ctx context.Context, id int64) (*domain.Cliente, error)
}
