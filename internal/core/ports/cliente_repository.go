package ports

import (
	"context"

	"github.com/hostalcentro/sistema-clientes/internal/core/domain"
)

// ClienteRepository is the single point of truth for client rows and the
// historial log. Implementations own the vidas⇔bloqueado invariant: every
// write that touches vidas recomputes bloqueado in the same statement.
type ClienteRepository interface {
	// Create inserts a new client with VidasIniciales lives and bloqueado
	// false. Returns domain.ErrClienteExists when the celular is already
	// on file (unique constraint is the authoritative guard).
	Create(ctx context.Context, nombre, celular string, habitacion int) (*domain.Cliente, error)

	// FindByCelular returns domain.ErrClienteNotFound on miss; callers
	// decide what absence means.
	FindByCelular(ctx context.Context, celular string) (*domain.Cliente, error)
	FindByID(ctx context.Context, id int64) (*domain.Cliente, error)

	// List returns all clients ordered by fecha_registro descending.
	List(ctx context.Context) ([]*domain.Cliente, error)

	// UpdateVidas sets vidas and recomputes bloqueado atomically in the
	// same statement. Returns domain.ErrClienteNotFound for unknown ids.
	UpdateVidas(ctx context.Context, id int64, vidas int) (*domain.Cliente, error)

	// DecrementVidas removes one life in a single conditional update with
	// a floor at zero: a client that is already blocked is left untouched
	// and (current row, domain.ErrClienteBloqueado) is returned. Safe
	// under concurrent callers targeting the same celular.
	DecrementVidas(ctx context.Context, celular string) (*domain.Cliente, error)

	// Reset restores vidas to VidasIniciales and clears bloqueado
	// unconditionally, from any state.
	Reset(ctx context.Context, id int64) (*domain.Cliente, error)

	// AppendHistorial inserts one audit entry. Plain insert; existence of
	// the client is only enforced by the foreign key.
	AppendHistorial(ctx context.Context, clienteID int64, accion, detalle string) (*domain.HistorialEntry, error)

	// Historial returns the client's audit entries, newest first.
	Historial(ctx context.Context, clienteID int64) ([]*domain.HistorialEntry, error)
}
