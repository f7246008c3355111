package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hostalcentro/sistema-clientes/internal/core/domain"
)

// pgUniqueViolation is the PostgreSQL error code for a unique constraint
// violation (duplicate celular on insert).
const pgUniqueViolation = "23505"

const clienteColumns = "id, nombre, celular, vidas, habitacion, fecha_registro, bloqueado"

// ClienteRepository implements ports.ClienteRepository on PostgreSQL. The
// vidas⇔bloqueado invariant is enforced in SQL: every statement that writes
// vidas sets bloqueado in the same expression, so no reader can observe the
// two fields out of sync.
type ClienteRepository struct {
	db *sql.DB
}

func NewClienteRepository(db *sql.DB) *ClienteRepository {
	return &ClienteRepository{db: db}
}

func scanCliente(row *sql.Row) (*domain.Cliente, error) {
	c := &domain.Cliente{}
	err := row.Scan(&c.ID, &c.Nombre, &c.Celular, &c.Vidas, &c.Habitacion, &c.FechaRegistro, &c.Bloqueado)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new client with the default life count. The UNIQUE
// constraint on celular is the authoritative duplicate guard.
func (r *ClienteRepository) Create(ctx context.Context, nombre, celular string, habitacion int) (*domain.Cliente, error) {
	query := `
		INSERT INTO clientes (nombre, celular, habitacion)
		VALUES ($1, $2, $3)
		RETURNING ` + clienteColumns

	c, err := scanCliente(r.db.QueryRowContext(ctx, query, nombre, celular, habitacion))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domain.ErrClienteExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *ClienteRepository) FindByCelular(ctx context.Context, celular string) (*domain.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE celular = $1`

	c, err := scanCliente(r.db.QueryRowContext(ctx, query, celular))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClienteNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *ClienteRepository) FindByID(ctx context.Context, id int64) (*domain.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE id = $1`

	c, err := scanCliente(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClienteNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// List returns all clients, newest registration first.
func (r *ClienteRepository) List(ctx context.Context) ([]*domain.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes ORDER BY fecha_registro DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var clientes []*domain.Cliente
	for rows.Next() {
		c := &domain.Cliente{}
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Celular, &c.Vidas, &c.Habitacion, &c.FechaRegistro, &c.Bloqueado); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		clientes = append(clientes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return clientes, nil
}

// UpdateVidas sets the life count and recomputes bloqueado in the same
// statement.
func (r *ClienteRepository) UpdateVidas(ctx context.Context, id int64, vidas int) (*domain.Cliente, error) {
	query := `
		UPDATE clientes
		SET vidas = $1, bloqueado = ($1 <= 0)
		WHERE id = $2
		RETURNING ` + clienteColumns

	c, err := scanCliente(r.db.QueryRowContext(ctx, query, vidas, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClienteNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// DecrementVidas removes one life in a single conditional update: the WHERE
// clause refuses blocked rows, so concurrent strikes against the same client
// serialize on the row and the count can never go below zero. When no row is
// updated, a follow-up read distinguishes an unknown celular from an already
// blocked client; the latter is returned alongside ErrClienteBloqueado.
func (r *ClienteRepository) DecrementVidas(ctx context.Context, celular string) (*domain.Cliente, error) {
	query := `
		UPDATE clientes
		SET vidas = vidas - 1, bloqueado = (vidas - 1 <= 0)
		WHERE celular = $1 AND bloqueado = FALSE AND vidas > 0
		RETURNING ` + clienteColumns

	c, err := scanCliente(r.db.QueryRowContext(ctx, query, celular))
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("db error: %w", err)
	}

	current, findErr := r.FindByCelular(ctx, celular)
	if findErr != nil {
		return nil, findErr
	}
	return current, domain.ErrClienteBloqueado
}

// Reset restores the full life count unconditionally, from any state.
func (r *ClienteRepository) Reset(ctx context.Context, id int64) (*domain.Cliente, error) {
	query := `
		UPDATE clientes
		SET vidas = 3, bloqueado = FALSE
		WHERE id = $1
		RETURNING ` + clienteColumns

	c, err := scanCliente(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClienteNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// AppendHistorial inserts one audit entry. The FK on cliente_id is the only
// existence check.
func (r *ClienteRepository) AppendHistorial(ctx context.Context, clienteID int64, accion, detalle string) (*domain.HistorialEntry, error) {
	query := `
		INSERT INTO historial (cliente_id, accion, detalle)
		VALUES ($1, $2, $3)
		RETURNING id, cliente_id, accion, detalle, fecha`

	e := &domain.HistorialEntry{}
	err := r.db.QueryRowContext(ctx, query, clienteID, accion, detalle).
		Scan(&e.ID, &e.ClienteID, &e.Accion, &e.Detalle, &e.Fecha)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

// Historial returns the client's audit entries, newest first.
func (r *ClienteRepository) Historial(ctx context.Context, clienteID int64) ([]*domain.HistorialEntry, error) {
	query := `
		SELECT id, cliente_id, accion, detalle, fecha
		FROM historial
		WHERE cliente_id = $1
		ORDER BY fecha DESC`

	rows, err := r.db.QueryContext(ctx, query, clienteID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var entries []*domain.HistorialEntry
	for rows.Next() {
		e := &domain.HistorialEntry{}
		if err := rows.Scan(&e.ID, &e.ClienteID, &e.Accion, &e.Detalle, &e.Fecha); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entries, nil
}
