package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hostalcentro/sistema-clientes/internal/core/domain"
	"github.com/hostalcentro/sistema-clientes/internal/core/ports"
)

type fixedClienteService struct{}

func (fixedClienteService) Register(_ context.Context, input ports.RegisterInput) (*ports.RegistrationOutcome, error) {
	return &ports.RegistrationOutcome{
		Created: true,
		Mensaje: "Cliente registrado exitosamente",
		Cliente: &domain.Cliente{ID: 1, Nombre: input.Nombre, Celular: input.Celular, Vidas: 3, Habitacion: input.Habitacion},
	}, nil
}

func (fixedClienteService) RemoveLife(_ context.Context, celular string) (*ports.DecrementOutcome, error) {
	return nil, domain.ErrClienteNotFound
}

func (fixedClienteService) GetCliente(_ context.Context, celular string) (*ports.ClienteDetail, error) {
	return nil, domain.ErrClienteNotFound
}

func (fixedClienteService) ListClientes(_ context.Context) ([]*domain.Cliente, error) {
	return nil, nil
}

func (fixedClienteService) ResetCliente(_ context.Context, id int64) (*domain.Cliente, error) {
	return nil, domain.ErrClienteNotFound
}

type noopDispatcher struct{ count int }

func (d *noopDispatcher) Enqueue(ports.InfraccionInput) { d.count++ }

func (d *noopDispatcher) EnqueueBatch(ins []ports.InfraccionInput) { d.count += len(ins) }

// The prometheus middleware registers collectors globally, so the router is
// built once and shared across subtests.
func TestRouter(t *testing.T) {
	dispatcher := &noopDispatcher{}
	e := NewRouter(fixedClienteService{}, dispatcher, nil, nil, zerolog.Nop())

	do := func(method, target, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, target, nil)
		} else {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("registrar", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/registrar", `{"nombre":"Ana","celular":"12345678","habitacion":1}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("quitar-vida unknown maps to 404", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/quitar-vida", `{"celular":"99999999"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Cliente no encontrado") {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("validation failure maps to 400", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/registrar", `{"nombre":"Ana","celular":"123","habitacion":1}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("infracciones accepted", func(t *testing.T) {
		before := dispatcher.count
		rec := do(http.MethodPost, "/api/infracciones", `{"celular":"12345678","motivo":"ruido"}`)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
		}
		if dispatcher.count != before+1 {
			t.Errorf("report was not enqueued")
		}
	})

	t.Run("liveness", func(t *testing.T) {
		rec := do(http.MethodGet, "/health", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("metrics exposed", func(t *testing.T) {
		rec := do(http.MethodGet, "/metrics", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/nope", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
