package handler

import (
	"github.com/hostalcentro/sistema-clientes/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// Celular format (exactly 8 digits) and habitación range are enforced here,
// before the core is ever invoked.

type registrarClienteRequest struct {
	Nombre     string `json:"nombre"     validate:"required"`
	Celular    string `json:"celular"    validate:"required,len=8,numeric"`
	Habitacion int    `json:"habitacion" validate:"required,min=1,max=3"`
}

type quitarVidaRequest struct {
	Celular string `json:"celular" validate:"required,len=8,numeric"`
}

// --- Response types ---

// Response payloads mirror the legacy API: the staff frontend keys off the
// mensaje strings and the embedded cliente row.

type clienteResponse struct {
	Mensaje string          `json:"mensaje"`
	Cliente *domain.Cliente `json:"cliente"`
}

type clienteBloqueadoResponse struct {
	Mensaje     string          `json:"mensaje"`
	Cliente     *domain.Cliente `json:"cliente"`
	Advertencia string          `json:"advertencia,omitempty"`
	Detalle     string          `json:"detalle,omitempty"`
}

type clienteDetalleResponse struct {
	Cliente   *domain.Cliente          `json:"cliente"`
	Historial []*domain.HistorialEntry `json:"historial"`
}
