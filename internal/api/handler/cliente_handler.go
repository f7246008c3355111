package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hostalcentro/sistema-clientes/internal/core/ports"
)

// ClienteHandler handles HTTP requests for client operations.
type ClienteHandler struct {
	service ports.ClienteService
}

func NewClienteHandler(service ports.ClienteService) *ClienteHandler {
	return &ClienteHandler{service: service}
}

// Registrar handles POST /api/registrar.
//
// @Summary      Register a guest (create, acknowledge, or refuse if blocked)
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        body  body      registrarClienteRequest  true  "Guest details"
// @Success      200   {object}  clienteResponse
// @Success      201   {object}  clienteResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  clienteBloqueadoResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/registrar [post]
func (h *ClienteHandler) Registrar(c echo.Context) error {
	var req registrarClienteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Nombre:     req.Nombre,
		Celular:    req.Celular,
		Habitacion: req.Habitacion,
	})
	if err != nil {
		return err
	}

	switch {
	case outcome.Blocked:
		return c.JSON(http.StatusForbidden, clienteBloqueadoResponse{
			Mensaje:     outcome.Mensaje,
			Cliente:     outcome.Cliente,
			Advertencia: "Este cliente ha sido bloqueado por incumplir las reglas repetidamente.",
		})
	case outcome.Created:
		return c.JSON(http.StatusCreated, clienteResponse{
			Mensaje: outcome.Mensaje,
			Cliente: outcome.Cliente,
		})
	default:
		return c.JSON(http.StatusOK, clienteResponse{
			Mensaje: outcome.Mensaje,
			Cliente: outcome.Cliente,
		})
	}
}

// QuitarVida handles POST /api/quitar-vida.
//
// @Summary      Remove one life from a guest
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        body  body      quitarVidaRequest  true  "Guest celular"
// @Success      200   {object}  clienteResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  clienteBloqueadoResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/quitar-vida [post]
func (h *ClienteHandler) QuitarVida(c echo.Context) error {
	var req quitarVidaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.service.RemoveLife(c.Request().Context(), req.Celular)
	if err != nil {
		return err
	}

	if outcome.Rejected {
		return c.JSON(http.StatusForbidden, clienteBloqueadoResponse{
			Mensaje: outcome.Mensaje,
			Cliente: outcome.Cliente,
			Detalle: "Este cliente ya no tiene vidas disponibles.",
		})
	}

	return c.JSON(http.StatusOK, clienteResponse{
		Mensaje: outcome.Mensaje,
		Cliente: outcome.Cliente,
	})
}

// Obtener handles GET /api/cliente/:celular.
//
// @Summary      Get a guest with full historial
// @Tags         clientes
// @Produce      json
// @Param        celular  path      string  true  "8-digit phone number"
// @Success      200      {object}  clienteDetalleResponse
// @Failure      404      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Router       /api/cliente/{celular} [get]
func (h *ClienteHandler) Obtener(c echo.Context) error {
	detail, err := h.service.GetCliente(c.Request().Context(), c.Param("celular"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, clienteDetalleResponse{
		Cliente:   detail.Cliente,
		Historial: detail.Historial,
	})
}

// Listar handles GET /api/listar.
//
// @Summary      List all guests, newest first
// @Tags         clientes
// @Produce      json
// @Success      200  {array}   domain.Cliente
// @Failure      500  {object}  errorResponse
// @Router       /api/listar [get]
func (h *ClienteHandler) Listar(c echo.Context) error {
	clientes, err := h.service.ListClientes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientes)
}

// Reiniciar handles PUT /api/reiniciar/:id.
//
// @Summary      Reset a guest's lives to 3 (admin)
// @Tags         clientes
// @Produce      json
// @Param        id  path      int  true  "Client id"
// @Success      200  {object}  clienteResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/reiniciar/{id} [put]
func (h *ClienteHandler) Reiniciar(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	cliente, err := h.service.ResetCliente(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, clienteResponse{
		Mensaje: "Vidas reiniciadas exitosamente",
		Cliente: cliente,
	})
}
