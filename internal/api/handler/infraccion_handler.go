package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hostalcentro/sistema-clientes/internal/core/ports"
)

// InfraccionDispatcher is the interface the handler uses to enqueue reports.
type InfraccionDispatcher interface {
	Enqueue(in ports.InfraccionInput)
	EnqueueBatch(ins []ports.InfraccionInput)
}

// InfraccionHandler handles infraction report ingestion from staff devices.
type InfraccionHandler struct {
	dispatcher InfraccionDispatcher
}

// NewInfraccionHandler creates an InfraccionHandler backed by the given
// dispatcher.
func NewInfraccionHandler(dispatcher InfraccionDispatcher) *InfraccionHandler {
	return &InfraccionHandler{dispatcher: dispatcher}
}

type infraccionRequest struct {
	Celular string `json:"celular" validate:"required,len=8,numeric"`
	Motivo  string `json:"motivo"  validate:"required"`
	// ReporteID identifies the report for retry dedup; assigned server-side
	// when the device omits it.
	ReporteID string     `json:"reporte_id"`
	Fecha     *time.Time `json:"fecha"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// Receive handles POST /api/infracciones — enqueues a single report, returns 202.
//
// @Summary      Ingest a single infraction report
// @Tags         infracciones
// @Accept       json
// @Produce      json
// @Param        body  body      infraccionRequest  true  "Infraction report"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/infracciones [post]
func (h *InfraccionHandler) Receive(c echo.Context) error {
	var req infraccionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toInfraccionInput(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "report accepted"})
}

// ReceiveBatch handles POST /api/infracciones/batch — enqueues a batch of
// reports, returns 202.
//
// @Summary      Ingest a batch of infraction reports
// @Tags         infracciones
// @Accept       json
// @Produce      json
// @Param        body  body      []infraccionRequest  true  "Array of infraction reports"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/infracciones/batch [post]
func (h *InfraccionHandler) ReceiveBatch(c echo.Context) error {
	var reqs []infraccionRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.InfraccionInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("report[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toInfraccionInput(req))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "reports accepted",
		Count:   len(inputs),
	})
}

// toInfraccionInput maps the HTTP request to the service DTO, filling in
// server-side defaults.
func toInfraccionInput(r infraccionRequest) ports.InfraccionInput {
	in := ports.InfraccionInput{
		Celular:   r.Celular,
		Motivo:    r.Motivo,
		ReporteID: r.ReporteID,
		Fecha:     time.Now().UTC(),
	}
	if in.ReporteID == "" {
		in.ReporteID = uuid.NewString()
	}
	if r.Fecha != nil {
		in.Fecha = r.Fecha.UTC()
	}
	return in
}
