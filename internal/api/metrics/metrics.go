// Package metrics defines and registers all custom Prometheus metrics for the
// guest registry. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto at package init; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "registro"

// ── Registration metrics ─────────────────────────────────────────────────────

// RegistrosTotal counts registration attempts by outcome.
// Label:
//   - resultado: "inicial" (new client), "repetido" (already known),
//     "bloqueado" (refused)
var RegistrosTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registros_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"resultado"},
)

// ── Strike metrics ───────────────────────────────────────────────────────────

// VidasQuitadasTotal counts applied strikes.
// Label:
//   - vidas_restantes: life count after the strike ("2", "1", "0")
var VidasQuitadasTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vidas_quitadas_total",
		Help:      "Total number of lives removed, by remaining life count.",
	},
	[]string{"vidas_restantes"},
)

// VidasRechazadasTotal counts strike attempts refused because the client was
// already blocked.
var VidasRechazadasTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vidas_rechazadas_total",
		Help:      "Total number of strike attempts against already blocked clients.",
	},
)

// ClientesBloqueadosTotal counts clients that reached zero lives.
var ClientesBloqueadosTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clientes_bloqueados_total",
		Help:      "Total number of clients blocked after losing their last life.",
	},
)

// ReiniciosTotal counts admin resets back to the initial life count.
var ReiniciosTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reinicios_total",
		Help:      "Total number of admin life resets.",
	},
)

// ── Infraction pipeline metrics ──────────────────────────────────────────────

// InfraccionesProcesadasTotal counts infraction reports that completed
// processing.
// Label:
//   - resultado: "aplicada", "bloqueado" (client already blocked, skipped),
//     "duplicada" (dedup hit, skipped)
var InfraccionesProcesadasTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "infracciones_procesadas_total",
		Help:      "Total number of infraction reports processed, by result.",
	},
	[]string{"resultado"},
)

// InfraccionesErroresTotal counts infraction reports that failed processing.
// Label:
//   - reason: short failure description (e.g. "cliente_no_encontrado",
//     "update_failed")
var InfraccionesErroresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "infracciones_errores_total",
		Help:      "Total number of infraction reports that failed processing.",
	},
	[]string{"reason"},
)

// InfraccionesQueueDepth tracks the number of reports waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", …)
var InfraccionesQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "infracciones_queue_depth",
		Help:      "Current number of infraction reports pending per dispatcher worker.",
	},
	[]string{"worker_id"},
)
