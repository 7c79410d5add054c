package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de movimientos, expuestos en /metrics.
var (
	movementsAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bodega_movements_accepted_total",
		Help: "Movimientos de inventario aplicados, por clase.",
	}, []string{"kind"})

	movementsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bodega_movements_rejected_total",
		Help: "Movimientos de inventario rechazados, por clase y razón.",
	}, []string{"kind", "reason"})
)
