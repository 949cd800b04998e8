package telegram

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	updatesRouted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_routed_total",
		Help: "Количество обработанных telegram update по типам.",
	}, []string{"kind"})

	routeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_route_errors_total",
		Help: "Количество ошибок обработки update.",
	})
)
