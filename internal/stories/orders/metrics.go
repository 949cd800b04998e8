package orders

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ordersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bot_orders_created_total",
	Help: "Количество созданных заказов",
}, []string{"bot_type"})
