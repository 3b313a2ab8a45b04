package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 客户端核心指标，经运维端点 /metrics 暴露
var (
	EventsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nimbus_events_dispatched_total",
		Help: "Live events dispatched to a sink, by event name.",
	}, []string{"event"})

	EventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nimbus_events_dropped_total",
		Help: "Live events dropped (malformed, out-of-context or panicked handler), by reason.",
	}, []string{"reason"})

	MessagesDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nimbus_messages_deduplicated_total",
		Help: "Incoming messages rejected by id/clientMsgId de-duplication.",
	})

	HistoryPagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nimbus_history_pages_fetched_total",
		Help: "Backward pagination pages fetched successfully.",
	})

	WSReconnects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nimbus_ws_reconnects_total",
		Help: "Websocket reconnect attempts.",
	})
)
