// Package metrics содержит prometheus-метрики бота.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты обработки команды.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultUnknown = "unknown"
)

// Metrics собирает счётчики команд и входов участников.
type Metrics struct {
	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
	joins    *prometheus.CounterVec
}

// New регистрирует метрики в reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		commands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linkbot_commands_total",
				Help: "Total number of handled slash commands",
			},
			[]string{"command", "result"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "linkbot_command_duration_seconds",
				Help:    "Slash command handling duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		joins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linkbot_member_joins_total",
				Help: "Total number of guild member joins",
			},
			[]string{"linked"},
		),
	}
}

// CommandHandled учитывает обработку команды.
func (m *Metrics) CommandHandled(command, result string, took time.Duration) {
	m.commands.WithLabelValues(command, result).Inc()
	if result != ResultUnknown {
		m.duration.WithLabelValues(command).Observe(took.Seconds())
	}
}

// MemberJoined учитывает вход участника.
func (m *Metrics) MemberJoined(linked bool) {
	m.joins.WithLabelValues(strconv.FormatBool(linked)).Inc()
}
