package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics содержит Prometheus-метрики бэк-офиса.
// Все методы безопасны для nil-получателя, чтобы сервисы работали без метрик.
type Metrics struct {
	// BookingsCreated количество созданных броней
	BookingsCreated prometheus.Counter

	// SessionStatusUpdates смены статусов дней по новому коду
	SessionStatusUpdates *prometheus.CounterVec

	// ReconcileRuns запуски сверки по результату (ok, failed, skipped)
	ReconcileRuns *prometheus.CounterVec

	// ReconcileUpdated обновлённые сверкой записи (teacher, student)
	ReconcileUpdated *prometheus.CounterVec

	// ReconcileFailures ошибки обработки отдельных записей
	ReconcileFailures *prometheus.CounterVec

	// ReconcileDuration длительность прохода сверки
	ReconcileDuration prometheus.Histogram
}

// New создаёт и регистрирует метрики в reg
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BookingsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_created_total",
				Help:      "Total number of weekly bookings created",
			},
		),

		SessionStatusUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "session_status_updates_total",
				Help:      "Total number of session day status changes",
			},
			[]string{"code"},
		),

		ReconcileRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconcile_runs_total",
				Help:      "Total number of status reconciliation runs",
			},
			[]string{"result"},
		),

		ReconcileUpdated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconcile_updated_total",
				Help:      "Total number of records updated by status reconciliation",
			},
			[]string{"entity"},
		),

		ReconcileFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconcile_failures_total",
				Help:      "Total number of records reconciliation failed to process",
			},
			[]string{"entity"},
		),

		ReconcileDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "reconcile_duration_seconds",
				Help:      "Time taken by one reconciliation sweep",
				Buckets:   []float64{.05, .1, .5, 1, 5, 15, 60},
			},
		),
	}
}

// IncBookingsCreated увеличивает счётчик броней
func (m *Metrics) IncBookingsCreated(n int) {
	if m == nil {
		return
	}
	m.BookingsCreated.Add(float64(n))
}

// IncStatusUpdate учитывает смену статуса дня
func (m *Metrics) IncStatusUpdate(code string) {
	if m == nil {
		return
	}
	m.SessionStatusUpdates.WithLabelValues(code).Inc()
}

// ObserveReconcile записывает итог прохода сверки
func (m *Metrics) ObserveReconcile(result string, teachers, students, teacherFailures, studentFailures int, took time.Duration) {
	if m == nil {
		return
	}
	m.ReconcileRuns.WithLabelValues(result).Inc()
	m.ReconcileUpdated.WithLabelValues("teacher").Add(float64(teachers))
	m.ReconcileUpdated.WithLabelValues("student").Add(float64(students))
	m.ReconcileFailures.WithLabelValues("teacher").Add(float64(teacherFailures))
	m.ReconcileFailures.WithLabelValues("student").Add(float64(studentFailures))
	m.ReconcileDuration.Observe(took.Seconds())
}

// IncReconcileSkipped учитывает пропущенный из-за блокировки запуск
func (m *Metrics) IncReconcileSkipped() {
	if m == nil {
		return
	}
	m.ReconcileRuns.WithLabelValues("skipped").Inc()
}
