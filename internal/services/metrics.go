package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the application
type Metrics struct {
	// Session metrics
	SessionsIssued prometheus.Counter
	AuthRejections *prometheus.CounterVec

	// Food collection metrics
	FoodMutations *prometheus.CounterVec
}

var globalMetrics *Metrics

// InitMetrics initializes the Prometheus metrics
func InitMetrics() *Metrics {
	metrics := &Metrics{
		// Issued session tokens (counter - only goes up)
		SessionsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "foodgarden_sessions_issued_total",
			Help: "Total number of session tokens issued",
		}),

		// Access gate rejections by reason
		AuthRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "foodgarden_auth_rejections_total",
			Help: "Total number of rejected requests by reason",
		}, []string{"reason"}), // no_token, invalid_token, expired_token

		// Mutating food operations by type
		FoodMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "foodgarden_food_mutations_total",
			Help: "Total number of food mutations by operation",
		}, []string{"operation"}), // create, update, delete, add_note
	}

	globalMetrics = metrics
	return metrics
}

// GetMetrics returns the global metrics instance, nil before InitMetrics.
func GetMetrics() *Metrics {
	return globalMetrics
}

// RecordSessionIssued records an issued session token
func (m *Metrics) RecordSessionIssued() {
	m.SessionsIssued.Inc()
}

// RecordAuthRejection records an access gate rejection
func (m *Metrics) RecordAuthRejection(reason string) {
	m.AuthRejections.WithLabelValues(reason).Inc()
}

// RecordFoodMutation records a mutating food operation
func (m *Metrics) RecordFoodMutation(operation string) {
	m.FoodMutations.WithLabelValues(operation).Inc()
}
