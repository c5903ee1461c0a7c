package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	LoginsTotal              metric.Int64Counter
	TokenVerifyFailuresTotal metric.Int64Counter
	DbQueryDurationSeconds   metric.Float64Histogram
	DbQueryErrorsTotal       metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the instruments once, from the globally
// configured MeterProvider. Call after tracer.Init.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("counseling-api")
		var err error
		m := &AppMetrics{}

		m.LoginsTotal, err = meter.Int64Counter(
			"auth_logins_total",
			metric.WithDescription("Total number of completed provider logins"),
			metric.WithUnit("{login}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create auth_logins_total: %v", err)
		}

		m.TokenVerifyFailuresTotal, err = meter.Int64Counter(
			"token_verify_failures_total",
			metric.WithDescription("Bearer token verifications rejected at the request gate"),
			metric.WithUnit("{failure}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create token_verify_failures_total: %v", err)
		}

		m.DbQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance. Panics if
// InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics.Get called before metrics.InitAppMetrics")
	}
	return appMetrics
}

// Lookup returns the instruments, or nil when InitAppMetrics has not run.
func Lookup() *AppMetrics {
	return appMetrics
}
