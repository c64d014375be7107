package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataquery_queries_total",
			Help: "Total number of queries sent to the data assistant, by outcome",
		},
		[]string{"outcome"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataquery_query_duration_seconds",
			Help:    "Round-trip time of query requests in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"outcome"},
	)

	QueriesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataquery_queries_in_flight",
			Help: "Number of query requests currently awaiting a response",
		},
	)

	StaleResultsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dataquery_stale_results_discarded_total",
			Help: "Query results dropped because a newer submission superseded them",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataquery_notifications_total",
			Help: "Notifications shown to the user, by severity",
		},
		[]string{"severity"},
	)

	RevealsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dataquery_reveals_completed_total",
			Help: "Answers revealed to their full length",
		},
	)
)

// ObserveQuery records a finished query.
func ObserveQuery(outcome string, elapsed time.Duration) {
	QueriesTotal.WithLabelValues(outcome).Inc()
	QueryDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Serve exposes the default registry on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
