package bench

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var opDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "twothree_bench_op_duration_seconds",
	Help:    "Mean per-operation latency of each benchmark phase",
	Buckets: prometheus.ExponentialBuckets(1e-8, 4, 12),
}, []string{"structure", "op"})

var opsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "twothree_bench_ops_total",
	Help: "Number of operations executed per structure and phase",
}, []string{"structure", "op"})

func observePhase(structure, op string, ops int, elapsed time.Duration) {
	if ops <= 0 {
		return
	}
	opDuration.WithLabelValues(structure, op).Observe(elapsed.Seconds() / float64(ops))
	opsTotal.WithLabelValues(structure, op).Add(float64(ops))
}

// ServeMetrics exposes the prometheus registry on addr until ctx is done.
func ServeMetrics(ctx context.Context, addr string, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: promhttp.Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown", "err", err)
		}
	}()

	logger.Info("metrics server listening", "addr", addr)
	defer logger.Info("metrics server exit")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
