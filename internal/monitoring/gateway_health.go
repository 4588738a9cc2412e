package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/biaslens/biaslens/internal/gateway"
)

const HEALTHCHECK_TIMER = 30

// MonitorGatewayHealth probes the model API on a timer and flips the
// shared flag consumers pause on. A failed probe also drops the resolved
// model id so the next completion re-discovers one.
func MonitorGatewayHealth(ctx context.Context, client *gateway.Client, healthy *atomic.Bool) {
	ticker := time.NewTicker(time.Second * HEALTHCHECK_TIMER)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := client.Ping(ctx)
			isHealthy := err == nil
			healthy.Store(isHealthy)
			if !isHealthy {
				slog.Warn("[HealthCheck] Model gateway is unhealthy",
					slog.String("error", err.Error()))
				client.Model().Reset()
			}
		}
	}
}
