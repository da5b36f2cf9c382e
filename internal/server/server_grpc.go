package server

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// GRPCServiceName is the health service name reported for the predictor.
const GRPCServiceName = "raincast.Predictor"

const healthProbeInterval = 10 * time.Second

func newHealthServer() *health.Server {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(GRPCServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return hs
}

// updateHealth reports the predictor as serving while the store answers
// pings and the model is ready.
func (a *app) updateHealth(ctx context.Context, hs *health.Server) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	status := healthpb.HealthCheckResponse_SERVING
	if err := a.db.Ping(pingCtx); err != nil || !a.predictor.Info().ModelReady {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	hs.SetServingStatus(GRPCServiceName, status)
}

func startGRPCServer(ctx context.Context, lis net.Listener, a *app) func() {
	srv := grpc.NewServer()
	hs := newHealthServer()
	healthpb.RegisterHealthServer(srv, hs)
	a.updateHealth(ctx, hs)

	probeCtx, stopProbe := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(healthProbeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-probeCtx.Done():
				return
			case <-ticker.C:
				a.updateHealth(probeCtx, hs)
			}
		}
	}()
	go func() {
		slog.Info("grpc health server started", "addr", lis.Addr().String(), "service", GRPCServiceName)
		if err := srv.Serve(lis); err != nil {
			slog.Error("grpc serve failed", "error", err)
		}
	}()

	return func() {
		stopProbe()
		hs.Shutdown()
		srv.GracefulStop()
	}
}
