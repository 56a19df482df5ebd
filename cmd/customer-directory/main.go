package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"github.com/jcmexdev/pos-checkout/internal/checkout/customer"
	directoryv1 "github.com/jcmexdev/pos-checkout/internal/customer-directory/api/directoryv1"
	"github.com/jcmexdev/pos-checkout/internal/customer-directory/app"
	"github.com/jcmexdev/pos-checkout/internal/pkg/config"
	"github.com/jcmexdev/pos-checkout/internal/pkg/interceptors"
	"github.com/jcmexdev/pos-checkout/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.LoadService("customer-directory")
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	telemetry.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, cfg.ServiceName, telemetry.TracerOptions{
		Endpoint:    cfg.OTLP.Endpoint,
		Environment: cfg.OTLP.Environment,
		SampleRatio: cfg.OTLP.SampleRatio,
	})
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		slog.Error("failed to listen", "addr", cfg.GRPCAddr, "error", err)
		os.Exit(1)
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnaryInterceptor(interceptors.TraceServerInterceptor()),
	)
	dirSrv := app.NewDirectoryServer(customer.ReferenceDirectory())
	for phone, name := range cfg.Customers {
		dirSrv.Register(phone, name)
	}
	directoryv1.RegisterCustomerDirectoryServer(grpcServer, dirSrv)

	go func() {
		<-ctx.Done()
		slog.Info("customer directory shutting down")
		grpcServer.GracefulStop()
	}()

	slog.Info("customer directory gRPC running", "addr", cfg.GRPCAddr, "customers", dirSrv.Len())
	if err := grpcServer.Serve(lis); err != nil {
		slog.Error("failed to serve", "error", err)
		os.Exit(1)
	}
}
