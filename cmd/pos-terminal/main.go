package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	catalogsqlite "github.com/jcmexdev/pos-checkout/internal/catalog/sqlite"
	"github.com/jcmexdev/pos-checkout/internal/checkout/customer"
	"github.com/jcmexdev/pos-checkout/internal/checkout/order"
	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
	directoryv1 "github.com/jcmexdev/pos-checkout/internal/customer-directory/api/directoryv1"
	"github.com/jcmexdev/pos-checkout/internal/delivery"
	"github.com/jcmexdev/pos-checkout/internal/pkg/cache"
	"github.com/jcmexdev/pos-checkout/internal/pkg/config"
	"github.com/jcmexdev/pos-checkout/internal/pkg/interceptors"
	"github.com/jcmexdev/pos-checkout/internal/pkg/sqlitedb"
	"github.com/jcmexdev/pos-checkout/internal/pkg/telemetry"
	"github.com/jcmexdev/pos-checkout/internal/pos-terminal/app"
	"github.com/jcmexdev/pos-checkout/internal/pos-terminal/infra/adapters/directory"
	"github.com/jcmexdev/pos-checkout/internal/pos-terminal/infra/adapters/holds"
	"github.com/jcmexdev/pos-checkout/internal/pos-terminal/infra/adapters/receipts"
	"github.com/jcmexdev/pos-checkout/internal/pos-terminal/infra/httpx"
	"github.com/jcmexdev/pos-checkout/internal/receiptlog"
	receiptsqlite "github.com/jcmexdev/pos-checkout/internal/receiptlog/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := telemetry.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("pos terminal stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	shutdown, err := telemetry.SetupTracer(ctx, cfg.ServiceName, telemetry.TracerOptions{
		Endpoint:    cfg.OTLP.Endpoint,
		Environment: cfg.OTLP.Environment,
		SampleRatio: cfg.OTLP.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("initialise tracer: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Error("tracer shutdown error", "error", err)
		}
	}()

	if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := sqlitedb.Open(cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer db.Close()

	products := catalogsqlite.New(db)
	journal := receiptlog.NewJournal(receiptsqlite.New(db))

	var dir ports.Directory = customer.ReferenceDirectory()
	if cfg.DirectoryAddr != "" {
		conn, err := grpc.NewClient(cfg.DirectoryAddr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
			grpc.WithUnaryInterceptor(interceptors.PropagateIDsClientInterceptor()),
		)
		if err != nil {
			return fmt.Errorf("connect customer directory %s: %w", cfg.DirectoryAddr, err)
		}
		defer conn.Close()
		dir = directory.NewGRPCDirectory(directoryv1.NewCustomerDirectoryClient(conn), cfg.DirectoryTimeout)
	}

	var (
		holdArchive   ports.HoldArchive = holds.NewMemoryArchive()
		customerCache httpx.CustomerCache
	)
	if cfg.RedisAddr != "" {
		rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		cached := directory.NewCachedDirectory(dir, cache.NewRedisCache(rdb, "customer"), cfg.CustomerTTL)
		dir, customerCache = cached, cached
		holdArchive = holds.NewRedisArchive(cache.NewRedisCache(rdb, "pos"), cfg.HoldTTL)
	}

	sinks := []delivery.Sink{journal}
	if len(cfg.KafkaBrokers) > 0 {
		publisher := receipts.NewPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		defer publisher.Close()
		sinks = append(sinks, publisher)
	}
	if cfg.PrintReceipts {
		sinks = append(sinks, receipts.NewPrinter(os.Stdout, receipts.Header{
			Name:    cfg.Business.Name,
			Address: cfg.Business.Address,
			Phone:   cfg.Business.Phone,
			Footer:  cfg.Business.Footer,
		}))
	}
	dispatcher := delivery.NewDispatcher(sinks...)

	registry := app.NewRegistry(app.NewSessionFactory(cfg.TaxRate, order.Deps{
		Catalog:   products,
		Directory: dir,
		Sink:      dispatcher,
		Holds:     holdArchive,
		Logger:    logger,
	}))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpx.NewRouter(httpx.NewHandler(registry, httpx.Deps{
			Products:  products,
			Receipts:  journal,
			Customers: customerCache,
		})),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("pos terminal running",
			"addr", cfg.HTTPAddr,
			"tax_rate", cfg.TaxRate.String(),
			"sinks", dispatcher.Sinks(),
			"directory", cfg.DirectoryAddr,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
