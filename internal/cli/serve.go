package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/config"
	"github.com/adyen/shopcheck/internal/database"
	"github.com/adyen/shopcheck/internal/handlers"
	"github.com/adyen/shopcheck/internal/repository"
	"github.com/adyen/shopcheck/internal/services"
)

// ServerDependencies holds all dependencies needed for the server
type ServerDependencies struct {
	ServerConfig config.ServerConfig
	Storefront   http.Handler
	Logger       *zap.Logger
}

// NewServerDependencies builds the storefront. Orders go to Postgres when
// useDB is set and to memory otherwise; the returned func releases the database.
func NewServerDependencies(logger *zap.Logger, useDB bool) (ServerDependencies, func() error, error) {
	cleanup := func() error { return nil }

	var orders services.OrderRepository = repository.NewMemoryOrderRepository()
	if useDB {
		if err := database.Connect(); err != nil {
			return ServerDependencies{}, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.RunMigrations(); err != nil {
			database.Close()
			return ServerDependencies{}, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		orders = repository.NewOrderRepository()
		cleanup = database.Close
		logger.Info("Storing storefront orders in postgres")
	}

	storefront, err := handlers.NewDefaultStorefront(logger.Named("storefront"), orders)
	if err != nil {
		cleanup()
		return ServerDependencies{}, nil, err
	}

	return ServerDependencies{
		ServerConfig: config.LoadServerConfig(),
		Storefront:   storefront,
		Logger:       logger,
	}, cleanup, nil
}

// RunServe starts the storefront server and blocks until a shutdown signal
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil, deps.logger())
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	logger := deps.logger()

	mux := http.NewServeMux()
	mux.Handle("/", deps.Storefront)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", listener.Addr().String()))
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", zap.Error(err))
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// If shutdown is nil, a channel is created and registered with signal.Notify.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal, logger *zap.Logger) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second, logger)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration, logger *zap.Logger) error {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	logger.Info("Shutting down server", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// Shutdown timed out; drop the remaining connections
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	logger.Info("Server stopped")
	return nil
}

func (d ServerDependencies) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
