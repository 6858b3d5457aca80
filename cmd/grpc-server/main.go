package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"google.golang.org/grpc"

	"elementhub/internal/elements"
	"elementhub/internal/grpcserver"
	"elementhub/pkg/logger"
	"elementhub/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "toml config file (default $ELEMENTHUB_CONFIG)")
	flag.Parse()

	_ = logger.Initialize(false, false)
	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		logger.Logger.Fatalw("load config", logger.FieldError, err)
	}
	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Debug); err != nil {
		logger.Logger.Fatalw("init logger", logger.FieldError, err)
	}
	defer logger.Sync()
	log := logger.Component("grpc")

	gs, listener, source, err := start(context.Background(), cfg)
	if err != nil {
		log.Fatalw("grpc startup", logger.FieldAddress, cfg.GRPC.Addr, logger.FieldError, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Infow("shutdown signal received", "signal", sig.String())
		gs.GracefulStop()
	}()

	log.Infow("grpc server listening", logger.FieldAddress, listener.Addr().String(), logger.FieldSource, source)
	if err := gs.Serve(listener); err != nil {
		log.Fatalw("grpc server stopped", logger.FieldError, err)
	}
}

// start loads the catalog, builds the server and binds cfg.GRPC.Addr.
func start(ctx context.Context, cfg utils.Config) (*grpc.Server, net.Listener, string, error) {
	cat, source, err := elements.LoadCatalog(ctx, cfg.DB)
	if err != nil {
		return nil, nil, "", err
	}
	svc, err := elements.NewService(cat, elements.Options{Cutoff: cfg.Table.Cutoff, CacheSize: cfg.Table.CacheSize})
	if err != nil {
		return nil, nil, "", err
	}
	listener, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return nil, nil, "", errors.Wrapf(err, "listen %s", cfg.GRPC.Addr)
	}
	return grpcserver.New(svc), listener, source, nil
}
