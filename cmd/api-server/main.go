package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"

	"elementhub/internal/elements"
	"elementhub/internal/live"
	"elementhub/internal/requestlog"
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
	log := logger.Component("api")

	cat, source, err := elements.LoadCatalog(context.Background(), cfg.DB)
	if err != nil {
		log.Fatalw("load catalog", logger.FieldError, err)
	}
	svc, err := elements.NewService(cat, elements.Options{Cutoff: cfg.Table.Cutoff, CacheSize: cfg.Table.CacheSize})
	if err != nil {
		log.Fatalw("build service", logger.FieldError, err)
	}
	log.Infow("catalog loaded", logger.FieldSource, source, logger.FieldCount, cat.Len())

	if !cfg.Log.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	hub := live.NewHub(svc)
	router := newRouter(svc, hub, source, cfg)

	// Bind TCP first so a port clash shows before HTTP starts.
	tcpSrv := live.NewServer(cfg.Live.TCPAddr, hub, cfg.Live.WriteTimeout)
	if err := tcpSrv.Listen(); err != nil {
		log.Fatalw("tcp listen", logger.FieldError, err)
	}

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infow("http api listening", logger.FieldAddress, cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Infow("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		log.Errorw("server error", logger.FieldError, err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warnw("http shutdown", logger.FieldError, err)
	}
	if err := tcpSrv.Close(); err != nil {
		log.Warnw("tcp shutdown", logger.FieldError, err)
	}

	wg.Wait()
	log.Infow("servers stopped")
}

func newRouter(svc *elements.Service, hub *live.Hub, source string, cfg utils.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestlog.Middleware(logger.Component("http")))
	_ = router.SetTrustedProxies(cfg.HTTP.TrustedProxies)

	router.GET("/ws", live.WSHandler(hub, cfg.Live.WriteTimeout))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "source": source})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		table := svc.Stats()
		code, status := http.StatusOK, "ready"
		if table.Elements == 0 {
			code, status = http.StatusServiceUnavailable, "not_ready"
		}
		c.JSON(code, gin.H{
			"status":        status,
			"source":        source,
			"elements":      table.Elements,
			"placed":        table.Placed,
			"cutoff":        table.Cutoff,
			"cached_tables": table.CachedKeys,
			"tcp_clients":   stats.TCPClients,
			"ws_clients":    stats.WSClients,
		})
	})

	elements.NewHandler(svc).RegisterRoutes(router.Group("/api"))
	return router
}
