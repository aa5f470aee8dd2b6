package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"voxelforge.ai/internal/config"
	"voxelforge.ai/internal/engine"
	"voxelforge.ai/internal/gateway"
	"voxelforge.ai/internal/persistence/buildlog"
	"voxelforge.ai/internal/transport/ws"
	"voxelforge.ai/internal/worldapi"
)

func main() {
	var (
		addr       = flag.String("addr", "", "websocket listen address (overrides config)")
		configPath = flag.String("config", "./configs/config.yaml", "config file path")
		worldURL   = flag.String("world_url", "", "world interface base url (overrides config)")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite build log")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load config: %v", err)
		}
		logger.Printf("config not found (%s); using defaults", *configPath)
		cfg = config.Default()
	}
	if strings.TrimSpace(*addr) != "" {
		cfg.ListenAddr = *addr
	}
	if strings.TrimSpace(*worldURL) != "" {
		cfg.World.BaseURL = *worldURL
	}

	world, err := worldapi.New(cfg.World.BaseURL, cfg.World.Timeout(), cfg.World.BatchSize)
	if err != nil {
		logger.Fatalf("world client: %v", err)
	}
	// Probe the world interface once at startup; requests still work if
	// it comes up later.
	baCtx, baCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if ba, err := world.BuildArea(baCtx); err != nil {
		logger.Printf("build area unavailable: %v", err)
	} else {
		logger.Printf("build area %v..%v", ba.Min, ba.Max)
	}
	baCancel()

	var blog *buildlog.Log
	if !*disableDB && cfg.Store.BuildLogPath != "" {
		blogPath := cfg.Store.BuildLogPath
		if !filepath.IsAbs(blogPath) {
			blogPath = filepath.Join(*dataDir, blogPath)
		}
		blog, err = buildlog.Open(blogPath)
		if err != nil {
			logger.Fatalf("open build log: %v", err)
		}
		defer blog.Close()
	}

	recordDir := cfg.Store.RecordDir
	if recordDir != "" && !filepath.IsAbs(recordDir) {
		recordDir = filepath.Join(*dataDir, recordDir)
	}

	eng := engine.New(engine.Limits{
		MaxRegionVolume:  cfg.Limits.MaxRegionVolume,
		MaxStructureSpan: cfg.Limits.MaxStructureSpan,
	}, logger)
	svc := gateway.New(eng, world, blog, recordDir, logger)

	ctx, cancel := signalContext()
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/ws", ws.NewServer(svc, logger).Handler())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s (world=%s)", cfg.ListenAddr, cfg.World.BaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
