package main

import (
	"context"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"RocketCart/internal/cart"
	"RocketCart/pkg/kit"
)

func main() {
	service := "cart"

	cfg, err := cart.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := kit.NewLogger(service, cfg.Debug)
	defer func() { _ = log.Sync() }()

	var snap cart.Snapshot
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		snap = cart.NewRedisSnapshot(rdb)
		log.Info("snapshot backend: redis", zap.String("addr", cfg.RedisAddr))
	} else {
		snap = cart.NewFileSnapshot(cfg.SnapshotFile)
		log.Info("snapshot backend: file", zap.String("path", cfg.SnapshotFile))
	}

	registry := prometheus.NewRegistry()

	store, err := cart.NewStore(context.Background(), cart.StoreDeps{
		Snapshot: snap,
		Lookup:   cart.NewStockClient(cfg.StockURL),
		Notifier: &cart.LogNotifier{Log: log},
		Log:      log,
		Metrics:  cart.NewMetrics(registry),
	})
	if err != nil {
		log.Fatal("init cart store", zap.Error(err))
	}

	s := &cart.Server{Cart: store, Log: log}

	h := cart.NewHandler(s, cart.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       registry,
		MetricsEnabled: cfg.MetricsToken != "",
		MetricsToken:   cfg.MetricsToken,
	})

	if err := kit.RunHTTPServer(cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
