package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"RocketCart/internal/stock"
	"RocketCart/pkg/kit"
)

func main() {
	service := "stock"

	cfg, err := stock.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := kit.NewLogger(service, cfg.Debug)
	defer func() { _ = log.Sync() }()

	var store stock.Store
	if cfg.DSN != "" {
		db, err := sql.Open("pgx", cfg.DSN)
		if err != nil {
			log.Fatal("open database", zap.Error(err))
		}
		defer func() { _ = db.Close() }()

		store = stock.NewPostgresStore(db)
		log.Info("catalog backend: postgres")
	} else {
		store = stock.NewMemStore()
		log.Info("catalog backend: memory seed")
	}

	s := &stock.Server{Store: store, Log: log}

	h := stock.NewHandler(s, stock.HTTPDeps{
		Log:               log,
		Service:           service,
		Registry:          prometheus.NewRegistry(),
		MetricsEnabled:    cfg.MetricsToken != "",
		MetricsToken:      cfg.MetricsToken,
		RateLimit:         cfg.RateLimit,
		RateWindowSeconds: cfg.RateWindow,
	})

	if err := kit.RunHTTPServer(cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
