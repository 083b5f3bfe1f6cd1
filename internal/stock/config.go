package stock

import "github.com/kelseyhightower/envconfig"

// Config is the stock daemon configuration, read from STOCK_* env vars.
// With an empty DSN the daemon serves the seeded in-memory catalog.
type Config struct {
	Addr         string `default:":8082" envconfig:"ADDR"`
	DSN          string `envconfig:"DSN"`
	MetricsToken string `envconfig:"METRICS_TOKEN"`
	RateLimit    int    `default:"0" envconfig:"RATE_LIMIT"`
	RateWindow   int    `default:"1" envconfig:"RATE_WINDOW_SECONDS"`
	Debug        bool   `default:"false" envconfig:"DEBUG"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("stock", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
