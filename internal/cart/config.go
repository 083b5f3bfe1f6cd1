package cart

import "github.com/kelseyhightower/envconfig"

// Config is the cart daemon configuration, read from CART_* env vars.
// When RedisAddr is set the snapshot lives in Redis, otherwise in
// SnapshotFile on disk.
type Config struct {
	Addr         string `default:":8081" envconfig:"ADDR"`
	StockURL     string `default:"http://localhost:8082" envconfig:"STOCK_URL"`
	SnapshotFile string `default:"cart.json" envconfig:"SNAPSHOT_FILE"`
	RedisAddr    string `envconfig:"REDIS_ADDR"`
	MetricsToken string `envconfig:"METRICS_TOKEN"`
	Debug        bool   `default:"false" envconfig:"DEBUG"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("cart", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
