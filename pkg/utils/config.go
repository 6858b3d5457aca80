package utils

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const envPrefix = "ELEMENTHUB"

type Config struct {
	HTTP  HTTPConfig  `mapstructure:"http"`
	Live  LiveConfig  `mapstructure:"live"`
	GRPC  GRPCConfig  `mapstructure:"grpc"`
	DB    DBConfig    `mapstructure:"db"`
	Table TableConfig `mapstructure:"table"`
	Log   LogConfig   `mapstructure:"log"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	TrustedProxies  []string      `mapstructure:"trusted_proxies"`
}

type LiveConfig struct {
	TCPAddr      string        `mapstructure:"tcp_addr"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type GRPCConfig struct {
	Addr string `mapstructure:"addr"`
}

// DBConfig points at a sqlite catalog. An empty Path means the embedded
// fixture is served; CatalogFile, when set, wins over both.
type DBConfig struct {
	Path        string `mapstructure:"path"`
	CatalogFile string `mapstructure:"catalog_file"`
}

type TableConfig struct {
	Cutoff    int `mapstructure:"cutoff"`
	CacheSize int `mapstructure:"cache_size"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.trusted_proxies", []string{"127.0.0.1"})
	v.SetDefault("live.tcp_addr", ":7070")
	v.SetDefault("live.write_timeout", 2*time.Second)
	v.SetDefault("grpc.addr", ":9090")
	v.SetDefault("db.path", "")
	v.SetDefault("db.catalog_file", "")
	v.SetDefault("table.cutoff", 92)
	v.SetDefault("table.cache_size", 64)
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// NewViper returns a viper instance with defaults and ELEMENTHUB_* env
// binding (ELEMENTHUB_HTTP_ADDR overrides http.addr).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// LoadConfig reads defaults, then the toml file at path (or
// $ELEMENTHUB_CONFIG), then the environment.
func LoadConfig(path string) (Config, error) {
	v := NewViper()
	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	if cfg.Table.CacheSize < 0 {
		cfg.Table.CacheSize = 0
	}
	return cfg, nil
}
