package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env      string `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTP     `yaml:"http"`
	Storage  `yaml:"storage"`
	Redis    `yaml:"redis"`
	Kafka    `yaml:"kafka"`
	Auth     `yaml:"auth"`
	Checkout `yaml:"checkout"`
}

type HTTP struct {
	Port               string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	BasePath           string        `yaml:"base_path" env:"HTTP_BASE_PATH" env-default:"/api/v1"`
	RequestTimeout     time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT" env-default:"30s"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxRequestBodySize int64         `yaml:"max_request_body_size" env:"HTTP_MAX_REQUEST_BODY_SIZE" env-default:"1048576"`
	AllowedOrigins     []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-default:"*"`
}

type Storage struct {
	Driver            string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	Postgres          `yaml:"postgres"`
	SQLitePath        string        `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"./data/storefront.db"`
	MongoURI          string        `yaml:"mongo_uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDatabase     string        `yaml:"mongo_database" env:"MONGO_DATABASE" env-default:"storefront"`
	MongoTransactions bool          `yaml:"mongo_transactions" env:"MONGO_TRANSACTIONS" env-default:"false"`
	ConnectAttempts   uint          `yaml:"connect_attempts" env:"STORAGE_CONNECT_ATTEMPTS" env-default:"5"`
	ConnectDelay      time.Duration `yaml:"connect_delay" env:"STORAGE_CONNECT_DELAY" env-default:"1s"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER" env-default:"storefront"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DBName   string `yaml:"db_name" env:"POSTGRES_DB" env-default:"storefront"`
}

// Redis caching is disabled when Addr is empty.
type Redis struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"15m"`
}

// Kafka publishing and the cache invalidator are disabled when Brokers is empty.
type Kafka struct {
	Brokers      []string      `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic        string        `yaml:"topic" env:"KAFKA_TOPIC" env-default:"purchase-completed"`
	GroupID      string        `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"storefront-cache"`
	PollInterval time.Duration `yaml:"poll_interval" env:"KAFKA_POLL_INTERVAL" env-default:"2s"`
	BatchSize    int           `yaml:"batch_size" env:"KAFKA_BATCH_SIZE" env-default:"50"`
}

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"24h"`
}

type Checkout struct {
	PaymentDelay time.Duration `yaml:"payment_delay" env:"CHECKOUT_PAYMENT_DELAY" env-default:"1500ms"`
	Currency     string        `yaml:"currency" env:"CHECKOUT_CURRENCY" env-default:"IDR"`
}

// Load reads the YAML file at CONFIG_PATH when set, with environment
// variables taking precedence, otherwise the environment alone.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}
	switch c.Storage.Driver {
	case "memory", "postgres", "sqlite", "mongo":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
