package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const devSessionSecret = "dev-secret-change-in-production"

type Config struct {
	Env      string
	HTTPAddr string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	RedisHost string
	RedisPort string

	KafkaBroker        string
	KafkaOrderTopic    string
	KafkaConsumerGroup string

	SessionSecret []byte
	SessionTTL    time.Duration
	CookieSecure  bool

	AdminEmail    string
	AdminPassword string

	PublicBaseURL      string
	POSSystemID        string
	PhoneRegion        string
	CORSAllowedOrigins []string

	KitchenSvcURL   string
	AnalyticsSvcURL string
	FrontendDir     string

	AnalyticsCacheTTL time.Duration
}

// Load reads the process environment, after an optional .env file, into a
// Config. defaultAddr is the listen address used when HTTP_ADDR is unset.
func Load(defaultAddr string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env file", "error", err)
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", defaultAddr),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBName:             getEnv("DB_NAME", "kitchen"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		RedisHost:          os.Getenv("REDIS_HOST"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		KafkaOrderTopic:    getEnv("KAFKA_ORDER_TOPIC", "kitchen.orders"),
		KafkaConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "analytics-svc"),
		CookieSecure:       getEnv("COOKIE_SECURE", "false") == "true",
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		PublicBaseURL:      strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		POSSystemID:        os.Getenv("POS_SYSTEM_ID"),
		PhoneRegion:        strings.ToUpper(getEnv("PHONE_REGION", "IN")),
		KitchenSvcURL:      getEnv("KITCHEN_SVC_URL", "http://localhost:8081"),
		AnalyticsSvcURL:    getEnv("ANALYTICS_SVC_URL", "http://localhost:8083"),
		FrontendDir:        getEnv("FRONTEND_DIR", "./frontend"),
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "168h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL %q", os.Getenv("SESSION_TTL"))
	}
	cfg.SessionTTL = ttl

	cacheTTL, err := time.ParseDuration(getEnv("ANALYTICS_CACHE_TTL", "0s"))
	if err != nil || cacheTTL < 0 {
		return nil, fmt.Errorf("invalid ANALYTICS_CACHE_TTL %q", os.Getenv("ANALYTICS_CACHE_TTL"))
	}
	cfg.AnalyticsCacheTTL = cacheTTL

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("SESSION_SECRET environment variable is required in production")
		}
		slog.Warn("SESSION_SECRET not set, using the development default")
		secret = devSessionSecret
	}
	cfg.SessionSecret = []byte(secret)

	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if _, err := strconv.Atoi(cfg.DBPort); err != nil {
		return nil, fmt.Errorf("invalid DB_PORT %q", cfg.DBPort)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=" + c.DBSSLMode
}

// SetupLogger installs the process-wide slog logger: JSON in production,
// text otherwise.
func SetupLogger(c *Config) *slog.Logger {
	var handler slog.Handler
	if c.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func MustInitPostgres(c *Config) *sql.DB {
	db, err := sql.Open("postgres", c.PostgresDSN())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	if err = db.Ping(); err != nil {
		slog.Error("failed to ping database", "host", c.DBHost, "error", err)
		os.Exit(1)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

// MustInitRedis returns nil when REDIS_HOST is not configured.
func MustInitRedis(c *Config) *redis.Client {
	if c.RedisHost == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr: c.RedisHost + ":" + c.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		slog.Error("failed to connect to redis", "addr", client.Options().Addr, "error", err)
		os.Exit(1)
	}

	return client
}

// NewKafkaWriter returns nil when KAFKA_BROKER is not configured.
func NewKafkaWriter(c *Config, topic string) *kafka.Writer {
	if c.KafkaBroker == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(c.KafkaBroker, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaReader returns nil when KAFKA_BROKER is not configured.
func NewKafkaReader(c *Config, topic string) *kafka.Reader {
	if c.KafkaBroker == "" {
		return nil
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(c.KafkaBroker, ","),
		Topic:    topic,
		GroupID:  c.KafkaConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
