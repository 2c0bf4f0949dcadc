package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

type CacheDriver string

const (
	CacheDriverLRU   CacheDriver = "lru"
	CacheDriverRedis CacheDriver = "redis"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version   string      `env:"APP_VERSION" envDefault:"local"`
		Env       Environment `env:"APP_ENV" envDefault:"local"`
		Timezone  string      `env:"APP_TIMEZONE" envDefault:"UTC"`
		LogFormat LogFormat   `env:"APP_LOG_FORMAT" envDefault:"console"`
		LogLevel  string      `env:"APP_LOG_LEVEL" envDefault:"debug"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"availability:availability"`
		BasicClients       []ConfigBasicClient
	}

	RateLimit struct {
		Enabled    bool    `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
		RPS        float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
		Burst      int     `env:"RATE_LIMIT_BURST" envDefault:"40"`
		MaxClients int     `env:"RATE_LIMIT_MAX_CLIENTS" envDefault:"10000"`
	}

	Postgres struct {
		URL            string        `env:"POSTGRES_URL"`
		MaxConns       int32         `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
		ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" envDefault:"10s"`
	}

	RabbitMq struct {
		Enabled     bool   `env:"RABBITMQ_ENABLED"`
		AmqpUri     string `env:"RABBITMQ_AMQP_URI"`
		QueueConfig struct {
			Exchange  string `env:"RABBITMQ_EXCHANGE" envDefault:"availability"`
			QueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"availability-engine.cache"`
			QueueBind string `env:"RABBITMQ_QUEUE_BIND" envDefault:"*.availability-engine-svc.#"`
		}
	}

	Cache struct {
		Enabled       bool          `env:"CACHE_ENABLED"`
		Driver        CacheDriver   `env:"CACHE_DRIVER" envDefault:"lru"`
		SchedulesSize int           `env:"CACHE_SCHEDULES_SIZE" envDefault:"1000"`
		TTL           time.Duration `env:"CACHE_TTL" envDefault:"30m"`
		RedisAddr     string        `env:"CACHE_REDIS_ADDR" envDefault:"localhost:6379"`
		RedisPassword string        `env:"CACHE_REDIS_PASSWORD"`
		RedisDB       int           `env:"CACHE_REDIS_DB" envDefault:"0"`
		RedisPrefix   string        `env:"CACHE_REDIS_PREFIX" envDefault:"availability"`
	}

	Engine struct {
		SlotIntervalMinutes        int    `env:"ENGINE_SLOT_INTERVAL_MINUTES" envDefault:"30"`
		AppointmentDurationMinutes int    `env:"ENGINE_APPOINTMENT_DURATION_MINUTES" envDefault:"60"`
		MinAdvanceHours            int    `env:"ENGINE_MIN_ADVANCE_HOURS" envDefault:"1"`
		PastSlotBufferMinutes      int    `env:"ENGINE_PAST_SLOT_BUFFER_MINUTES" envDefault:"30"`
		DefaultArtistTimezone      string `env:"ENGINE_DEFAULT_ARTIST_TIMEZONE" envDefault:"America/New_York"`
		TimezoneConverter          string `env:"ENGINE_TIMEZONE_CONVERTER" envDefault:"probe"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))
	cfg.App.LogFormat = LogFormat(strings.ToLower(string(cfg.App.LogFormat)))
	cfg.Cache.Driver = CacheDriver(strings.ToLower(string(cfg.Cache.Driver)))

	cfg.Auth.BasicClients = parseBasicClients(cfg.Auth.BasicClientsString)

	return cfg, nil
}

func parseBasicClients(raw string) []ConfigBasicClient {
	clients := []ConfigBasicClient{}
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) == 2 && parts[0] != "" {
			clients = append(clients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}
	return clients
}

// Rules собирает бизнес-константы движка из конфигурации
func (c *Config) Rules() domain.Rules {
	rules := domain.DefaultRules()

	if c.Engine.SlotIntervalMinutes > 0 {
		rules.SlotInterval = time.Duration(c.Engine.SlotIntervalMinutes) * time.Minute
	}
	if c.Engine.AppointmentDurationMinutes > 0 {
		rules.AppointmentDuration = time.Duration(c.Engine.AppointmentDurationMinutes) * time.Minute
	}
	if c.Engine.MinAdvanceHours >= 0 {
		rules.MinAdvance = time.Duration(c.Engine.MinAdvanceHours) * time.Hour
	}
	if c.Engine.PastSlotBufferMinutes >= 0 {
		rules.PastSlotBuffer = time.Duration(c.Engine.PastSlotBufferMinutes) * time.Minute
	}
	if c.Engine.DefaultArtistTimezone != "" {
		rules.DefaultTimezone = c.Engine.DefaultArtistTimezone
	}

	return rules
}

// MinLogLevel уровень логирования, неизвестное значение считается DEBUG
func (c *Config) MinLogLevel() out.LogLevel {
	switch level := out.LogLevel(strings.ToUpper(c.App.LogLevel)); level {
	case out.LogLevelDebug, out.LogLevelInfo, out.LogLevelWarn, out.LogLevelError:
		return level
	default:
		return out.LogLevelDebug
	}
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
