package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Telegram  TelegramConfig
	HTTP      HTTPConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	DB        DBConfig
	Cart      CartConfig
	Shop      ShopConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TGSHOP_APP_ENV" default:"development"`
	Port         string `envconfig:"TGSHOP_APP_PORT" default:"3001"`
	LogLevel     string `envconfig:"TGSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TGSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev) || strings.EqualFold(a.Env, "dev")
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "prod")
}

// TelegramConfig holds the bot credentials used by the order relay. The token
// is only checked when the relay starts so that shopctl can share the loader.
type TelegramConfig struct {
	BotToken    string        `envconfig:"TGSHOP_TELEGRAM_BOT_TOKEN"`
	AdminChatID string        `envconfig:"TGSHOP_TELEGRAM_ADMIN_CHAT_ID"`
	BaseURL     string        `envconfig:"TGSHOP_TELEGRAM_BASE_URL" default:"https://api.telegram.org"`
	ParseMode   string        `envconfig:"TGSHOP_TELEGRAM_PARSE_MODE" default:"Markdown"`
	Timeout     time.Duration `envconfig:"TGSHOP_TELEGRAM_TIMEOUT" default:"10s"`
}

// Validate reports the settings the relay cannot run without.
func (t TelegramConfig) Validate() error {
	missing := []string{}
	if strings.TrimSpace(t.BotToken) == "" {
		missing = append(missing, EnvTelegramBotToken)
	}
	if strings.TrimSpace(t.AdminChatID) == "" {
		missing = append(missing, EnvTelegramAdminChatID)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing telegram settings: %s", strings.Join(missing, ", "))
	}
	if _, err := t.AdminChat(); err != nil {
		return err
	}
	return nil
}

// AdminChat parses the admin chat id. Group chats use negative ids.
func (t TelegramConfig) AdminChat() (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(t.AdminChatID), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%s must be a non-zero integer", EnvTelegramAdminChatID)
	}
	return id, nil
}

type HTTPConfig struct {
	AllowedOrigins []string      `envconfig:"TGSHOP_CORS_ALLOWED_ORIGINS" default:"*"`
	ReadTimeout    time.Duration `envconfig:"TGSHOP_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout   time.Duration `envconfig:"TGSHOP_HTTP_WRITE_TIMEOUT" default:"30s"`
}

type RateLimitConfig struct {
	Window     time.Duration `envconfig:"TGSHOP_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit    int           `envconfig:"TGSHOP_RATE_LIMIT_IP_LIMIT" default:"20"`
	PhoneLimit int           `envconfig:"TGSHOP_RATE_LIMIT_PHONE_LIMIT" default:"5"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TGSHOP_REDIS_URL"`
	Address      string        `envconfig:"TGSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"TGSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"TGSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TGSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TGSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TGSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TGSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TGSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type DBConfig struct {
	Driver     string `envconfig:"TGSHOP_DB_DRIVER" default:"sqlite"`
	DSN        string `envconfig:"TGSHOP_DB_DSN"`
	SQLitePath string `envconfig:"TGSHOP_DB_SQLITE_PATH" default:"tgshop.db"`

	MaxOpenConns    int           `envconfig:"TGSHOP_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"TGSHOP_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"TGSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
}

func (db *DBConfig) validate() error {
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
	switch db.Driver {
	case DBDriverSQLite:
		if strings.TrimSpace(db.SQLitePath) == "" {
			return fmt.Errorf("%s is required for the sqlite driver", EnvDBSQLitePath)
		}
	case DBDriverPostgres:
		if strings.TrimSpace(db.DSN) == "" {
			return fmt.Errorf("%s is required for the postgres driver", EnvDBDSN)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, db.Driver)
	}
	return nil
}

type CartConfig struct {
	Storage string `envconfig:"TGSHOP_CART_STORAGE" default:"db"`
	Key     string `envconfig:"TGSHOP_CART_KEY" default:"cart"`
}

func (c *CartConfig) validate() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case CartStorageMemory, CartStorageRedis, CartStorageDB:
	default:
		return fmt.Errorf("unsupported %s %q", EnvCartStorage, c.Storage)
	}
	if strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("%s must not be blank", EnvCartKey)
	}
	return nil
}

// ShopConfig points the terminal client at the product source and the relay.
type ShopConfig struct {
	CatalogURL string        `envconfig:"TGSHOP_SHOP_CATALOG_URL"`
	RelayURL   string        `envconfig:"TGSHOP_SHOP_RELAY_URL" default:"http://localhost:3001"`
	Timeout    time.Duration `envconfig:"TGSHOP_SHOP_TIMEOUT" default:"15s"`
}
