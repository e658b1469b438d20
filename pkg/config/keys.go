package config

const (
	EnvPrefix = "TGSHOP"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "TGSHOP_APP_ENV"
	EnvPort     = "TGSHOP_APP_PORT"
	EnvLogLevel = "TGSHOP_LOG_LEVEL"

	EnvTelegramBotToken    = "TGSHOP_TELEGRAM_BOT_TOKEN"
	EnvTelegramAdminChatID = "TGSHOP_TELEGRAM_ADMIN_CHAT_ID"
	EnvTelegramBaseURL     = "TGSHOP_TELEGRAM_BASE_URL"
	EnvTelegramTimeout     = "TGSHOP_TELEGRAM_TIMEOUT"

	EnvCORSOrigins = "TGSHOP_CORS_ALLOWED_ORIGINS"

	EnvRateLimitWindow     = "TGSHOP_RATE_LIMIT_WINDOW"
	EnvRateLimitIPLimit    = "TGSHOP_RATE_LIMIT_IP_LIMIT"
	EnvRateLimitPhoneLimit = "TGSHOP_RATE_LIMIT_PHONE_LIMIT"

	EnvRedisURL  = "TGSHOP_REDIS_URL"
	EnvRedisAddr = "TGSHOP_REDIS_ADDR"

	EnvDBDriver     = "TGSHOP_DB_DRIVER"
	EnvDBDSN        = "TGSHOP_DB_DSN"
	EnvDBSQLitePath = "TGSHOP_DB_SQLITE_PATH"

	EnvCartStorage = "TGSHOP_CART_STORAGE"
	EnvCartKey     = "TGSHOP_CART_KEY"

	EnvShopCatalogURL = "TGSHOP_SHOP_CATALOG_URL"
	EnvShopRelayURL   = "TGSHOP_SHOP_RELAY_URL"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	CartStorageMemory = "memory"
	CartStorageRedis  = "redis"
	CartStorageDB     = "db"
)
