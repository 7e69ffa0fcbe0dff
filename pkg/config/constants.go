package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "STOCKROOM"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "STOCKROOM_APP_ENV"
	EnvPort     = "STOCKROOM_APP_PORT"
	EnvLogLevel = "STOCKROOM_LOG_LEVEL"

	EnvDBDSN      = "STOCKROOM_DB_DSN"
	EnvDBDriver   = "STOCKROOM_DB_DRIVER"
	EnvDBHost     = "STOCKROOM_DB_HOST"
	EnvDBPort     = "STOCKROOM_DB_PORT"
	EnvDBUser     = "STOCKROOM_DB_USER"
	EnvDBPassword = "STOCKROOM_DB_PASSWORD"
	EnvDBName     = "STOCKROOM_DB_NAME"
	EnvDBSSLMode  = "STOCKROOM_DB_SSLMODE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
