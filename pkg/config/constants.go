package config

const (
	EnvPrefix = "INKWELL"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "INKWELL_APP_ENV"
	EnvPort     = "INKWELL_APP_PORT"
	EnvDBDSN    = "INKWELL_DB_DSN"
	EnvDBHost   = "INKWELL_DB_HOST"
	EnvDBUser   = "INKWELL_DB_USER"
	EnvDBName   = "INKWELL_DB_NAME"
	EnvRedisURL = "INKWELL_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
