package config

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv     = "FRAMECRAFT_APP_ENV"
	EnvPort       = "FRAMECRAFT_APP_PORT"
	EnvDBDSN      = "FRAMECRAFT_DB_DSN"
	EnvDBHost     = "FRAMECRAFT_DB_HOST"
	EnvDBUser     = "FRAMECRAFT_DB_USER"
	EnvDBName     = "FRAMECRAFT_DB_NAME"
	EnvRedisURL   = "FRAMECRAFT_REDIS_URL"
	EnvJWTSecret  = "FRAMECRAFT_JWT_SECRET"
	EnvJWTIssuer  = "FRAMECRAFT_JWT_ISSUER"
	EnvJWTExpMins = "FRAMECRAFT_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
