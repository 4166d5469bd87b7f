package config

const (
	EnvPrefix = "pharmacare"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv    = "PHARMACARE_APP_ENV"
	EnvPort      = "PHARMACARE_APP_PORT"
	EnvDBDSN     = "PHARMACARE_DB_DSN"
	EnvDBHost    = "PHARMACARE_DB_HOST"
	EnvDBUser    = "PHARMACARE_DB_USER"
	EnvDBName    = "PHARMACARE_DB_NAME"
	EnvRedisURL  = "PHARMACARE_REDIS_URL"
	EnvJWTSecret = "PHARMACARE_JWT_SECRET"
	EnvJWTIssuer = "PHARMACARE_JWT_ISSUER"
	EnvJWTExpiry = "PHARMACARE_JWT_EXPIRATION_MINUTES"

	EnvDeliveredPolicy = "PHARMACARE_PRESCRIPTION_DELIVERED_POLICY"

	DeliveredPolicyArchive = "archive"
	DeliveredPolicyDelete  = "delete"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
