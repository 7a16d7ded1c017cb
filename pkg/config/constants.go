package config

// EnvPrefix namespaces every environment variable consumed by this service.
const EnvPrefix = "ESTRIE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "ESTRIE_DB_DSN"
	EnvDBHost = "ESTRIE_DB_HOST"
	EnvDBUser = "ESTRIE_DB_USER"
	EnvDBName = "ESTRIE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
