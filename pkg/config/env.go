package config

// EnvPrefix is the envconfig prefix for all PawMart variables.
const EnvPrefix = "PAWMART"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "PAWMART_DB_DSN"
	EnvDBHost = "PAWMART_DB_HOST"
	EnvDBUser = "PAWMART_DB_USER"
	EnvDBName = "PAWMART_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
