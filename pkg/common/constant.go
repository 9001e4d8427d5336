package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyMTDBType string = "MT_DB_TYPE"
	EnvKeyMTDbPath string = "MT_DB_PATH"
	EnvKeyMTDbDSN  string = "MT_DB_DSN"

	EnvKeyMTHttpHostPort string = "MT_HTTP_HOST_PORT"
	EnvKeyMTGrpcHostPort string = "MT_GRPC_HOST_PORT"

	EnvKeyMTSessionSecret string = "MT_SESSION_SECRET"
	EnvKeyMTSessionTTL    string = "MT_SESSION_TTL"

	EnvKeyMTDefaultRate  string = "MT_DEFAULT_RATE"
	EnvKeyMTDefaultBurst string = "MT_DEFAULT_BURST"

	EnvKeyMTLogDir string = "MT_LOG_DIR"

	LoggerNameTracker       string = "tracker"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameSeed          string = "seed"
	LoggerFieldCategory     string = "category"

	LoggerCategoryLog          string = "maintenance_log"
	LoggerCategoryWorkOrder    string = "work_order"
	LoggerCategoryNotification string = "notification"
	LoggerCategoryStats        string = "stats"
	LoggerCategoryCompany      string = "company"
	LoggerCategoryUser         string = "user"
)
