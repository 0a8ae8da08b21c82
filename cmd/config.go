package cmd

// Config carries the process-level settings read from the environment.
// NotifierKind selects the change-notification transport: "hub" keeps
// fan-out in process, "redis" bridges it over Redis pub/sub so multiple
// processes share one stream.
type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	NotifierKind  string
	RedisAddr     string
	ReconcileCron string
}
