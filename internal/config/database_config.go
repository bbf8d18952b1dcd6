package config

type Database struct{}

var _ DatabaseConfig = Database{}

// GetDatabaseURL returns the Postgres DSN. Empty means in-memory repositories.
func (Database) GetDatabaseURL() string {
	return GetEnv("DATABASE_URL", "")
}

func (Database) GetMaxOpenConns() int {
	return GetEnvInt("DB_MAX_OPEN_CONNS", 10)
}

func (Database) GetRunMigrations() bool {
	return GetEnvBool("RUN_MIGRATIONS", true)
}
