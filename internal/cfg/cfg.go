package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"store-pos/pkg/database"
	"store-pos/pkg/e"
)

type Config struct {
	App     *AppCfg
	Db      *DBCfg
	Session *SessionCfg
	Redis   *RedisCfg
	Admin   *AdminCfg
}

type AppCfg struct {
	Name            string
	Port            string
	CORSOrigins     string
	ShutdownTimeout time.Duration
	Location        *time.Location // "local time" for reports and dashboards
}

type DBCfg struct {
	Driver   string
	DSN      string
	LogLevel string
}

type SessionCfg struct {
	Secret     string
	TTL        time.Duration
	CookieName string
}

type RedisCfg struct {
	Addr        string // empty disables login throttling
	Password    string
	DB          int
	LoginLimit  int
	LoginWindow time.Duration
}

type AdminCfg struct {
	Username string
	Password string
}

// Load reads configuration from the environment. Call godotenv.Load first to pick up a .env file.
func Load() (*Config, error) {
	app, err := loadAppCfg()
	if err != nil {
		return nil, e.Wrap("app config", err)
	}

	session, err := loadSessionCfg()
	if err != nil {
		return nil, e.Wrap("session config", err)
	}

	redis, err := loadRedisCfg()
	if err != nil {
		return nil, e.Wrap("redis config", err)
	}

	return &Config{
		App:     app,
		Db:      loadDBCfg(),
		Session: session,
		Redis:   redis,
		Admin: &AdminCfg{
			Username: getEnvOrDefault("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD"),
		},
	}, nil
}

// LoadDB reads only the database settings. Command line tools use it so they run without session secrets.
func LoadDB() (*DBCfg, error) {
	return loadDBCfg(), nil
}

func (c *DBCfg) Database() database.Config {
	return database.Config{
		Driver:   c.Driver,
		DSN:      c.DSN,
		LogLevel: c.LogLevel,
	}
}

func loadAppCfg() (*AppCfg, error) {
	const (
		defaultPort            = "3000"
		defaultShutdownTimeout = 10 * time.Second
	)

	shutdown, err := parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, e.Wrap("SHUTDOWN_TIMEOUT", err)
	}

	loc := time.Local
	if name := getEnv("TIME_ZONE"); name != "" {
		loc, err = time.LoadLocation(name)
		if err != nil {
			return nil, e.Wrap("TIME_ZONE", err)
		}
	}

	return &AppCfg{
		Name:            getEnvOrDefault("APP_NAME", "Store POS"),
		Port:            getEnvOrDefault("PORT", defaultPort),
		CORSOrigins:     getEnvOrDefault("CORS_ORIGINS", "*"),
		ShutdownTimeout: shutdown,
		Location:        loc,
	}, nil
}

func loadDBCfg() *DBCfg {
	driver := strings.ToLower(getEnvOrDefault("DB_DRIVER", database.DriverPostgres))

	dsn := getEnv("DATABASE_URL")
	if dsn == "" {
		switch driver {
		case database.DriverSQLite:
			dsn = "store.db"
		case database.DriverMySQL:
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				getEnv("DB_USER"),
				getEnv("DB_PASSWORD"),
				getEnvOrDefault("DB_HOST", "localhost"),
				getEnvOrDefault("DB_PORT", "3306"),
				getEnv("DB_NAME"),
			)
		default:
			dsn = fmt.Sprintf(
				"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
				getEnvOrDefault("DB_HOST", "localhost"),
				getEnv("DB_USER"),
				getEnv("DB_PASSWORD"),
				getEnv("DB_NAME"),
				getEnvOrDefault("DB_PORT", "5432"),
				getEnvOrDefault("DB_SSLMODE", "disable"),
			)
		}
	}

	return &DBCfg{
		Driver:   driver,
		DSN:      dsn,
		LogLevel: getEnvOrDefault("DB_LOG_LEVEL", "warn"),
	}
}

func loadSessionCfg() (*SessionCfg, error) {
	const defaultTTL = 24 * time.Hour

	secret := getEnv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttl, err := parseDurationEnv("SESSION_TTL", defaultTTL)
	if err != nil {
		return nil, e.Wrap("SESSION_TTL", err)
	}

	return &SessionCfg{
		Secret:     secret,
		TTL:        ttl,
		CookieName: getEnvOrDefault("SESSION_COOKIE", "session"),
	}, nil
}

func loadRedisCfg() (*RedisCfg, error) {
	const (
		defaultLoginLimit  = 5
		defaultLoginWindow = time.Minute
	)

	db, err := parseIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, e.Wrap("REDIS_DB", err)
	}

	limit, err := parseIntEnv("LOGIN_RATE_LIMIT", defaultLoginLimit)
	if err != nil {
		return nil, e.Wrap("LOGIN_RATE_LIMIT", err)
	}

	window, err := parseDurationEnv("LOGIN_RATE_WINDOW", defaultLoginWindow)
	if err != nil {
		return nil, e.Wrap("LOGIN_RATE_WINDOW", err)
	}

	return &RedisCfg{
		Addr:        getEnv("REDIS_ADDR"),
		Password:    getEnv("REDIS_PASSWORD"),
		DB:          db,
		LoginLimit:  limit,
		LoginWindow: window,
	}, nil
}

func getEnv(key string) string {
	return os.Getenv(key)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}
	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}
	return intValue, nil
}
