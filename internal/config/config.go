package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	JWT      JWTConfig
	Cookie   CookieConfig
	Limits   RateLimitConfig
	Auth     AuthConfig
	Session  SessionConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Ledger   LedgerConfig
	AMQP     AMQPConfig
	Cron     CronConfig
	Seed     SeedConfig
}

// JWTConfig holds access token configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// RateLimitConfig holds per-IP request budgets per minute
type RateLimitConfig struct {
	General int
	Login   int
}

// Credential modes
const (
	AuthModeDemo   = "demo"   // any password of at least 6 characters
	AuthModeStrict = "strict" // bcrypt against the stored hash
)

// AuthConfig holds identity store configuration
type AuthConfig struct {
	Mode    string
	Latency time.Duration
}

// Session drivers
const (
	SessionDriverMemory = "memory"
	SessionDriverRedis  = "redis"
	SessionDriverSQL    = "sql"
)

// SessionConfig selects where the session record is persisted
type SessionConfig struct {
	Driver string
	Key    string
	Prefix string // redis key prefix
}

// DatabaseConfig holds database configuration for the SQL session driver
type DatabaseConfig struct {
	Dialect  string // mysql or postgres
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// RedisConfig holds redis configuration for the redis session driver
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

// LedgerConfig holds loan ledger behaviour switches
type LedgerConfig struct {
	StrictTransitions bool
	EnforceRoles      bool
	SubmitLatency     time.Duration
	ReviewLatency     time.Duration
}

// AMQPConfig holds the notification broker configuration
type AMQPConfig struct {
	URL   string
	Queue string
}

// CronConfig holds scheduled job configuration
type CronConfig struct {
	Enabled      bool
	ReminderSpec string
}

// SeedConfig holds mock data configuration
type SeedConfig struct {
	LoanCount  int
	RandomSeed int64 // 0 means time based
	Password   string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		JWT:      loadJWTConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Limits:   loadRateLimitConfig(),
		Auth:     loadAuthConfig(),
		Session:  loadSessionConfig(),
		Database: loadDatabaseConfig(appMode),
		Redis:    loadRedisConfig(),
		Ledger:   loadLedgerConfig(),
		AMQP:     loadAMQPConfig(),
		Cron:     loadCronConfig(),
		Seed:     loadSeedConfig(),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Auth.Mode {
	case AuthModeDemo, AuthModeStrict:
	default:
		return fmt.Errorf("invalid AUTH_MODE: '%s' (must be 'demo' or 'strict')", c.Auth.Mode)
	}

	switch c.Session.Driver {
	case SessionDriverMemory, SessionDriverRedis, SessionDriverSQL:
	default:
		return fmt.Errorf("invalid SESSION_DRIVER: '%s' (must be 'memory', 'redis' or 'sql')", c.Session.Driver)
	}

	if c.Session.Driver == SessionDriverSQL && c.Database.Dialect != "mysql" && c.Database.Dialect != "postgres" {
		return fmt.Errorf("invalid DB_DIALECT: '%s' (must be 'mysql' or 'postgres')", c.Database.Dialect)
	}

	if c.Seed.LoanCount < 0 {
		return fmt.Errorf("invalid SEED_LOAN_COUNT: %d (must not be negative)", c.Seed.LoanCount)
	}

	if c.IsProd() && c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("PROD_JWT_SECRET must be set in prod mode")
	}
	return nil
}

const defaultJWTSecret = "default_secret"

// modePrefix returns the env prefix for mode-specific settings
func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	return JWTConfig{
		Secret:          getEnv(modePrefix(mode)+"JWT_SECRET", defaultJWTSecret),
		AccessTokenMins: getEnvInt("ACCESS_TOKEN_MINUTES", 60),
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	secure, _ := strconv.ParseBool(getEnv(modePrefix(mode)+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		General: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
		Login:   getEnvInt("LOGIN_RATE_LIMIT_PER_MINUTE", 5),
	}
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		Mode:    strings.ToLower(strings.TrimSpace(getEnv("AUTH_MODE", AuthModeDemo))),
		Latency: getEnvMillis("AUTH_LATENCY_MS", 0),
	}
}

func loadSessionConfig() SessionConfig {
	return SessionConfig{
		Driver: strings.ToLower(strings.TrimSpace(getEnv("SESSION_DRIVER", SessionDriverMemory))),
		Key:    getEnv("SESSION_KEY", "user"),
		Prefix: getEnv("SESSION_REDIS_PREFIX", "credit-admin:session:"),
	}
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)
	dialect := strings.ToLower(getEnv("DB_DIALECT", "mysql"))
	defaultPort := "3306"
	if dialect == "postgres" {
		defaultPort = "5432"
	}

	return DatabaseConfig{
		Dialect:  dialect,
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", defaultPort),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "credit_admin"),
	}
}

// loadRedisConfig reads REDIS_ADDR, or REDIS_HOST and REDIS_PORT
func loadRedisConfig() RedisConfig {
	addr := os.Getenv("REDIS_ADDR")
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}
	tlsEnv := os.Getenv("REDIS_TLS")

	return RedisConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvInt("REDIS_DB", 0),
		TLS:      strings.EqualFold(tlsEnv, "true") || tlsEnv == "1",
	}
}

func loadLedgerConfig() LedgerConfig {
	return LedgerConfig{
		StrictTransitions: getEnvBool("LEDGER_STRICT_TRANSITIONS", false),
		EnforceRoles:      getEnvBool("LEDGER_ENFORCE_ROLES", false),
		SubmitLatency:     getEnvMillis("LEDGER_SUBMIT_LATENCY_MS", 0),
		ReviewLatency:     getEnvMillis("LEDGER_REVIEW_LATENCY_MS", 0),
	}
}

func loadAMQPConfig() AMQPConfig {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	return AMQPConfig{
		URL:   url,
		Queue: getEnv("AMQP_QUEUE", "loan.events"),
	}
}

func loadCronConfig() CronConfig {
	return CronConfig{
		Enabled:      getEnvBool("CRON_ENABLED", true),
		ReminderSpec: getEnv("CRON_REMINDER_SPEC", "30 8 * * *"),
	}
}

func loadSeedConfig() SeedConfig {
	seed, _ := strconv.ParseInt(getEnv("SEED_RANDOM", "0"), 10, 64)
	return SeedConfig{
		LoanCount:  getEnvInt("SEED_LOAN_COUNT", 24),
		RandomSeed: seed,
		Password:   getEnv("SEED_PASSWORD", "password123"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvMillis(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvInt(key, defaultValue)) * time.Millisecond
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// IsStrictAuth reports whether passwords are checked against stored hashes
func (c *Config) IsStrictAuth() bool {
	return c.Auth.Mode == AuthModeStrict
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:5173"
	}
	return origins
}
