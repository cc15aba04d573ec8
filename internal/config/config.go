package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"    validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// RedisConfig contains the cache connection settings.
type RedisConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
	DB   int    `mapstructure:"db"   validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
// Access and refresh tokens carry independent lifetimes: access tokens are
// short-lived (minutes), refresh tokens long-lived (days).
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	AccessTokenLifetimeMinutes  int    `mapstructure:"access_token_lifetime_minutes"  validate:"required,gt=0"`
	RefreshTokenLifetimeDays    int    `mapstructure:"refresh_token_lifetime_days"    validate:"required,gt=0"`
}

// CacheConfig contains the task cache tuning settings.
type CacheConfig struct {
	// TaskTTLSeconds bounds the lifetime of cached task lists. The cache is
	// approximate, not authoritative, so a short TTL is the consistency
	// mechanism.
	TaskTTLSeconds int `mapstructure:"task_ttl_seconds" validate:"required,gt=0"`
}
