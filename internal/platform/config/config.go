package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// AuthMode selecciona el esquema de identidad activo.
type AuthMode string

const (
	AuthModeToken   AuthMode = "token"
	AuthModeSession AuthMode = "session"
	AuthModeDebug   AuthMode = "debug"
)

type DBConfig struct {
	DSN      string
	Host     string
	Port     int
	UserName string
	Password string
	DBName   string
	SSLMode  string
}

type Config struct {
	Port string

	DB DBConfig

	LogLevel  string
	LogFormat string
	AppName   string

	AuthMode    AuthMode
	RequireAuth bool

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	SessionHashKey string
	SessionTTL     time.Duration

	CORSAllowedOrigin   string
	AllowedEmailDomains []string

	// MigrateOnStart aplica las migraciones embebidas al levantar el server.
	MigrateOnStart bool
}

// Load lee la configuración del entorno. Un *viper.Viper nil usa uno nuevo.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		Port: v.GetString("PORT"),
		DB: DBConfig{
			DSN:      strings.TrimSpace(v.GetString("DB_DSN")),
			Host:     strings.TrimSpace(v.GetString("DB_HOST")),
			Port:     v.GetInt("DB_PORT"),
			UserName: v.GetString("DB_USERNAME"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           v.GetString("LOG_FORMAT"),
		AppName:             v.GetString("APP_NAME"),
		AuthMode:            AuthMode(strings.ToLower(strings.TrimSpace(v.GetString("AUTH_MODE")))),
		RequireAuth:         v.GetBool("REQUIRE_AUTH"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		JWTTTL:              v.GetDuration("JWT_TTL"),
		SessionHashKey:      v.GetString("SESSION_HASH_KEY"),
		SessionTTL:          v.GetDuration("SESSION_TTL"),
		CORSAllowedOrigin:   strings.TrimSpace(v.GetString("CORS_ALLOWED_ORIGIN")),
		AllowedEmailDomains: splitCSV(v.GetString("ALLOWED_EMAIL_DOMAINS")),
		MigrateOnStart:      v.GetBool("MIGRATE_ON_START"),
	}

	switch cfg.AuthMode {
	case AuthModeToken, AuthModeSession, AuthModeDebug:
	default:
		return Config{}, errors.NotValidf("AUTH_MODE %q", cfg.AuthMode)
	}
	if cfg.AuthMode == AuthModeToken && len(cfg.JWTSecret) < 16 {
		return Config{}, errors.NotValidf("JWT_SECRET shorter than 16 bytes")
	}
	if len(cfg.AllowedEmailDomains) == 0 {
		return Config{}, errors.NotValidf("empty ALLOWED_EMAIL_DOMAINS")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USERNAME", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "ninerpets")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "vet-records")
	v.SetDefault("AUTH_MODE", string(AuthModeToken))
	v.SetDefault("REQUIRE_AUTH", false)
	v.SetDefault("MIGRATE_ON_START", false)
	v.SetDefault("JWT_SECRET", "dev-only-secret-change-me")
	v.SetDefault("JWT_ISSUER", "vet-records")
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("SESSION_HASH_KEY", "dev-only-session-hash-key-change-me")
	v.SetDefault("SESSION_TTL", 12*time.Hour)
	v.SetDefault("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	v.SetDefault("ALLOWED_EMAIL_DOMAINS", "@uncc.edu,@charlotte.edu")
}

// HasDatabase indica si hay datos suficientes para abrir Postgres.
// Sin DB_DSN ni DB_HOST el servicio corre con el store en memoria.
func (c Config) HasDatabase() bool {
	return c.DB.DSN != "" || c.DB.Host != ""
}

// DSN devuelve DB_DSN tal cual o lo arma desde las partes.
func (c Config) DSN() string {
	if c.DB.DSN != "" {
		return c.DB.DSN
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.UserName, c.DB.Password, c.DB.DBName, c.DB.SSLMode)
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func splitCSV(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
