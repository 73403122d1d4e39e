// Package config provides functionality for managing configuration options
// for the application using a config file, environment variables and
// command-line flags.
package config

import "time"

// Options holds the configuration values for the application.
type Options struct {
	Server     ServerConfig     `yaml:"server"     json:"server"`
	Database   DatabaseConfig   `yaml:"database"   json:"database"`
	Log        LogConfig        `yaml:"log"        json:"log"`
	Admin      AdminConfig      `yaml:"admin"      json:"admin"`
	Session    SessionConfig    `yaml:"session"    json:"session"`
	Exhibition ExhibitionConfig `yaml:"exhibition" json:"exhibition"`
	Guestbook  GuestbookConfig  `yaml:"guestbook"  json:"guestbook"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Address is the listening address (ip:port).
	Address         string        `yaml:"address"          json:"address"          env:"SERVER_ADDRESS"          env-default:"localhost:8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     json:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    json:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     json:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `yaml:"tls_cert" json:"tls_cert" env:"SERVER_TLS_CERT"`
	TLSKey  string `yaml:"tls_key"  json:"tls_key"  env:"SERVER_TLS_KEY"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"               json:"dsn"               env:"DATABASE_DSN"`
	MaxOpenConns    int           `yaml:"max_open_conns"    json:"max_open_conns"    env:"DATABASE_MAX_OPEN_CONNS"    env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    json:"max_idle_conns"    env:"DATABASE_MAX_IDLE_CONNS"    env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" json:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME" env-default:"1h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" json:"level" env:"LOG_LEVEL" env-default:"info"`
}

// AdminConfig holds the single admin account.
type AdminConfig struct {
	Username string `yaml:"username" json:"username" env:"ADMIN_USERNAME"`
	Password string `yaml:"password" json:"password" env:"ADMIN_PASSWORD"`
}

// SessionConfig holds session cookie settings.
type SessionConfig struct {
	// Secret switches to signed, expiring tokens when set.
	Secret       string        `yaml:"secret"        json:"secret"        env:"SESSION_SECRET"`
	Issuer       string        `yaml:"issuer"        json:"issuer"        env:"SESSION_ISSUER"        env-default:"exhibition"`
	TTL          time.Duration `yaml:"ttl"           json:"ttl"           env:"SESSION_TTL"           env-default:"168h"`
	SecureCookie bool          `yaml:"secure_cookie" json:"secure_cookie" env:"SESSION_SECURE_COOKIE" env-default:"false"`
}

// ExhibitionConfig holds the teaser and exhibition periods.
type ExhibitionConfig struct {
	TeaserStartRaw     string `yaml:"teaser_start"     json:"teaser_start"     env:"EXHIBITION_TEASER_START"     env-default:"2025-01-01T00:00:00+09:00"`
	TeaserEndRaw       string `yaml:"teaser_end"       json:"teaser_end"       env:"EXHIBITION_TEASER_END"       env-default:"2025-02-01T00:00:00+09:00"`
	ExhibitionStartRaw string `yaml:"exhibition_start" json:"exhibition_start" env:"EXHIBITION_START"            env-default:"2025-02-01T00:00:00+09:00"`
	ExhibitionEndRaw   string `yaml:"exhibition_end"   json:"exhibition_end"   env:"EXHIBITION_END"              env-default:"2025-03-31T23:59:59+09:00"`
	// Timezone is used to render guestbook dates.
	Timezone string `yaml:"timezone" json:"timezone" env:"EXHIBITION_TIMEZONE" env-default:"Asia/Seoul"`
	// TeaserRedirect sends anonymous visitors to the teaser before opening.
	TeaserRedirect bool `yaml:"teaser_redirect" json:"teaser_redirect" env:"EXHIBITION_TEASER_REDIRECT" env-default:"false"`

	// The fields below are parsed from the raw values during validation.
	TeaserStart     time.Time      `yaml:"-" json:"-" env:"-"`
	TeaserEnd       time.Time      `yaml:"-" json:"-" env:"-"`
	ExhibitionStart time.Time      `yaml:"-" json:"-" env:"-"`
	ExhibitionEnd   time.Time      `yaml:"-" json:"-" env:"-"`
	Location        *time.Location `yaml:"-" json:"-" env:"-"`
}

// GuestbookConfig holds guestbook settings.
type GuestbookConfig struct {
	MaxPageSize int `yaml:"max_page_size" json:"max_page_size" env:"GUESTBOOK_MAX_PAGE_SIZE" env-default:"100"`
	BcryptCost  int `yaml:"bcrypt_cost"   json:"bcrypt_cost"   env:"GUESTBOOK_BCRYPT_COST"   env-default:"10"`
}
