package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/jefanko/app-updates/internal/secrets"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// AppDirName is the directory name used under the XDG data and config homes
const AppDirName = "ina-ai-chart"

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Shell     ShellConfig
	Database  DatabaseConfig
	Realtime  RealtimeConfig
	Remote    RemoteConfig
	Local     LocalConfig
	Storage   StorageConfig
	Secrets   SecretsConfig
	User      UserConfig
	Admin     AdminConfig
	Updates   UpdatesConfig
	Accdb     AccdbConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
	Version     string
	// Packaged selects the bundled UI over the development server
	Packaged bool
}

// ShellConfig controls how the UI is served and opened
type ShellConfig struct {
	// BundleDir holds the built UI served when packaged
	BundleDir string
	// DevServerURL is reverse proxied when not packaged
	DevServerURL string
	// OpenBrowser opens the UI in the default browser at startup
	OpenBrowser bool
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite"
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	AutoMigrate     bool
}

// RealtimeConfig configures how remote changes reach the local mirror
type RealtimeConfig struct {
	// Mode is "listen" (LISTEN/NOTIFY), "poll" (version polling) or "off"
	Mode    string
	Channel string
	// PollSchedule is a cron spec used in poll mode
	PollSchedule         string
	MinReconnectInterval int // seconds
	MaxReconnectInterval int // seconds
}

// RemoteConfig tunes remote writes issued by the optimistic mutators
type RemoteConfig struct {
	WriteTimeout int // seconds
}

// LocalConfig configures the local document store
type LocalConfig struct {
	// Backend is "file" or "badger"
	Backend   string
	DataDir   string
	BadgerDir string
}

type StorageConfig struct {
	// Mode is "local" or "cloud"
	Mode                  string
	LocalBasePath         string
	CloudConnectionString string
	CloudContainer        string
	MaxUploadSizeMB       int64
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	// "auto" uses environment in development, vault in staging/production
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

// UserConfig identifies the signed-in user of this installation
type UserConfig struct {
	ID    string
	Name  string
	Email string
}

// AdminConfig lists users with full edit rights
type AdminConfig struct {
	Emails []string
}

// UpdatesConfig configures the update channel
type UpdatesConfig struct {
	Enabled      bool
	FeedURL      string
	Schedule     string
	AutoDownload bool
	DownloadDir  string
}

// AccdbConfig locates the mdbtools binaries used to read Access files
type AccdbConfig struct {
	TablesBinary string
	ExportBinary string
	Timeout      int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
	// File additionally writes logs to this path when set
	File string
}

type ServerConfig struct {
	ReadTimeout     int
	WriteTimeout    int
	RequestTimeout  int
	ShutdownTimeout int
	EnableSwagger   bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	// AllowedOrigins is a list of allowed origins for CORS requests
	AllowedOrigins []string
	// AllowedMethods is a list of allowed HTTP methods
	AllowedMethods []string
	// AllowedHeaders is a list of allowed request headers
	AllowedHeaders []string
	// ExposedHeaders is a list of headers exposed to the client
	ExposedHeaders []string
	// AllowCredentials indicates whether credentials are allowed
	AllowCredentials bool
	// MaxAge is the max age (in seconds) for preflight cache
	MaxAge int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	// ContentSecurityPolicy sets the Content-Security-Policy header
	ContentSecurityPolicy string
	// FrameOptions sets the X-Frame-Options header (DENY, SAMEORIGIN, or empty to disable)
	FrameOptions string
	// ContentTypeNosniff enables X-Content-Type-Options: nosniff
	ContentTypeNosniff bool
	// ReferrerPolicy sets the Referrer-Policy header
	ReferrerPolicy string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	// WhitelistPaths bypass rate limiting (e.g., /health)
	WhitelistPaths []string
}

// MetricsConfig controls the prometheus endpoint
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// ShutdownTimeoutDuration returns the graceful shutdown budget
func (s *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// WriteTimeoutDuration returns the remote write timeout
func (r *RemoteConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(r.WriteTimeout) * time.Second
}

// ReconnectIntervals returns the listener's reconnect backoff bounds
func (r *RealtimeConfig) ReconnectIntervals() (time.Duration, time.Duration) {
	return time.Duration(r.MinReconnectInterval) * time.Second,
		time.Duration(r.MaxReconnectInterval) * time.Second
}

// TimeoutDuration returns the per-invocation timeout for mdbtools
func (a *AccdbConfig) TimeoutDuration() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

// Load loads configuration from file and environment variables
// This is a basic load that doesn't fetch secrets from vault
// Use LoadWithSecrets for full secret resolution
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppDirName))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}
	if cfg.Storage.LocalBasePath == "" {
		cfg.Storage.LocalBasePath = cfg.Local.DataDir
	}
	if cfg.Local.BadgerDir == "" {
		cfg.Local.BadgerDir = filepath.Join(cfg.Local.DataDir, "badger")
	}
	if cfg.Updates.DownloadDir == "" {
		cfg.Updates.DownloadDir = filepath.Join(xdg.CacheHome, AppDirName, "updates")
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves the remote database
// credentials and blob connection string from the configured secret source.
// Key Vault is used only when USE_AZURE_KEY_VAULT=true and the environment is
// staging or production.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	if err := applySecrets(ctx, cfg, provider); err != nil {
		return nil, err
	}

	logger.Info("Secrets loaded from vault successfully",
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)
	return cfg, nil
}

// SecretGetter is the part of the secrets provider used to fill the config
type SecretGetter interface {
	GetSecretOrEnv(ctx context.Context, secretName, envName string) (string, error)
}

func applySecrets(ctx context.Context, cfg *Config, provider SecretGetter) error {
	if host, err := provider.GetSecretOrEnv(ctx, "TRACKER-DB-HOST", "DATABASE_HOST"); err == nil && host != "" {
		cfg.Database.Host = host
	}
	if user, err := provider.GetSecretOrEnv(ctx, "TRACKER-DB-USER", "DATABASE_USER"); err == nil && user != "" {
		cfg.Database.User = user
	}
	password, err := provider.GetSecretOrEnv(ctx, "TRACKER-DB-PASSWORD", "DATABASE_PASSWORD")
	if err != nil {
		return fmt.Errorf("failed to resolve database password: %w", err)
	}
	cfg.Database.Password = password

	if sslMode := os.Getenv("DATABASE_SSLMODE"); sslMode != "" {
		cfg.Database.SSLMode = sslMode
	}

	if cfg.Storage.Mode == "cloud" {
		if connStr, err := provider.GetSecretOrEnv(ctx, "storage-connection-string", "STORAGE_CLOUDCONNECTIONSTRING"); err == nil && connStr != "" {
			cfg.Storage.CloudConnectionString = connStr
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	dataDir := filepath.Join(xdg.DataHome, AppDirName)

	// App defaults
	v.SetDefault("app.name", "INA AI Project Tracker")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 5273)
	v.SetDefault("app.version", "0.0.0-dev")
	v.SetDefault("app.packaged", false)

	// Shell defaults
	v.SetDefault("shell.bundleDir", "./dist")
	v.SetDefault("shell.devServerURL", "http://localhost:5173")
	v.SetDefault("shell.openBrowser", true)

	// Database defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "tracker")
	v.SetDefault("database.user", "tracker")
	v.SetDefault("database.password", "tracker")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.sqlitePath", filepath.Join(dataDir, "tracker.db"))
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 2)
	v.SetDefault("database.connMaxLifetime", 300)
	v.SetDefault("database.autoMigrate", false)

	// Realtime defaults
	v.SetDefault("realtime.mode", "listen")
	v.SetDefault("realtime.channel", "tracker_changes")
	v.SetDefault("realtime.pollSchedule", "@every 10s")
	v.SetDefault("realtime.minReconnectInterval", 1)
	v.SetDefault("realtime.maxReconnectInterval", 60)

	v.SetDefault("remote.writeTimeout", 30)

	// Local store defaults
	v.SetDefault("local.backend", "file")
	v.SetDefault("local.dataDir", dataDir)

	// Storage defaults
	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.cloudContainer", "checklist-files")
	v.SetDefault("storage.maxUploadSizeMB", 50)

	// Secrets defaults
	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300) // 5 minutes

	v.SetDefault("admin.emails", []string{})

	// Update channel defaults
	v.SetDefault("updates.enabled", false)
	v.SetDefault("updates.schedule", "@every 6h")
	v.SetDefault("updates.autoDownload", true)

	// mdbtools defaults
	v.SetDefault("accdb.tablesBinary", "mdb-tables")
	v.SetDefault("accdb.exportBinary", "mdb-export")
	v.SetDefault("accdb.timeout", 60)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", filepath.Join(xdg.StateHome, AppDirName, "tracker.log"))

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 120)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.shutdownTimeout", 30)
	v.SetDefault("server.enableSwagger", true)

	// CORS defaults, the dev server origin only
	v.SetDefault("cors.allowedOrigins", []string{"http://localhost:5173"})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID", "Content-Disposition"})
	v.SetDefault("cors.allowCredentials", false)
	v.SetDefault("cors.maxAge", 300)

	// Security header defaults
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 600)
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/metrics"})

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
