package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Google    GoogleConfig    `mapstructure:"google"`
	Sheets    SheetsConfig    `mapstructure:"sheets"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Sink      string          `mapstructure:"sink"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Temporal  TemporalConfig  `mapstructure:"temporal"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port          int      `mapstructure:"port"`
	ReadTimeout   int      `mapstructure:"read_timeout"`
	WriteTimeout  int      `mapstructure:"write_timeout"`
	SearchTimeout int      `mapstructure:"search_timeout"`
	RateLimit     int      `mapstructure:"rate_limit"`
	AllowOrigins  []string `mapstructure:"allow_origins"`
}

// GoogleConfig configures the Maps web-service client.
type GoogleConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// SheetsConfig configures the spreadsheet row store.
type SheetsConfig struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	Range           string `mapstructure:"range"`
	CredentialsFile string `mapstructure:"credentials_file"`
	CredentialsJSON string `mapstructure:"credentials_json"`
	ClientEmail     string `mapstructure:"client_email"`
	PrivateKey      string `mapstructure:"private_key"`
	Endpoint        string `mapstructure:"endpoint"`
}

// PipelineConfig tunes the search pipeline.
type PipelineConfig struct {
	MaxRounds          int           `mapstructure:"max_rounds"`
	RadiusMeters       int           `mapstructure:"radius_meters"`
	PageShiftDegrees   float64       `mapstructure:"page_shift_degrees"`
	PacingDelay        time.Duration `mapstructure:"pacing_delay"`
	DetailConcurrency  int           `mapstructure:"detail_concurrency"`
	FailOnPersistError bool          `mapstructure:"fail_on_persist_error"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	Enabled  bool   `mapstructure:"enabled"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TemporalConfig struct {
	HostPort  string `mapstructure:"host_port"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
	Enabled   bool   `mapstructure:"enabled"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Sink values.
const (
	SinkSheets   = "sheets"
	SinkPostgres = "postgres"
	SinkBoth     = "both"
)

// Sinks lists the row stores the configured sink writes to, in write order.
func (c *Config) Sinks() []string {
	switch c.Sink {
	case SinkSheets, SinkPostgres:
		return []string{c.Sink}
	case SinkBoth:
		return []string{SinkSheets, SinkPostgres}
	}
	return nil
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()
	setDefaults(v, service)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: PLACESCOUT_GOOGLE_API_KEY → google.api_key
	v.SetEnvPrefix("PLACESCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// legacyEnv maps the variable names used by earlier deployments.
var legacyEnv = map[string]string{
	"google.api_key":        "GOOGLE_API_KEY",
	"sheets.spreadsheet_id": "GOOGLE_SHEET_ID",
	"sheets.client_email":   "GOOGLE_CLIENT_EMAIL",
	"sheets.private_key":    "GOOGLE_PRIVATE_KEY",
}

func bindLegacyEnv(v *viper.Viper) {
	for key, legacy := range legacyEnv {
		prefixed := "PLACESCOUT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, prefixed, legacy)
	}
}

func setDefaults(v *viper.Viper, service string) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.search_timeout", 90)
	v.SetDefault("server.rate_limit", 30)
	v.SetDefault("server.allow_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	v.SetDefault("google.api_key", "")
	v.SetDefault("google.base_url", "https://maps.googleapis.com")
	v.SetDefault("google.request_timeout", 10*time.Second)

	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.range", "Sheet1!A:G")
	v.SetDefault("sheets.credentials_file", "")
	v.SetDefault("sheets.credentials_json", "")
	v.SetDefault("sheets.client_email", "")
	v.SetDefault("sheets.private_key", "")
	v.SetDefault("sheets.endpoint", "")

	v.SetDefault("pipeline.max_rounds", 3)
	v.SetDefault("pipeline.radius_meters", 5000)
	v.SetDefault("pipeline.page_shift_degrees", 0.05)
	v.SetDefault("pipeline.pacing_delay", 2*time.Second)
	v.SetDefault("pipeline.detail_concurrency", 1)
	v.SetDefault("pipeline.fail_on_persist_error", false)

	v.SetDefault("sink", SinkSheets)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "placescout")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "placescout")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.enabled", false)

	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.addr", "localhost:6379")

	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "place-search")
	v.SetDefault("temporal.enabled", false)

	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Server.SearchTimeout <= 0 {
		errs = append(errs, "server.search_timeout must be positive")
	}
	if c.Google.BaseURL == "" {
		errs = append(errs, "google.base_url is required")
	}
	if c.Google.RequestTimeout <= 0 {
		errs = append(errs, "google.request_timeout must be positive")
	}
	if c.Sheets.Range == "" {
		errs = append(errs, "sheets.range is required")
	}
	if c.Pipeline.MaxRounds < 1 {
		errs = append(errs, fmt.Sprintf("pipeline.max_rounds must be at least 1, got %d", c.Pipeline.MaxRounds))
	}
	if c.Pipeline.RadiusMeters <= 0 || c.Pipeline.RadiusMeters > 50000 {
		errs = append(errs, fmt.Sprintf("pipeline.radius_meters must be 1-50000, got %d", c.Pipeline.RadiusMeters))
	}
	if c.Pipeline.PacingDelay < 0 {
		errs = append(errs, "pipeline.pacing_delay must not be negative")
	}
	if c.Pipeline.DetailConcurrency < 1 {
		errs = append(errs, "pipeline.detail_concurrency must be at least 1")
	}

	switch c.Sink {
	case SinkSheets, SinkPostgres, SinkBoth:
	default:
		errs = append(errs, fmt.Sprintf("sink must be one of sheets, postgres, both; got %q", c.Sink))
	}

	if c.Database.Enabled {
		if c.Database.Host == "" {
			errs = append(errs, "database.host is required")
		}
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
		}
		if c.Database.User == "" {
			errs = append(errs, "database.user is required")
		}
		if c.Database.DBName == "" {
			errs = append(errs, "database.dbname is required")
		}
	}
	if c.Temporal.Enabled && c.Temporal.TaskQueue == "" {
		errs = append(errs, "temporal.task_queue is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ValidateSearch checks the settings only the search-serving processes need:
// the Maps API key and a usable row store.
func (c *Config) ValidateSearch() error {
	var errs []string

	if c.Google.APIKey == "" {
		errs = append(errs, "google.api_key is required")
	}
	if (c.Sink == SinkSheets || c.Sink == SinkBoth) && c.Sheets.SpreadsheetID == "" {
		errs = append(errs, "sheets.spreadsheet_id is required when sink is "+c.Sink)
	}
	if (c.Sink == SinkPostgres || c.Sink == SinkBoth) && !c.Database.Enabled {
		errs = append(errs, "database.enabled must be true when sink is "+c.Sink)
	}

	if len(errs) > 0 {
		return fmt.Errorf("search config invalid:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
