package contract

import (
	"fmt"
	"slices"
	"strings"

	"github.com/huangsam/benchboard/core/algo"
	"github.com/huangsam/benchboard/schema"
	"golang.org/x/text/language"
)

// Default values for configuration.
const (
	DefaultLocale      = "en"
	DefaultAddr        = ":8080"
	DefaultSubmitRate  = 1.0
	DefaultSubmitBurst = 5
	MaxPrecision       = 4
)

// Config holds the runtime configuration for one leaderboard view.
// This struct remains the "final, validated" config.
type Config struct {
	Variant     schema.Variant
	Sort        schema.SortSpec
	Query       schema.Query
	Precision   int // 0 selects the variant precision
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	Locale      language.Tag
	RemoteOrder bool // Ask the store to ORDER BY the sort field

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	Addr        string
	CORSOrigins []string
	SubmitRate  float64 // Submissions per second per client
	SubmitBurst int

	UseEmojis bool // Enable badge emojis in output
	UseColors bool // Enable colored ranks in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	VariantStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Locale         string `mapstructure:"locale"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Fields from boardCmd.Flags() ---
	Sort        string `mapstructure:"sort"`
	Direction   string `mapstructure:"direction"`
	Search      string `mapstructure:"search"`
	Filter      string `mapstructure:"filter"`
	RemoteOrder bool   `mapstructure:"remote-order"`

	// --- Fields from serveCmd.Flags() ---
	Addr        string  `mapstructure:"addr"`
	CORSOrigins string  `mapstructure:"cors-origins"`
	SubmitRate  float64 `mapstructure:"submit-rate"`
	SubmitBurst int     `mapstructure:"submit-burst"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.CORSOrigins = slices.Clone(c.CORSOrigins)
	return &clone
}

// CloneWithVariant creates a copy of the Config scoped to another variant.
// The sort resets to the variant default and a category filter the variant cannot apply is dropped.
func (c *Config) CloneWithVariant(v schema.Variant) *Config {
	clone := c.Clone()
	clone.Variant = v
	clone.Sort = v.DefaultSort
	if algo.ValidateFilterType(v, clone.Query.FilterType) != nil {
		clone.Query.FilterType = ""
	}
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processVariantView(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return processServerInputs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.MemoryBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the store backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, memory", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// validateSimpleInputs processes and validates all fields that do not depend on the variant.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.RemoteOrder = input.RemoteOrder

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	locale := input.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("invalid locale '%s': %w", input.Locale, err)
	}
	cfg.Locale = tag

	return nil
}

// processVariantView resolves the variant and validates the sort and filter against it.
// Commands without a variant argument default to models.
func processVariantView(cfg *Config, input *ConfigRawInput) error {
	name := input.VariantStr
	if name == "" {
		name = string(schema.ModelsVariant)
	}
	v, err := schema.LookupVariant(name)
	if err != nil {
		return err
	}
	cfg.Variant = v

	sort, err := algo.ResolveSort(v, input.Sort, input.Direction)
	if err != nil {
		return err
	}
	cfg.Sort = sort

	if err := algo.ValidateFilterType(v, input.Filter); err != nil {
		return err
	}
	cfg.Query = schema.Query{Search: strings.TrimSpace(input.Search), FilterType: strings.ToLower(strings.TrimSpace(input.Filter))}
	return nil
}

// processServerInputs handles the HTTP server parameters.
func processServerInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	cfg.CORSOrigins = nil
	for origin := range strings.SplitSeq(input.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, trimmed)
		}
	}

	cfg.SubmitRate = input.SubmitRate
	if cfg.SubmitRate == 0 {
		cfg.SubmitRate = DefaultSubmitRate
	}
	if cfg.SubmitRate < 0 {
		return fmt.Errorf("submit-rate must be greater than 0 (received %g)", input.SubmitRate)
	}

	cfg.SubmitBurst = input.SubmitBurst
	if cfg.SubmitBurst == 0 {
		cfg.SubmitBurst = DefaultSubmitBurst
	}
	if cfg.SubmitBurst < 0 {
		return fmt.Errorf("submit-burst must be greater than 0 (received %d)", input.SubmitBurst)
	}
	return nil
}

// ViewParams are the per-request view inputs of the API and MCP surfaces.
type ViewParams struct {
	Variant   string
	Sort      string
	Direction string
	Search    string
	Filter    string
}

// RevalidateView scopes a copy of the base config to one leaderboard view.
// Empty parameters fall back to the variant defaults.
func RevalidateView(base *Config, params ViewParams) (*Config, error) {
	v, err := schema.LookupVariant(params.Variant)
	if err != nil {
		return nil, err
	}
	sort, err := algo.ResolveSort(v, params.Sort, params.Direction)
	if err != nil {
		return nil, err
	}
	if err := algo.ValidateFilterType(v, params.Filter); err != nil {
		return nil, err
	}

	cfg := base.Clone()
	cfg.Variant = v
	cfg.Sort = sort
	cfg.Query = schema.Query{
		Search:     strings.TrimSpace(params.Search),
		FilterType: strings.ToLower(strings.TrimSpace(params.Filter)),
	}
	return cfg, nil
}
