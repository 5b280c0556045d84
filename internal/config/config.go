package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Date display format choices
	DateFormatDash  = "dash"  // MM-DD-YYYY
	DateFormatSlash = "slash" // MM/DD/YYYY

	// Default values
	DefaultTemplate    = "wholesale"
	DefaultDateFormat  = DateFormatDash
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultPreviewRows = 5

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the purchase-order converter.
type Config struct {
	// Document template: "wholesale", "wholesale-sk" or "retail"
	Template string

	// Input/output locations
	InputDir  string
	OutputDir string

	// Application configuration
	DateFormat  string // "dash" or "slash"
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
	PreviewRows int   // Rows shown in the run report preview
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Template:    DefaultTemplate,
		InputDir:    currentDir,
		OutputDir:   currentDir,
		DateFormat:  DefaultDateFormat,
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
		PreviewRows: DefaultPreviewRows,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.InputDir != "" {
		if expandedPath, err := filepath.Abs(cfg.InputDir); err == nil {
			cfg.InputDir = expandedPath
		}
	}
	if cfg.OutputDir != "" {
		if expandedPath, err := filepath.Abs(cfg.OutputDir); err == nil {
			cfg.OutputDir = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PDF2EXCEL")
	viper.AutomaticEnv()

	viper.SetDefault("template", cfg.Template)
	viper.SetDefault("input", cfg.InputDir)
	viper.SetDefault("output", cfg.OutputDir)
	viper.SetDefault("dateformat", cfg.DateFormat)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("preview", cfg.PreviewRows)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("template", cfg.Template, "Document template: 'wholesale', 'wholesale-sk' or 'retail'")
	pflag.String("input", cfg.InputDir, "Directory containing purchase-order PDF files")
	pflag.String("output", cfg.OutputDir, "Directory the XLSX report is written to")
	pflag.String("dateformat", cfg.DateFormat, "Date display format: 'dash' (MM-DD-YYYY) or 'slash' (MM/DD/YYYY)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Int("preview", cfg.PreviewRows, "Rows shown in the run report preview")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("template", pflag.Lookup("template"))
	_ = viper.BindPFlag("input", pflag.Lookup("input"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("dateformat", pflag.Lookup("dateformat"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("preview", pflag.Lookup("preview"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\npdf2excel - Convert purchase-order PDFs into a styled XLSX report\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --template=wholesale --input=/path/to/pdfs\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --template=retail --input=/path/to/pdfs --output=/path/to/reports\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PDF2EXCEL_TEMPLATE    Document template\n")
		fmt.Fprintf(os.Stderr, "  PDF2EXCEL_INPUT       Input PDF directory\n")
		fmt.Fprintf(os.Stderr, "  PDF2EXCEL_OUTPUT      Output directory\n")
		fmt.Fprintf(os.Stderr, "  PDF2EXCEL_DATEFORMAT  Date display format\n")
		fmt.Fprintf(os.Stderr, "  PDF2EXCEL_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  PDF2EXCEL_MAXFILESIZE Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Template = viper.GetString("template")
	cfg.InputDir = viper.GetString("input")
	cfg.OutputDir = viper.GetString("output")
	cfg.DateFormat = viper.GetString("dateformat")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.PreviewRows = viper.GetInt("preview")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Template {
	case "wholesale", "wholesale-sk", "retail":
	default:
		return fmt.Errorf("invalid template: %s (must be one of: wholesale, wholesale-sk, retail)", c.Template)
	}

	if c.InputDir == "" {
		return errors.New("input directory cannot be empty")
	}
	if info, err := os.Stat(c.InputDir); err != nil {
		return fmt.Errorf("cannot access input directory %s: %w", c.InputDir, err)
	} else if !info.IsDir() {
		return fmt.Errorf("input path is not a directory: %s", c.InputDir)
	}

	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}
	if _, err := os.Stat(c.OutputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.OutputDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create output directory %s: %w", c.OutputDir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access output directory %s: %w", c.OutputDir, err)
	}

	if c.DateFormat != DateFormatDash && c.DateFormat != DateFormatSlash {
		return fmt.Errorf("invalid date format: %s (must be 'dash' or 'slash')", c.DateFormat)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}
	if c.PreviewRows < 0 {
		return errors.New("preview rows cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Template: %s, InputDir: %s, OutputDir: %s, DateFormat: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Template, c.InputDir, c.OutputDir, c.DateFormat, c.LogLevel, c.MaxFileSize)
}
