package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Report    ReportConfig    `yaml:"report" mapstructure:"report"`
	PriceFeed PriceFeedConfig `yaml:"pricefeed" mapstructure:"pricefeed"`
	Product   ProductConfig   `yaml:"product" mapstructure:"product"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ReportConfig configures the sales report aggregator.
type ReportConfig struct {
	CSVPath    string `yaml:"csv_path" mapstructure:"csv_path"`
	OutputPath string `yaml:"output_path" mapstructure:"output_path"`
	Delimiter  string `yaml:"delimiter" mapstructure:"delimiter"`
}

// DelimiterRune returns the configured field separator, or 0 for the default.
func (r ReportConfig) DelimiterRune() rune {
	d, _ := utf8.DecodeRuneInString(r.Delimiter)
	if d == utf8.RuneError {
		return 0
	}
	return d
}

// PriceFeedConfig configures the price feed converter.
type PriceFeedConfig struct {
	InputPath  string `yaml:"input_path" mapstructure:"input_path"`
	OutputPath string `yaml:"output_path" mapstructure:"output_path"`
	Encoding   string `yaml:"encoding" mapstructure:"encoding"`
	Sheet      string `yaml:"sheet" mapstructure:"sheet"`
	SkipRows   int    `yaml:"skip_rows" mapstructure:"skip_rows"`
}

// ProductConfig configures the product page extractor.
type ProductConfig struct {
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MARKETPLACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("report.csv_path", "Amazon Sale Report.csv")
	v.SetDefault("report.output_path", "Amazon_Sale_Report.xlsx")
	v.SetDefault("report.delimiter", ",")
	v.SetDefault("pricefeed.input_path", "Price Data.xlsx")
	v.SetDefault("pricefeed.output_path", "Price_Data.xml")
	v.SetDefault("pricefeed.encoding", "utf-16")
	v.SetDefault("pricefeed.sheet", "")
	v.SetDefault("pricefeed.skip_rows", 0)
	v.SetDefault("product.user_agent", "")
	v.SetDefault("product.timeout_secs", 30)
	v.SetDefault("product.max_body_bytes", 8*1024*1024)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the settings a command mode depends on are usable.
// Mode is one of "report", "pricefeed", "scrape", or "serve".
func (c *Config) Validate(mode string) error {
	var errs []string

	checkReport := func() {
		if !validDelimiter(c.Report.Delimiter) {
			errs = append(errs, fmt.Sprintf("report.delimiter %q must be a single character other than a quote or newline", c.Report.Delimiter))
		}
	}
	checkPriceFeed := func() {
		if !validEncoding(c.PriceFeed.Encoding) {
			errs = append(errs, fmt.Sprintf("pricefeed.encoding %q must be utf-16 or utf-8", c.PriceFeed.Encoding))
		}
		if c.PriceFeed.SkipRows < 0 {
			errs = append(errs, "pricefeed.skip_rows must be >= 0")
		}
	}
	checkProduct := func() {
		if c.Product.TimeoutSecs < 0 {
			errs = append(errs, "product.timeout_secs must be >= 0")
		}
		if c.Product.MaxBodyBytes <= 0 {
			errs = append(errs, "product.max_body_bytes must be > 0")
		}
	}

	switch mode {
	case "report":
		if c.Report.CSVPath == "" {
			errs = append(errs, "report.csv_path is required")
		}
		if c.Report.OutputPath == "" {
			errs = append(errs, "report.output_path is required")
		}
		checkReport()
	case "pricefeed":
		if c.PriceFeed.InputPath == "" {
			errs = append(errs, "pricefeed.input_path is required")
		}
		if c.PriceFeed.OutputPath == "" {
			errs = append(errs, "pricefeed.output_path is required")
		}
		checkPriceFeed()
	case "scrape":
		checkProduct()
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		checkReport()
		checkPriceFeed()
		checkProduct()
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validEncoding(enc string) bool {
	switch strings.ToLower(enc) {
	case "utf-16", "utf-8":
		return true
	}
	return false
}

// An empty delimiter means the default comma.
func validDelimiter(d string) bool {
	if d == "" {
		return true
	}
	r, size := utf8.DecodeRuneInString(d)
	if size != len(d) || r == utf8.RuneError {
		return false
	}
	return r != '"' && r != '\r' && r != '\n'
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
