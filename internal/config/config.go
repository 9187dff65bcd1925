// Package config provides runtime configuration values for the tools.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds file locations and analysis knobs.
type Config struct {
	DataFile            string
	ReportFile          string
	ExcelFile           string
	SalesFile           string
	LowStockThreshold   int
	ReorderLevel        int
	TopN                int
	MovingAverageWindow int
	IDStrategy          string
	LogLevel            string
	LogFormat           string
}

// field: default value
var defaults = map[string]any{
	"data_file":             "products.json",
	"report_file":           "sales_report.txt",
	"excel_file":            "",
	"sales_file":            "",
	"low_stock_threshold":   10,
	"reorder_level":         20,
	"top_n":                 5,
	"moving_average_window": 3,
	"id_strategy":           "sequential",
	"log_level":             "info",
	"log_format":            "json",
}

// DefaultEnvFile is the dotenv file read by Load when present.
const DefaultEnvFile = ".env"

// Load collects configuration from defaults, an optional config file,
// DefaultEnvFile and the environment, in increasing order of precedence.
func Load(configFile string) (Config, error) {
	return LoadFiles(configFile, DefaultEnvFile)
}

// LoadFiles is Load with an explicit dotenv path. Either path may be empty.
func LoadFiles(configFile, envFile string) (Config, error) {
	if envFile != "" {
		// godotenv never overrides variables already set in the process.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("could not read env file: %w", err)
		}
	}

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("could not read config: %w", err)
		}
	}

	c := Config{
		DataFile:            v.GetString("data_file"),
		ReportFile:          v.GetString("report_file"),
		ExcelFile:           v.GetString("excel_file"),
		SalesFile:           v.GetString("sales_file"),
		LowStockThreshold:   atoi(v, "low_stock_threshold"),
		ReorderLevel:        atoi(v, "reorder_level"),
		TopN:                atoi(v, "top_n"),
		MovingAverageWindow: atoi(v, "moving_average_window"),
		IDStrategy:          strings.ToLower(v.GetString("id_strategy")),
		LogLevel:            v.GetString("log_level"),
		LogFormat:           v.GetString("log_format"),
	}
	return c, nil
}

// atoi reads an integer key, falling back to its default when the value
// does not parse.
func atoi(v *viper.Viper, key string) int {
	def := defaults[key].(int)
	s := strings.TrimSpace(v.GetString(key))
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be >= 1, got %d", c.TopN)
	}
	if c.MovingAverageWindow < 1 {
		return fmt.Errorf("moving_average_window must be >= 1, got %d", c.MovingAverageWindow)
	}
	switch c.IDStrategy {
	case "sequential", "random", "uuid":
	default:
		return fmt.Errorf("unknown id_strategy %q", c.IDStrategy)
	}
	return nil
}
