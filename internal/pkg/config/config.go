package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dum-monitor/dum/internal/pkg/utils"
)

// Config holds everything a run needs, parsed from the config file,
// environment and command line flags. It is constructed once by Load and
// passed down the pipeline; nothing mutates it after validation.
//
// The `mapstructure` tags map the fields to the viper configuration. Viper
// keys are case-insensitive, so the TOML file can keep the historical
// capitalized keys (Directories, ThresholdLimit, ...).
type Config struct {
	Directories    []string `mapstructure:"directories"`
	ThresholdLimit int      `mapstructure:"thresholdlimit"`
	GotifyURL      string   `mapstructure:"gotifyurl"`
	GotifyToken    string   `mapstructure:"gotifytoken"`

	DryRun             bool   `mapstructure:"dry-run"`
	LiveStats          bool   `mapstructure:"live-stats"`
	PrometheusTextfile string `mapstructure:"prometheus-textfile"`

	// Logging
	NoStdoutLog      bool   `mapstructure:"no-stdout-log"`
	LogLevel         string `mapstructure:"log-level"`
	LogFileOutputDir string `mapstructure:"log-file-output-dir"`
	LogFileRotation  string `mapstructure:"log-file-rotation"`
	LogESURL         string `mapstructure:"log-es-url"`
	LogESIndexPrefix string `mapstructure:"log-es-index-prefix"`

	// RunID identifies one run in logs, notifications and metrics.
	RunID string

	// NotifyEnabled is set during validation when both GotifyURL and
	// GotifyToken are present.
	NotifyEnabled bool
}

// Load reads the configuration with the following precedence, highest last:
// config file -> environment (DUM_*) -> command line flags. The flags must
// already be bound with BindFlags. The returned Config is fully validated.
func Load(configFile string) (*Config, error) {
	if configFile != "" {
		if !utils.FileExists(configFile) {
			return nil, fmt.Errorf("configuration file required to execute: %s", configFile)
		}
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		viper.AddConfigPath(filepath.Join(home, ".config", "dum"))
		viper.SetConfigType("toml")
		viper.SetConfigName("dum")
	}

	viper.SetEnvPrefix("DUM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}

	if cfg.LogFileOutputDir == "" {
		cfg.LogFileOutputDir = filepath.Dir(viper.ConfigFileUsed())
	}

	cfg.RunID = uuid.New().String()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// BindFlags binds the flags to the viper configuration. This is needed
// because viper doesn't support the same flag name across multiple commands.
// Details here: https://github.com/spf13/viper/issues/375#issuecomment-794668149
func BindFlags(flagSet *pflag.FlagSet) {
	flagSet.VisitAll(func(flag *pflag.Flag) {
		viper.BindPFlag(flag.Name, flag)
	})
}

// ThresholdBytes returns the free space threshold as a byte count.
func (c *Config) ThresholdBytes() int64 {
	return int64(c.ThresholdLimit) * 1024 * 1024 * 1024
}

// LogFileRotationPeriod parses the configured log rotation period,
// defaulting to 24h when unset or unparseable.
func (c *Config) LogFileRotationPeriod() time.Duration {
	period, err := time.ParseDuration(c.LogFileRotation)
	if err != nil || period <= 0 {
		return 24 * time.Hour
	}
	return period
}
