// Package config resolves runtime settings from flags, environment and an
// optional config file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Sonukumar0009/Farmart/internal/decode"
)

// Keys shared by flags, config file entries and environment variables.
// The environment form is EXTRACT_LOGS_ plus the upper-cased key with
// dashes replaced by underscores, e.g. EXTRACT_LOGS_OUTPUT_DIR.
const (
	KeyArchive    = "archive"
	KeyOutputDir  = "output-dir"
	KeyDecode     = "decode"
	KeyInclude    = "include"
	KeyFormat     = "output"
	KeyVerbose    = "verbose"
	KeyStrictExit = "strict-exit"
	KeyAddr       = "addr"
	KeyDebounce   = "debounce"

	EnvPrefix = "EXTRACT_LOGS"
)

// Config holds everything an extraction needs besides the target date.
type Config struct {
	ArchivePath string
	OutputDir   string
	Decode      decode.Policy
	Include     []string
	Format      string
	Verbose     bool
	StrictExit  bool
	Addr        string
	Debounce    time.Duration
}

// Setup registers defaults and environment lookup on v.
func Setup(v *viper.Viper) {
	v.SetDefault(KeyArchive, "logs.zip")
	v.SetDefault(KeyOutputDir, "output")
	v.SetDefault(KeyDecode, decode.Ignore.String())
	v.SetDefault(KeyInclude, []string{"**"})
	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyDebounce, 500*time.Millisecond)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads a validated Config out of v.
func Load(v *viper.Viper) (Config, error) {
	policy, err := decode.Parse(v.GetString(KeyDecode))
	if err != nil {
		return Config{}, err
	}

	c := Config{
		ArchivePath: v.GetString(KeyArchive),
		OutputDir:   v.GetString(KeyOutputDir),
		Decode:      policy,
		Include:     v.GetStringSlice(KeyInclude),
		Format:      strings.ToLower(v.GetString(KeyFormat)),
		Verbose:     v.GetBool(KeyVerbose),
		StrictExit:  v.GetBool(KeyStrictExit),
		Addr:        v.GetString(KeyAddr),
		Debounce:    v.GetDuration(KeyDebounce),
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.ArchivePath == "" {
		return fmt.Errorf("archive path is required (use --archive or %s_ARCHIVE)", EnvPrefix)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required (use --output-dir or %s_OUTPUT_DIR)", EnvPrefix)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", c.Format)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", c.Debounce)
	}
	return nil
}
