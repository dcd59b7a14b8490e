package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kroma-labs/restpath"
)

// EnvPrefix namespaces every environment variable, e.g. RESTPATH_HOST.
const EnvPrefix = "RESTPATH"

// Settings is the resolved CLI configuration: flags over environment over
// .env file over defaults.
type Settings struct {
	API restpath.Config `mapstructure:",squash"`

	Output   string        `mapstructure:"output"`
	LogLevel string        `mapstructure:"log_level"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Debug    bool          `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("url_template", "/1.1/%s.json")
	v.SetDefault("host", "api.twitter.com")
	v.SetDefault("use_https", true)
	v.SetDefault("output", "json")
	v.SetDefault("log_level", "warn")
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("debug", false)
}

// LoadSettings reads envFile when present and resolves Settings from v.
func LoadSettings(v *viper.Viper, envFile string) (Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := restpath.ValidateTemplate(s.API.URLTemplate); err != nil {
		return Settings{}, err
	}
	switch s.Output {
	case outputJSON, outputYAML, outputTable:
	default:
		return Settings{}, fmt.Errorf("invalid output %q (json, yaml, table)", s.Output)
	}
	if s.Timeout <= 0 {
		return Settings{}, fmt.Errorf("invalid timeout %s (must be positive)", s.Timeout)
	}

	return s, nil
}
