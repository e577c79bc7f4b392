package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"

	shipiterrors "shipit.dev/shipit/internal/errors"
)

// SettingsFileName is the optional settings file looked up in the project root
const SettingsFileName = ".shipit"

// Settings are the runtime knobs of a release run. They come from defaults,
// an optional .shipit.yaml in the project root, SHIPIT_* environment
// variables and finally command-line flags.
type Settings struct {
	Remote         string        `mapstructure:"remote"`
	ReturnBranch   string        `mapstructure:"return_branch"`
	StagePattern   string        `mapstructure:"stage_pattern"`
	CommitMessage  string        `mapstructure:"commit_message"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	LogFile        string        `mapstructure:"log_file"`
	Metadata       string        `mapstructure:"metadata"`
	MetadataKey    string        `mapstructure:"metadata_key"`
}

// NewSettingsViper returns a viper instance with shipit defaults, env binding
// and the project settings file registered. Callers may bind flags to it
// before calling LoadSettings.
func NewSettingsViper(root string) *viper.Viper {
	v := viper.New()

	v.SetDefault("remote", "origin")
	v.SetDefault("return_branch", "develop")
	v.SetDefault("stage_pattern", ".")
	v.SetDefault("commit_message", "Released {tag}")
	v.SetDefault("command_timeout", time.Duration(0))
	v.SetDefault("log_file", "")
	v.SetDefault("metadata", DefaultMetadataFile)
	v.SetDefault("metadata_key", DefaultMetadataKey)

	v.SetConfigName(SettingsFileName)
	v.SetConfigType("yaml")
	if root != "" {
		v.AddConfigPath(root)
	}

	v.SetEnvPrefix("SHIPIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// LoadSettings reads the settings file if present and decodes the result
func LoadSettings(v *viper.Viper) (Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, shipiterrors.NewConfigError(SettingsFileName+".yaml", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, shipiterrors.NewConfigError("settings", err)
	}
	if strings.TrimSpace(s.Remote) == "" {
		return Settings{}, shipiterrors.NewConfigError("remote", errors.New("must not be empty"))
	}
	if s.CommandTimeout < 0 {
		return Settings{}, shipiterrors.NewConfigError("command_timeout", errors.New("must not be negative"))
	}
	return s, nil
}
