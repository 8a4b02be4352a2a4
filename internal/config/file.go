package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/boxbuddy/boxbuddy/internal/platform"
)

// Config file keys, also used as flag names by the command-line front-end
const (
	FileKeyTool      = "tool"
	FileKeyTerminal  = "terminal"
	FileKeyHistoryDB = "history_db"
	FileKeyLogFile   = "log_file"
)

// EnvPrefix is prepended to upper-cased keys, e.g. BOXBUDDY_TERMINAL
const EnvPrefix = "BOXBUDDY"

// FileConfig is the optional YAML config shared by the front-ends
type FileConfig struct {
	Tool      string `mapstructure:"tool"`
	Terminal  string `mapstructure:"terminal"`
	HistoryDB string `mapstructure:"history_db"`
	LogFile   string `mapstructure:"log_file"`
}

// NewViper returns a viper instance with defaults and env binding
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(FileKeyTool, platform.DistroboxCommand)
	v.SetDefault(FileKeyTerminal, "")
	v.SetDefault(FileKeyHistoryDB, platform.DefaultHistoryPath())
	v.SetDefault(FileKeyLogFile, platform.DefaultLogPath())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadFile reads the config into v and returns the merged result. An
// explicit path must exist; without one the user config dir is searched
// and a missing file is not an error.
func LoadFile(v *viper.Viper, path string) (FileConfig, error) {
	v.SetConfigType(platform.ConfigFileType)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(platform.ConfigFileName)
		if dir, err := platform.ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return FileConfig{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var fc FileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return FileConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	fc.Tool = strings.TrimSpace(fc.Tool)
	if fc.Tool == "" {
		fc.Tool = platform.DistroboxCommand
	}
	fc.Terminal = strings.TrimSpace(fc.Terminal)
	if fc.Terminal == TerminalAuto {
		fc.Terminal = ""
	}
	return fc, nil
}
