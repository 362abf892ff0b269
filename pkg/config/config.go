package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/replicate/modelget/pkg/logging"
	"github.com/replicate/modelget/pkg/optname"
)

const (
	EnvPrefix        = "MODELGET"
	DefaultModelsDir = "assets/models"

	// SourcesKey is a config-file-only key mapping catalog entry names to replacement
	// source URL lists.
	SourcesKey = "sources"
)

func AddRootPersistentFlags(cmd *cobra.Command) error {
	// Persistent Flags (applies to all commands/subcommands)
	cmd.PersistentFlags().String(optname.Config, "", "Path to a config file (yaml, json or toml)")
	cmd.PersistentFlags().Duration(optname.ConnTimeout, 10*time.Second, "Timeout for establishing a connection, format is <number><unit>, e.g. 10s")
	cmd.PersistentFlags().StringP(optname.ModelsDir, "d", DefaultModelsDir, "Directory models are written to, created if absent")
	cmd.PersistentFlags().String(optname.MaxSize, "0", "Refuse downloads larger than this size (e.g. 200M), 0 disables the limit")
	cmd.PersistentFlags().BoolP(optname.Verbose, "v", false, "Verbose mode (equivalent to --log-level debug)")
	cmd.PersistentFlags().String(optname.LoggingLevel, "info", "Log level (debug, info, warn, error)")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
		return fmt.Errorf("failed to bind persistent flags: %w", err)
	}
	return nil
}

// AddDownloadFlags registers the flags shared by every subcommand that fetches files.
func AddDownloadFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP(optname.Force, "f", false, "Force download, overwriting existing file")
	cmd.Flags().BoolP(optname.Decompress, "z", false, "Decompress gzip/bzip2/xz/lz4/lzw payloads before writing")
}

// BindCommandFlags binds the local flags of the command being executed. Subcommands share
// flag names, so binding happens at run time rather than at construction; otherwise the
// last command constructed would own the viper key.
func BindCommandFlags(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	return nil
}

func PersistentStartupProcessFlags() error {
	if viper.GetBool(optname.Verbose) {
		viper.Set(optname.LoggingLevel, "debug")
	}
	setLogLevel(viper.GetString(optname.LoggingLevel))
	return readConfigFile(viper.GetString(optname.Config))
}

func readConfigFile(path string) error {
	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}
	logger := logging.GetLogger()
	logger.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("Config")
	return nil
}

// SourceOverrides returns the catalog source overrides declared in the config file.
func SourceOverrides() map[string][]string {
	overrides := make(map[string][]string)
	// entry names contain dots, so values are read from the raw map rather than by key path
	for name, value := range viper.GetStringMap(SourcesKey) {
		urls := cast.ToStringSlice(value)
		if len(urls) > 0 {
			overrides[name] = urls
		}
	}
	return overrides
}

func setLogLevel(logLevel string) {
	// Set log-level
	switch logLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
