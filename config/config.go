// Package config loads engine options from a configuration file and the environment.
//
// Any format understood by viper (YAML, TOML, JSON, ...) is accepted. Keys are snake case;
// every key can be overridden by an environment variable prefixed with CMDFLOW_, for example
// CMDFLOW_LOG_LEVEL=debug.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/napalu/cmdflow"
	"github.com/napalu/cmdflow/errs"
	"github.com/napalu/cmdflow/types"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix prefixes the environment variables read by Load
const EnvPrefix = "CMDFLOW"

// File mirrors the configurable subset of cmdflow.Options. Unset keys leave the engine
// default in place.
type File struct {
	Separator          *string `mapstructure:"separator"`
	Comparison         *string `mapstructure:"comparison"`
	RunMode            *string `mapstructure:"run_mode"`
	IgnoreExtraArgs    *bool   `mapstructure:"ignore_extra_args"`
	MultiMatch         *string `mapstructure:"multi_match"`
	ClassTypesNullable *bool   `mapstructure:"class_types_nullable"`
	QuotedTokens       *bool   `mapstructure:"quoted_tokens"`
	PanicRecovery      *bool   `mapstructure:"panic_recovery"`
	SuggestionDistance *int    `mapstructure:"suggestion_distance"`
	KebabCaseAliases   *bool   `mapstructure:"kebab_case_aliases"`
	LogLevel           *string `mapstructure:"log_level"`
	Language           *string `mapstructure:"language"`
}

var keys = []string{
	"separator",
	"comparison",
	"run_mode",
	"ignore_extra_args",
	"multi_match",
	"class_types_nullable",
	"quoted_tokens",
	"panic_recovery",
	"suggestion_distance",
	"kebab_case_aliases",
	"log_level",
	"language",
}

// Load reads path and the environment and returns the matching engine configuration. A
// missing file is not an error; an empty path reads the environment only.
func Load(path string) ([]cmdflow.ConfigureEngineFunc, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return f.Configs()
}

// LoadFile decodes path and the environment into a File
func LoadFile(path string) (File, error) {
	reader := viper.New()
	reader.SetEnvPrefix(EnvPrefix)
	reader.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys {
		if err := reader.BindEnv(key); err != nil {
			return File{}, errs.ErrConfigFile.WithArgs(path).Wrap(err)
		}
	}

	if path != "" {
		info, statErr := os.Stat(path)
		switch {
		case statErr == nil && info.IsDir():
			return File{}, errs.ErrConfigFile.WithArgs(path).Wrap(fmt.Errorf("%s is a directory", path))
		case statErr == nil:
			reader.SetConfigFile(path)
			if err := reader.ReadInConfig(); err != nil {
				return File{}, errs.ErrConfigFile.WithArgs(path).Wrap(err)
			}
		case !os.IsNotExist(statErr):
			return File{}, errs.ErrConfigFile.WithArgs(path).Wrap(statErr)
		}
	}

	var f File
	if err := reader.Unmarshal(&f); err != nil {
		return File{}, errs.ErrConfigFile.WithArgs(path).Wrap(err)
	}
	return f, nil
}

// Configs converts f to engine configuration functions, validating enumerated values
func (f File) Configs() ([]cmdflow.ConfigureEngineFunc, error) {
	var configs []cmdflow.ConfigureEngineFunc

	if f.Separator != nil {
		configs = append(configs, cmdflow.WithSeparator(*f.Separator))
	}
	if f.Comparison != nil {
		cmp, err := types.ParseComparison(*f.Comparison)
		if err != nil {
			return nil, errs.ErrInvalidOptionValue.WithArgs(*f.Comparison, "comparison").Wrap(err)
		}
		configs = append(configs, cmdflow.WithComparison(cmp))
	}
	if f.RunMode != nil {
		mode, err := types.ParseRunMode(*f.RunMode)
		if err != nil {
			return nil, errs.ErrInvalidOptionValue.WithArgs(*f.RunMode, "run_mode").Wrap(err)
		}
		configs = append(configs, cmdflow.WithDefaultRunMode(mode))
	}
	if f.IgnoreExtraArgs != nil {
		configs = append(configs, cmdflow.WithDefaultIgnoreExtraArgs(*f.IgnoreExtraArgs))
	}
	if f.MultiMatch != nil {
		policy, err := types.ParseMultiMatchPolicy(*f.MultiMatch)
		if err != nil {
			return nil, errs.ErrInvalidOptionValue.WithArgs(*f.MultiMatch, "multi_match").Wrap(err)
		}
		configs = append(configs, cmdflow.WithDefaultMultiMatch(policy))
	}
	if f.ClassTypesNullable != nil {
		configs = append(configs, cmdflow.WithClassTypesNullable(*f.ClassTypesNullable))
	}
	if f.QuotedTokens != nil {
		configs = append(configs, cmdflow.WithQuotedTokens(*f.QuotedTokens))
	}
	if f.PanicRecovery != nil {
		configs = append(configs, cmdflow.WithPanicRecovery(*f.PanicRecovery))
	}
	if f.SuggestionDistance != nil {
		configs = append(configs, cmdflow.WithSuggestionDistance(*f.SuggestionDistance))
	}
	if f.KebabCaseAliases != nil && *f.KebabCaseAliases {
		configs = append(configs, cmdflow.KebabCaseAliases())
	}
	if f.LogLevel != nil {
		configs = append(configs, cmdflow.WithLogLevel(*f.LogLevel))
	}
	if f.Language != nil {
		tag, err := language.Parse(*f.Language)
		if err != nil {
			return nil, errs.ErrInvalidOptionValue.WithArgs(*f.Language, "language").Wrap(err)
		}
		configs = append(configs, cmdflow.WithLanguage(tag))
	}

	return configs, nil
}
