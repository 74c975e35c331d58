package config

import (
	"errors"
	"strings"

	"github.com/anisan-cli/avbridge/constant"
	"github.com/anisan-cli/avbridge/filesystem"
	"github.com/anisan-cli/avbridge/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads defaults, environment overrides and the config file if one exists.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, k := range EnvExposed {
		viper.MustBindEnv(k)
	}

	viper.SetTypeByDefaultValue(true)
	for k, field := range Default {
		viper.SetDefault(k, field.Value)
	}

	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}
