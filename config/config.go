// Package config registers the configuration keys and loads them with viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/shikisync/shikisync/constant"
	"github.com/shikisync/shikisync/filesystem"
	"github.com/shikisync/shikisync/key"
	"github.com/shikisync/shikisync/shikimori"
	"github.com/shikisync/shikisync/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads defaults, environment bindings and the config file, in increasing priority.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}

// Shikimori builds the client configuration from the current settings.
func Shikimori() shikimori.Config {
	return shikimori.Config{
		BaseURL:      viper.GetString(key.ShikimoriBaseURL),
		ClientID:     viper.GetString(key.ShikimoriClientID),
		ClientSecret: viper.GetString(key.ShikimoriClientSecret),
		RedirectURI:  viper.GetString(key.ShikimoriRedirectURI),
	}
}

// Timeout is the overall limit for a single HTTP request.
func Timeout() time.Duration {
	seconds := viper.GetInt(key.ShikimoriTimeout)
	if seconds <= 0 {
		return time.Minute
	}
	return time.Duration(seconds) * time.Second
}
