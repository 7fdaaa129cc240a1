// Package ioconfig loads configuration from config.yaml and environment
// variables. This is an impure package that handles file system access.
package ioconfig

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/gnames/gntenant/internal/iofs"
	"github.com/gnames/gntenant/pkg/config"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override
// config.yaml values.
const EnvPrefix = "GNTENANT"

// Load reads config.yaml from the config directory under homeDir and
// applies GNTENANT_* environment variables on top of it. A missing
// config file is not an error: defaults and environment are used.
//
// Values are applied to config.New() through options, so invalid values
// are reported with a warning and replaced by defaults.
func Load(homeDir string) (*config.Config, error) {
	cfgPath := config.ConfigFilePath(homeDir)
	v := viper.New()
	v.SetConfigFile(cfgPath)
	v.SetConfigType("yaml")

	initEnvVars(v)

	if _, err := os.Stat(cfgPath); err == nil {
		if err = v.ReadInConfig(); err != nil {
			return nil, iofs.ReadFileError(cfgPath, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var raw config.Config
	if err := v.Unmarshal(&raw); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	res := config.New()
	res.Update(raw.ToOptions())
	res.Update([]config.Option{config.OptHomeDir(homeDir)})
	return res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions().
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	_ = v.BindEnv("database.host", EnvPrefix+"_DATABASE_HOST")
	_ = v.BindEnv("database.port", EnvPrefix+"_DATABASE_PORT")
	_ = v.BindEnv("database.user", EnvPrefix+"_DATABASE_USER")
	_ = v.BindEnv("database.password", EnvPrefix+"_DATABASE_PASSWORD")
	_ = v.BindEnv("database.database", EnvPrefix+"_DATABASE_DATABASE")
	_ = v.BindEnv("database.ssl_mode", EnvPrefix+"_DATABASE_SSL_MODE")

	// Dump configuration
	_ = v.BindEnv("dump.pg_dump_path", EnvPrefix+"_DUMP_PG_DUMP_PATH")

	// Tenant configuration
	_ = v.BindEnv("tenant.shared_schemas", EnvPrefix+"_TENANT_SHARED_SCHEMAS")
	_ = v.BindEnv("tenant.migrations_dir", EnvPrefix+"_TENANT_MIGRATIONS_DIR")

	// Log configuration
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL")
	_ = v.BindEnv("log.format", EnvPrefix+"_LOG_FORMAT")
	_ = v.BindEnv("log.destination", EnvPrefix+"_LOG_DESTINATION")

	// General configuration
	_ = v.BindEnv("jobs_number", EnvPrefix+"_JOBS_NUMBER")

	v.AutomaticEnv()
}
