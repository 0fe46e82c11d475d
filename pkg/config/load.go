// Package config loads the matrixci CLI configuration and batch manifests.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/matrixci/matrixci/pkg/interpreter"
	"github.com/matrixci/matrixci/pkg/logger"
	"github.com/matrixci/matrixci/pkg/schema"
)

// InitCliConfig loads the configuration from the following locations
// (from lower to higher priority):
// system dir (`/usr/local/etc/matrixci` on Unix, `%LOCALAPPDATA%/matrixci` on Windows),
// home dir (`~/.matrixci`), current directory, ENV vars.
func InitCliConfig() (schema.Configuration, error) {
	v := viper.New()
	var cliConfig schema.Configuration
	v.SetConfigType("yaml")
	v.SetTypeByDefaultValue(true)
	setDefaultConfiguration(v)

	if err := readSystemConfig(v); err != nil {
		return cliConfig, err
	}
	if err := readHomeConfig(v); err != nil {
		return cliConfig, err
	}
	if err := readWorkDirConfig(v); err != nil {
		return cliConfig, err
	}
	if err := readEnvConfigPath(v); err != nil {
		return cliConfig, err
	}

	cliConfig.CliConfigPath = v.ConfigFileUsed()

	if cliConfig.CliConfigPath == "" {
		logger.Debug("'matrixci.yaml' CLI config was not found", "paths", "system dir, home dir, current dir, ENV vars")
		logger.Debug("Using the default CLI config")
	} else if !filepath.IsAbs(cliConfig.CliConfigPath) {
		absPath, err := filepath.Abs(cliConfig.CliConfigPath)
		if err != nil {
			return cliConfig, err
		}
		cliConfig.CliConfigPath = absPath
	}

	if err := v.Unmarshal(&cliConfig); err != nil {
		return cliConfig, err
	}

	return cliConfig, nil
}

// setDefaultConfiguration sets default configuration for the viper instance.
func setDefaultConfiguration(v *viper.Viper) {
	v.SetDefault("logs.file", "/dev/stderr")
	v.SetDefault("logs.level", "Info")
	v.SetDefault("commands.install", "pip install")
	v.SetDefault("commands.uninstall", "pip uninstall -y")
	v.SetDefault("commands.test", "python -m pytest")
	v.SetDefault("interpreter.executable", interpreter.DefaultExecutable)
}

// readSystemConfig loads config from the system dir.
func readSystemConfig(v *viper.Viper) error {
	configFilePath := ""
	if runtime.GOOS == "windows" {
		appDataDir := os.Getenv(WindowsAppDataEnvVar)
		if len(appDataDir) > 0 {
			configFilePath = filepath.Join(appDataDir, "matrixci")
		}
	} else {
		configFilePath = SystemDirConfigFilePath
	}

	if len(configFilePath) > 0 {
		err := mergeConfig(v, configFilePath)
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			return nil
		default:
			return err
		}
	}
	return nil
}

// readHomeConfig loads config from the user's HOME dir.
func readHomeConfig(v *viper.Viper) error {
	home, err := homedir.Dir()
	if err != nil {
		return err
	}
	err = mergeConfig(v, filepath.Join(home, ".matrixci"))
	if err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			return nil
		default:
			return err
		}
	}
	return nil
}

// readWorkDirConfig loads config from the current working directory.
func readWorkDirConfig(v *viper.Viper) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	err = mergeConfig(v, wd)
	if err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			return nil
		default:
			return err
		}
	}
	return nil
}

func readEnvConfigPath(v *viper.Viper) error {
	configPath := os.Getenv(CliConfigPathEnvVar)
	if configPath != "" {
		err := mergeConfig(v, configPath)
		if err != nil {
			switch err.(type) {
			case viper.ConfigFileNotFoundError:
				logger.Debug("config not found via ENV var", "var", CliConfigPathEnvVar, "path", configPath)
				return nil
			default:
				return err
			}
		}
		logger.Debug("Found config via ENV var", "var", CliConfigPathEnvVar, "path", configPath)
	}
	return nil
}

// mergeConfig merges config from the specified path.
func mergeConfig(v *viper.Viper, path string) error {
	v.AddConfigPath(path)
	v.SetConfigName(CliConfigFileName)
	return v.MergeInConfig()
}
