// Package configuration loads and validates the ACS's configuration.
package configuration

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"acs/pkg/helpers"
	"acs/pkg/logger"
	"acs/pkg/model"

	"github.com/creasty/defaults"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

type envVars struct {
	ConfigYAML string `envconfig:"APP_CONFIG_YAML" required:"true"`
}

// New parses the config file named by the APP_CONFIG_YAML environment
// variable, applies defaults, and validates the result.
func New(ctx context.Context) (*model.Cfg, error) {
	log := logger.NewSimple("configuration")
	log.Info("Read environmental variable")

	env := envVars{}
	if err := envconfig.Process("", &env); err != nil {
		return nil, err
	}

	configPath := env.ConfigYAML

	cfg := &model.Cfg{}

	if err := defaults.Set(cfg); err != nil {
		return nil, err
	}

	configFile, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, err
	}

	fileInfo, err := os.Stat(configPath)
	if err != nil {
		return nil, err
	}

	if fileInfo.IsDir() {
		return nil, errors.New("config is a folder")
	}

	if err := yaml.Unmarshal(configFile, cfg); err != nil {
		return nil, err
	}

	if err := helpers.CheckSimple(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
