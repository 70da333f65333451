package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/themis/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// Catalog holds CLI flags for the regulation metadata table served by
// the regulations endpoint.
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog-config",
			Usage:       "Path to TOML file overriding the regulation metadata table",
			Sources:     cli.EnvVars("THEMIS_CATALOG_CONFIG"),
			Destination: &c.path,
		},
	}
}

// Configure loads the regulation metadata table. Without a config file
// the builtin table applies.
func (c *Catalog) Configure() (*domainConfig.CatalogConfig, error) {
	if c.path == "" {
		return domainConfig.DefaultCatalog(), nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, goerr.Wrap(ErrConfigNotFound, err.Error(), goerr.V("path", c.path))
	}

	var cfg domainConfig.CatalogConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", c.path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V("path", c.path))
	}

	return &cfg, nil
}
