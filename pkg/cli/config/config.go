package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/rpad300/godmode-sub015/pkg/domain/model/config"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the application configuration
type AppConfig struct {
	Prompt     string      `toml:"prompt"`
	Persons    []Person    `toml:"person"`
	Dimensions []Dimension `toml:"dimension"`

	path string
}

// Person represents a tracked person configuration
type Person struct {
	ID      string   `toml:"id"`
	Name    string   `toml:"name"`
	Aliases []string `toml:"aliases"`
}

// Validate checks if the Person is valid
func (p *Person) Validate() error {
	id := types.PersonID(p.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid person ID")
	}
	if p.Name == "" {
		return goerr.New("person name is required", goerr.V("id", p.ID))
	}
	return nil
}

// Dimension represents a profile dimension configuration
type Dimension struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Validate checks if the Dimension is valid
func (d *Dimension) Validate() error {
	if d.ID == "" {
		return goerr.New("dimension ID is required")
	}
	if d.Name == "" {
		return goerr.New("dimension name is required", goerr.V("id", d.ID))
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	personIDs := make(map[string]bool)
	for _, p := range a.Persons {
		if err := p.Validate(); err != nil {
			return goerr.Wrap(err, "invalid person")
		}
		if personIDs[p.ID] {
			return goerr.New("duplicate person ID", goerr.V("id", p.ID))
		}
		personIDs[p.ID] = true
	}

	dimensionIDs := make(map[string]bool)
	for _, d := range a.Dimensions {
		if err := d.Validate(); err != nil {
			return goerr.Wrap(err, "invalid dimension")
		}
		if dimensionIDs[d.ID] {
			return goerr.New("duplicate dimension ID", goerr.V("id", d.ID))
		}
		dimensionIDs[d.ID] = true
	}

	return nil
}

// Flags returns CLI flags for application configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to TOML configuration with persons and dimensions",
			Sources:     cli.EnvVars("GODMODE_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads the configuration file when a path was provided and
// converts it for domain use. Without a path an empty config is returned.
func (a *AppConfig) Configure() (*domainConfig.ProfileConfig, error) {
	if a.path == "" {
		return &domainConfig.ProfileConfig{}, nil
	}

	loaded, err := LoadAppConfiguration(a.path)
	if err != nil {
		return nil, err
	}
	*a = *loaded

	return a.ToDomainProfileConfig(), nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}
	config.path = path

	return &config, nil
}

// ToDomainProfileConfig converts AppConfig to domain ProfileConfig
func (a *AppConfig) ToDomainProfileConfig() *domainConfig.ProfileConfig {
	persons := make([]domainConfig.Person, len(a.Persons))
	for i, p := range a.Persons {
		persons[i] = domainConfig.Person{
			ID:      types.PersonID(p.ID),
			Name:    p.Name,
			Aliases: p.Aliases,
		}
	}

	dimensions := make([]domainConfig.Dimension, len(a.Dimensions))
	for i, d := range a.Dimensions {
		dimensions[i] = domainConfig.Dimension{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
		}
	}

	return &domainConfig.ProfileConfig{
		Persons:    persons,
		Dimensions: dimensions,
		Prompt:     a.Prompt,
	}
}
