package config

import (
	"errors"
	"fmt"
)

// ErrMissingEnv is returned when a required store credential is not set.
var ErrMissingEnv = errors.New("must specify environment variable")

// Validate checks that values are in range. Store credentials are checked
// separately since a dry run needs none.
func (c *SimulatorConfig) Validate() error {
	if c.Simulation.NoiseStdDev != nil && *c.Simulation.NoiseStdDev < 0 {
		return fmt.Errorf("simulation.noise_stddev must be >= 0, got %v", *c.Simulation.NoiseStdDev)
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 0 and 65535, got %d", c.Metrics.Port)
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("database.port must be between 1 and 65535, got %d", c.Database.Port)
	}
	if c.Database.Table == "" {
		return errors.New("database.table is required")
	}
	return nil
}

// validate reports the first missing credential, in the order the
// environment variables are documented. A credential is missing when the
// file left it empty and its variable is not set; a variable set to the
// empty string counts as given.
func (db *DBConfig) validate(envSet map[string]bool) error {
	credentials := []struct {
		value string
		env   string
	}{
		{db.User, EnvUsername},
		{db.Password, EnvPassword},
		{db.Host, EnvHost},
	}
	for _, c := range credentials {
		if c.value == "" && !envSet[c.env] {
			return fmt.Errorf("%w %s", ErrMissingEnv, c.env)
		}
	}
	if db.Name == "" {
		return errors.New("database.name is required")
	}
	return nil
}
