package config

import (
	"fmt"
	"strconv"
)

// Environment variables read by the simulator.
const (
	EnvUsername    = "POSTGRES_USERNAME"
	EnvPassword    = "POSTGRES_PASSWORD"
	EnvHost        = "POSTGRES_HOST"
	EnvPort        = "POSTGRES_PORT"
	EnvDatabase    = "POSTGRES_DATABASE"
	EnvSSLMode     = "POSTGRES_SSLMODE"
	EnvDrift       = "ENABLE_DRIFT"
	EnvMetricsPort = "SIMULATOR_METRICS_PORT"
)

// LookupFunc reports the value of an environment variable. os.LookupEnv
// satisfies it.
type LookupFunc func(key string) (string, bool)

// applyEnv overrides file values with any variables that are set.
func (c *SimulatorConfig) applyEnv(lookup LookupFunc) error {
	c.envSet = make(map[string]bool)
	lookup = c.recordPresence(lookup)

	if v, ok := lookup(EnvUsername); ok {
		c.Database.User = v
	}
	if v, ok := lookup(EnvPassword); ok {
		c.Database.Password = v
	}
	if v, ok := lookup(EnvHost); ok {
		c.Database.Host = v
	}
	if v, ok := lookup(EnvDatabase); ok {
		c.Database.Name = v
	}
	if v, ok := lookup(EnvSSLMode); ok {
		c.Database.SSLMode = v
	}
	if v, ok := lookup(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvPort, err)
		}
		c.Database.Port = port
	}

	// Only the exact value "1" turns drift on.
	if v, ok := lookup(EnvDrift); ok {
		c.Simulation.DriftEnabled = v == "1"
	}

	if v, ok := lookup(EnvMetricsPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvMetricsPort, err)
		}
		c.Metrics.Port = port
	}
	return nil
}

// recordPresence wraps lookup so every variable it finds is remembered.
func (c *SimulatorConfig) recordPresence(lookup LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := lookup(key)
		if ok {
			c.envSet[key] = true
		}
		return v, ok
	}
}
