package config

import "github.com/rickgao/homesale-sim/internal/simulator"

// Default values for optional configuration fields.
const (
	DefaultDBPort     = 5432
	DefaultDBName     = "home_price_prediction_service"
	DefaultDBSSLMode  = "prefer"
	DefaultEventTable = "raw_home_sale_events"
)

func (c *SimulatorConfig) applyDefaults() {
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.Name == "" {
		c.Database.Name = DefaultDBName
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.Table == "" {
		c.Database.Table = DefaultEventTable
	}

	if c.Simulation.NoiseStdDev == nil {
		noise := simulator.DefaultNoiseStdDev
		c.Simulation.NoiseStdDev = &noise
	}
}
