package config

// SimulatorConfig is the root configuration for a simulator run.
type SimulatorConfig struct {
	Database   DBConfig         `yaml:"database"`
	Simulation SimulationConfig `yaml:"simulation"`
	Metrics    MetricsConfig    `yaml:"metrics"`

	// envSet records which variables were present in the environment, even
	// if empty.
	envSet map[string]bool
}

// DBConfig holds the event store connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	Table    string `yaml:"table"` // Append-only event table
}

// SimulationConfig holds generator settings not given on the command line.
type SimulationConfig struct {
	DriftEnabled bool     `yaml:"drift_enabled"`
	NoiseStdDev  *float64 `yaml:"noise_stddev"` // nil uses the simulator default; 0 disables noise
}

// MetricsConfig holds Prometheus metrics settings. Port 0 disables the server.
type MetricsConfig struct {
	Port int `yaml:"port"`
}
