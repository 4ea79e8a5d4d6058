// Package config handles export pipeline configuration loading and management.
package config

// Config holds all exporter settings.
type Config struct {
	Budget     BudgetConfig     `yaml:"budget"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// BudgetConfig holds the complexity budget weights and limit.
type BudgetConfig struct {
	TriangleWeight int `yaml:"triangle_weight"`
	LightWeight    int `yaml:"light_weight"`
	ColliderWeight int `yaml:"collider_weight"`
	Limit          int `yaml:"limit"`
}

// ClassifierConfig holds the unsupported-content allow-lists.
type ClassifierConfig struct {
	// AllowedComponents lists fully-qualified (or plain) type names of
	// auxiliary components that must not be flagged, such as the companion
	// data objects the host rendering pipeline attaches next to lights and
	// cameras.
	AllowedComponents []string `yaml:"allowed_components"`
	// AllowedScripts lists type names or qualified names of scripted
	// components that are explicitly trusted.
	AllowedScripts []string `yaml:"allowed_scripts"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Budget: BudgetConfig{
			TriangleWeight: 1,
			LightWeight:    100,
			ColliderWeight: 4,
			Limit:          100000,
		},
		Classifier: ClassifierConfig{
			AllowedComponents: []string{
				"rendering.AdditionalLightData",
				"rendering.AdditionalCameraData",
			},
			AllowedScripts: nil,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
