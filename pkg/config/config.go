package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Course timing
	RoundMinutes     float64 `mapstructure:"ROUND_MINUTES"`
	CartLapMinutes   float64 `mapstructure:"CART_LAP_MINUTES"`
	CartServiceStart string  `mapstructure:"CART_SERVICE_START"`

	// Visibility tracking
	ProximityThresholdMeters float64 `mapstructure:"PROXIMITY_THRESHOLD_METERS"`
	VisibilityGreenMinutes   float64 `mapstructure:"VISIBILITY_GREEN_MINUTES"`
	VisibilityYellowMinutes  float64 `mapstructure:"VISIBILITY_YELLOW_MINUTES"`
	VisibilityOrangeMinutes  float64 `mapstructure:"VISIBILITY_ORANGE_MINUTES"`
	PulsingEnabled           bool    `mapstructure:"PULSING_ENABLED"`

	// Sales
	SaleProbability float64 `mapstructure:"SALE_PROBABILITY"`
	SalePrice       float64 `mapstructure:"SALE_PRICE"`

	// Time-stepped simulator
	SimStepSeconds  float64 `mapstructure:"SIM_STEP_SECONDS"`
	SimSnapMeters   float64 `mapstructure:"SIM_SNAP_METERS"`
	SimMaxSteps     int     `mapstructure:"SIM_MAX_STEPS"`

	// Randomness (0 means derive from wall clock)
	RandomSeed int64 `mapstructure:"RANDOM_SEED"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("ROUND_MINUTES", 240.0)
	viper.SetDefault("CART_LAP_MINUTES", 75.0)
	viper.SetDefault("CART_SERVICE_START", "09:00")
	viper.SetDefault("PROXIMITY_THRESHOLD_METERS", 50.0)
	viper.SetDefault("VISIBILITY_GREEN_MINUTES", 20.0)
	viper.SetDefault("VISIBILITY_YELLOW_MINUTES", 40.0)
	viper.SetDefault("VISIBILITY_ORANGE_MINUTES", 60.0)
	viper.SetDefault("PULSING_ENABLED", true)
	viper.SetDefault("SALE_PROBABILITY", 0.35)
	viper.SetDefault("SALE_PRICE", 12.50)
	viper.SetDefault("SIM_STEP_SECONDS", 1.0)
	viper.SetDefault("SIM_SNAP_METERS", 1.0)
	viper.SetDefault("SIM_MAX_STEPS", 100000)
	viper.SetDefault("RANDOM_SEED", 0)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
