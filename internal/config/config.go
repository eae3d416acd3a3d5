// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/iwvelando/ifta-report/internal/advisory"
	"github.com/iwvelando/ifta-report/internal/ifta"
	"github.com/iwvelando/ifta-report/pkg/constants"
	"github.com/spf13/viper"
)

// DateLayout is the format expected for trip dates in config files.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for ifta-report.
type Configuration struct {
	// Rates overrides entries of the built-in rate table. Keys are
	// jurisdiction codes plus DEFAULT.
	Rates    map[string]float64 `yaml:"rates,omitempty"`
	Trips    []TripConfig       `yaml:"trips,omitempty"`
	Logging  LoggingConfig      `yaml:"logging,omitempty"`
	Output   OutputConfig       `yaml:"output,omitempty"`
	Advisory advisory.Config    `yaml:"advisory,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, spreadsheet, pdf
	File   string `yaml:"file,omitempty"`   // optional destination, required for pdf unless defaulted
}

// TripConfig is a trip as written in the ledger section of the config file.
type TripConfig struct {
	ID            string        `yaml:"id,omitempty"`
	Date          string        `yaml:"date"`
	TruckID       string        `yaml:"truckId"`
	OdometerStart float64       `yaml:"odometerStart"`
	OdometerEnd   float64       `yaml:"odometerEnd"`
	TotalMiles    float64       `yaml:"totalMiles,omitempty"`
	TotalFuel     float64       `yaml:"totalFuel,omitempty"`
	Breakdown     []EntryConfig `yaml:"breakdown"`
}

// EntryConfig is one jurisdiction line of a ledger trip.
type EntryConfig struct {
	State string  `yaml:"state"`
	Miles float64 `yaml:"miles"`
	Fuel  float64 `yaml:"fuel"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys that never appear in the file still need binding to be read
	// from the environment during Unmarshal.
	_ = v.BindEnv("advisory.apikey", constants.EnvPrefix+"_ADVISORY_API_KEY", "API_KEY")
	_ = v.BindEnv("advisory.endpoint")
	_ = v.BindEnv("advisory.model")
	_ = v.BindEnv("logging.level")
	_ = v.BindEnv("output.format")

	v.SetDefault("advisory.maxretries", constants.DefaultAdvisoryMaxRetries)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := configuration.RateTable().Validate(); err != nil {
		return nil, fmt.Errorf("invalid rates: %w", err)
	}
	return &configuration, nil
}

// RateTable returns the built-in rate table with the configured rates applied
// on top.
func (c *Configuration) RateTable() ifta.RateTable {
	return ifta.DefaultRates().Merge(ifta.RateTable(c.Rates))
}

// AdvisoryConfig returns the advisory settings with defaults applied.
func (c *Configuration) AdvisoryConfig() advisory.Config {
	return c.Advisory.WithDefaults()
}

// Dump renders the configuration for debug logging with secrets masked.
func (c *Configuration) Dump() string {
	masked := *c
	if masked.Advisory.APIKey != "" {
		masked.Advisory.APIKey = "********"
	}
	return spew.Sdump(masked)
}
