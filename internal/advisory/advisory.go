// Package advisory asks a generative language model for audit-risk commentary
// on a trip ledger. Any failure is logged and replaced with a fixed fallback;
// callers never receive an error.
package advisory

import (
	"time"

	"github.com/iwvelando/ifta-report/pkg/constants"
)

// Risk levels reported by the model. RiskUnknown is only used by the fallback.
const (
	RiskLow     = "Low"
	RiskMedium  = "Medium"
	RiskHigh    = "High"
	RiskUnknown = "Unknown"
)

// Insights is the audit-risk assessment shown next to the report.
type Insights struct {
	RiskLevel       string   `json:"riskLevel"`
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
}

// Fallback returns the payload used whenever the assessment cannot be made.
func Fallback() Insights {
	return Insights{
		RiskLevel: RiskUnknown,
		Summary:   "The audit scanner encountered an error and could not complete the analysis.",
		Recommendations: []string{
			"Ensure you have imported valid data before scanning.",
			"Verify your network connection.",
			"Manually audit the Fuel Consumed (FJ) vs Fuel Purchased (FPJ) discrepancies.",
		},
	}
}

// Config holds the advisory client settings.
type Config struct {
	Endpoint   string        `mapstructure:"endpoint" yaml:"endpoint"`
	Model      string        `mapstructure:"model" yaml:"model"`
	APIKey     string        `mapstructure:"apikey" yaml:"apiKey"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxRetries int           `mapstructure:"maxretries" yaml:"maxRetries"`
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}

// WithDefaults fills unset fields with the built-in defaults.
func (c Config) WithDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = constants.DefaultAdvisoryEndpoint
	}
	if c.Model == "" {
		c.Model = constants.DefaultAdvisoryModel
	}
	if c.Timeout <= 0 {
		c.Timeout = constants.DefaultAdvisoryTimeoutSeconds * time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return c
}
