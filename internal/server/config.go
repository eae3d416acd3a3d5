package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/ifta-report/internal/config"
	"github.com/iwvelando/ifta-report/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address       string               `yaml:"address"`
	MaxUploadSize string               `yaml:"maxUploadSize"`
	ConfigFile    string               `yaml:"configFile"` // report config with rates, ledger, and advisory settings
	Logging       config.LoggingConfig `yaml:"logging"`
	CORS          CORSConfig           `yaml:"cors"`
	RateLimit     RateLimitConfig      `yaml:"rateLimit"`

	uploadSizeBytes int64
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// RateLimitConfig bounds calls to the advisory endpoint per client.
type RateLimitConfig struct {
	AdvisoryPerMinute int `yaml:"advisoryPerMinute"`
	AdvisoryBurst     int `yaml:"advisoryBurst"`
}

func defaultConfig() *Config {
	return &Config{
		Address:       constants.DefaultServerAddress,
		MaxUploadSize: fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes),
		Logging:       config.LoggingConfig{},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		RateLimit: RateLimitConfig{
			AdvisoryPerMinute: constants.DefaultAdvisoryRequestsPerMinute,
			AdvisoryBurst:     constants.DefaultAdvisoryBurst,
		},
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
	}
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UploadSizeBytes returns the configured upload size in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// SetUploadSizeBytes overrides the configured upload size.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size > 0 {
		c.uploadSizeBytes = size
		c.MaxUploadSize = fmt.Sprintf("%d", size)
	}
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.RateLimit.AdvisoryPerMinute <= 0 {
		c.RateLimit.AdvisoryPerMinute = constants.DefaultAdvisoryRequestsPerMinute
	}
	if c.RateLimit.AdvisoryBurst <= 0 {
		c.RateLimit.AdvisoryBurst = constants.DefaultAdvisoryBurst
	}

	origins := c.CORS.AllowedOrigins[:0]
	for _, origin := range c.CORS.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.CORS.AllowedOrigins = origins

	sizeStr := strings.TrimSpace(c.MaxUploadSize)
	if sizeStr == "" {
		c.uploadSizeBytes = constants.DefaultMaxUploadSizeBytes
		c.MaxUploadSize = fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 || (n != 0 && result/multiplier != n) {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
