package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration assembled from MT_* environment variables.
type Config struct {
	DBType string
	DBPath string
	DBDSN  string

	HTTPHostPort string
	GRPCHostPort string

	SessionSecret string
	SessionTTL    time.Duration

	DefaultRate  float64
	DefaultBurst int
}

// DevelopmentSessionSecret signs sessions only when GO_ENV=development and MT_SESSION_SECRET is unset.
const DevelopmentSessionSecret = "development-session-secret"

// LoadConfig reads the environment (populated from .env by the caller) and returns a validated Config.
func LoadConfig() (*Config, error) {
	return loadConfig(true)
}

// LoadStoreConfig is LoadConfig for tools that only open the database, so no session secret
// is required.
func LoadStoreConfig() (*Config, error) {
	return loadConfig(false)
}

func loadConfig(serving bool) (*Config, error) {
	cfg := Config{
		DBType:        strings.TrimSpace(os.Getenv(EnvKeyMTDBType)),
		DBPath:        strings.TrimSpace(os.Getenv(EnvKeyMTDbPath)),
		DBDSN:         strings.TrimSpace(os.Getenv(EnvKeyMTDbDSN)),
		HTTPHostPort:  strings.TrimSpace(os.Getenv(EnvKeyMTHttpHostPort)),
		GRPCHostPort:  strings.TrimSpace(os.Getenv(EnvKeyMTGrpcHostPort)),
		SessionSecret: os.Getenv(EnvKeyMTSessionSecret),
	}

	var errs []string

	if v := strings.TrimSpace(os.Getenv(EnvKeyMTSessionTTL)); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, "MT_SESSION_TTL should be a duration such as 12h")
		}
		cfg.SessionTTL = ttl
	}

	if v := strings.TrimSpace(os.Getenv(EnvKeyMTDefaultRate)); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, "MT_DEFAULT_RATE should be a float64 value")
		}
		cfg.DefaultRate = rate
	}

	if v := strings.TrimSpace(os.Getenv(EnvKeyMTDefaultBurst)); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, "MT_DEFAULT_BURST should be an int value")
		}
		cfg.DefaultBurst = burst
	}

	cfg.applyDefaults()
	errs = append(errs, cfg.validate()...)
	if serving {
		errs = append(errs, cfg.resolveSessionSecret()...)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DBType == "" {
		c.DBType = "file"
	}
	if c.DBPath == "" {
		c.DBPath = "maintenance.db"
	}
	if c.HTTPHostPort == "" {
		c.HTTPHostPort = ":5000"
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = 12 * time.Hour
	}
	if c.DefaultRate == 0 {
		c.DefaultRate = 5
	}
	if c.DefaultBurst == 0 {
		c.DefaultBurst = 10
	}
}

func (c *Config) validate() []string {
	var errs []string
	switch c.DBType {
	case "file", "memory":
	case "mysql":
		if c.DBDSN == "" {
			errs = append(errs, "MT_DB_DSN is required when MT_DB_TYPE=mysql")
		}
	default:
		errs = append(errs, "unknown MT_DB_TYPE: "+c.DBType)
	}
	return errs
}

func (c *Config) resolveSessionSecret() []string {
	if c.SessionSecret != "" {
		return nil
	}
	if !IsDevelopment() {
		return []string{"MT_SESSION_SECRET is required unless GO_ENV=development"}
	}
	c.SessionSecret = DevelopmentSessionSecret
	return nil
}
