package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/fread/envelope"
)

// Config is the optional YAML configuration file. Flags override it and
// FREAD_* environment variables sit between the two.
type Config struct {
	Log  LogConfig  `yaml:"log"`
	Read ReadConfig `yaml:"read"`
	Mail MailConfig `yaml:"mail"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // text or json
	File       string `yaml:"file"`   // empty means stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// ReadConfig holds defaults for the read command.
type ReadConfig struct {
	Format     string `yaml:"format"`
	TreeFormat string `yaml:"tree_format"`
	Indent     int    `yaml:"indent"`
	Border     string `yaml:"border"`
	Color      bool   `yaml:"color"`
}

// MailConfig holds defaults for the mail command.
type MailConfig struct {
	envelope.Templates `yaml:",inline"`
	Format             string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	var c Config
	applyDefaults(&c)
	return &c
}

// LoadFile loads and parses a YAML config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	applyDefaults(&c)
	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 28
	}
	if c.Read.Format == "" {
		c.Read.Format = "fields"
	}
	if c.Read.TreeFormat == "" {
		c.Read.TreeFormat = "text"
	}
	if c.Read.Indent == 0 {
		c.Read.Indent = 2
	}
	if c.Read.Border == "" {
		c.Read.Border = "rounded"
	}
	if c.Mail.Format == "" {
		c.Mail.Format = "fields"
	}
	c.Mail.Templates = c.Mail.WithDefaults()
}

// applyEnv overrides c from FREAD_* environment variables.
func applyEnv(c *Config) {
	c.Log.Level = getEnvString("FREAD_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvString("FREAD_LOG_FORMAT", c.Log.Format)
	c.Log.File = getEnvString("FREAD_LOG_FILE", c.Log.File)
	c.Log.Compress = getEnvBool("FREAD_LOG_COMPRESS", c.Log.Compress)
	c.Read.Format = getEnvString("FREAD_FORMAT", c.Read.Format)
	c.Read.TreeFormat = getEnvString("FREAD_TREE_FORMAT", c.Read.TreeFormat)
	c.Read.Indent = getEnvInt("FREAD_INDENT", c.Read.Indent)
	c.Read.Color = getEnvBool("FREAD_COLOR", c.Read.Color)
	c.Mail.From = getEnvString("FREAD_MAIL_FROM", c.Mail.From)
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
