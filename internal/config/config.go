// Package config loads the optional jot.yaml file found at a vault root.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up at the vault root.
const FileName = "jot.yaml"

// EnvSMSAPIKey overrides sms.api-key when set.
const EnvSMSAPIKey = "JOT_SMS_API_KEY"

// Config is the vault configuration.
type Config struct {
	// File is the absolute path the configuration was read from.
	File string `yaml:"-"`

	Adapter    string       `yaml:"adapter" default:"fs" validate:"oneof=fs memory sqlite badger"`
	Key        string       `yaml:"key" default:"notes" validate:"required,excludesall=/\\,ne=.,ne=.."`
	TimeLayout string       `yaml:"time-layout" default:"2006-01-02 15:04:05" validate:"required"`
	Server     ServerConfig `yaml:"server"`
	SMS        SMSConfig    `yaml:"sms"`
}

// ServerConfig configures `jot serve`.
type ServerConfig struct {
	Addr string `yaml:"addr" default:":8080" validate:"required"`
	// ReadTimeout and WriteTimeout are in seconds.
	ReadTimeout  int `yaml:"read-timeout" default:"15" validate:"gte=0"`
	WriteTimeout int `yaml:"write-timeout" default:"30" validate:"gte=0"`
}

// SMSConfig configures the mNotify client.
type SMSConfig struct {
	APIKey   string `yaml:"api-key"`
	Sender   string `yaml:"sender" default:"Jot" validate:"required,max=11"`
	Message  string `yaml:"message"`
	Endpoint string `yaml:"endpoint" default:"https://api.mnotify.com/api/sms/quick" validate:"required,url"`
}

// Enabled reports whether an API key is available.
func (s SMSConfig) Enabled() bool {
	return s.APIKey != ""
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	c := new(Config)
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("failed to set config defaults: %w", err)
	}
	c.applyEnv()
	return c, nil
}

// Load reads path, falling back to defaults when the file does not exist.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	c := new(Config)
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("failed to set config defaults: %w", err)
	}
	c.File = abs

	data, err := os.ReadFile(abs)
	switch {
	case errors.Is(err, os.ErrNotExist):
		c.File = ""
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", abs, err)
		}
		// Fill fields present in the file but left empty.
		if err := defaults.Set(c); err != nil {
			return nil, fmt.Errorf("failed to set config defaults: %w", err)
		}
	}

	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadDir reads jot.yaml from dir.
func LoadDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, FileName))
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the configuration back to File.
// An API key supplied through the environment is not written.
func (c *Config) Save() error {
	if c.File == "" {
		return errors.New("config has no file path")
	}
	out := *c
	if env := os.Getenv(EnvSMSAPIKey); env != "" && env == out.SMS.APIKey {
		out.SMS.APIKey = ""
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.File, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if key := os.Getenv(EnvSMSAPIKey); key != "" {
		c.SMS.APIKey = key
	}
}
