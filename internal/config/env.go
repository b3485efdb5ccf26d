package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override config values.
const (
	EnvBackend = "VOLCTL_BACKEND"
	EnvChannel = "VOLCTL_CHANNEL"
	EnvFormat  = "VOLCTL_FORMAT"
)

// ApplyEnvFile overlays overrides from an env file and the process
// environment. Process environment wins over the file. A missing file is
// not an error. If path is empty, uses EnvPath().
func (c *Config) ApplyEnvFile(path string) error {
	if path == "" {
		path = EnvPath()
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		values = map[string]string{}
	}

	for _, key := range []string{EnvBackend, EnvChannel, EnvFormat} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}

	if v := values[EnvBackend]; v != "" {
		c.Backend.Name = v
	}
	if v := values[EnvChannel]; v != "" {
		c.Channel.Name = v
	}
	if v := values[EnvFormat]; v != "" {
		c.Output.Format = v
	}

	return c.Validate()
}
