package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML renders the redacted configuration.
func (c *Config) YAML() ([]byte, error) {
	r := c.Redacted()
	out, err := yaml.Marshal(&r)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}
