package config

import "fmt"

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be >= 0")
	}
	if c.ToolDelay < 0 {
		return fmt.Errorf("tool delay must be >= 0")
	}
	if c.BatchLimit <= 0 {
		return fmt.Errorf("batch limit must be > 0")
	}
	return nil
}
