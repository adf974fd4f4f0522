// Package config holds the service configuration: the HTTP port, the
// environment name, and the URLs of the three remote datasets, loaded
// from a local JSON file or a remote URL.
package config

import (
	"sync"

	"github.com/lmalottucsd/bikewatching/internal/models"
)

// Config holds all the configuration settings for the application.
type Config struct {
	Port int
	Env  string

	mu      sync.RWMutex
	Sources models.DataSources
}

// NewConfig creates a new Config.
func NewConfig(port int, env string, sources models.DataSources) *Config {
	return &Config{
		Port:    port,
		Env:     env,
		Sources: sources,
	}
}

// UpdateSources safely replaces the dataset sources.
func (cfg *Config) UpdateSources(sources models.DataSources) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.Sources = sources
}

// GetSources safely returns the current dataset sources.
func (cfg *Config) GetSources() models.DataSources {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.Sources
}
