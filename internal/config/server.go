// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ServerConfig holds process settings for the serve and mcp commands.
// Values come from an optional YAML file, overridden by the environment.
type ServerConfig struct {
	Addr              string        `yaml:"addr" env:"CSVWIDGETS_ADDR" env-default:":8080" env-description:"HTTP listen address"`
	PagesDir          string        `yaml:"pages_dir" env:"CSVWIDGETS_PAGES_DIR" env-default:"." env-description:"Directory holding page files"`
	ReadTimeout       time.Duration `yaml:"read_timeout" env:"CSVWIDGETS_READ_TIMEOUT" env-default:"10s" env-description:"HTTP read timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout" env:"CSVWIDGETS_WRITE_TIMEOUT" env-default:"60s" env-description:"HTTP write timeout"`
	RenderTimeout     time.Duration `yaml:"render_timeout" env:"CSVWIDGETS_RENDER_TIMEOUT" env-default:"30s" env-description:"Time limit for one page render"`
	RenderConcurrency int           `yaml:"render_concurrency" env:"CSVWIDGETS_RENDER_CONCURRENCY" env-default:"4" env-description:"Widgets rendered in parallel per page"`
	UseDefaults       bool          `yaml:"use_defaults" env:"CSVWIDGETS_USE_DEFAULTS" env-default:"true" env-description:"Apply the global page defaults file"`

	GitHubToken string `yaml:"-" env:"GITHUB_TOKEN" env-description:"Token for github repositories"`
	S3AccessKey string `yaml:"-" env:"CSVWIDGETS_S3_ACCESS_KEY" env-description:"Access key for s3 repositories"`
	S3SecretKey string `yaml:"-" env:"CSVWIDGETS_S3_SECRET_KEY" env-description:"Secret key for s3 repositories"`
}

// LoadServer reads the server settings. An empty path reads the
// environment only.
func LoadServer(path string) (*ServerConfig, error) {
	var cfg ServerConfig
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("read server config: %w", err)
	}
	if cfg.RenderConcurrency < 1 {
		cfg.RenderConcurrency = 1
	}
	return &cfg, nil
}

// Credentials returns the content source secrets.
func (c *ServerConfig) Credentials() Credentials {
	return Credentials{
		GitHubToken: c.GitHubToken,
		S3AccessKey: c.S3AccessKey,
		S3SecretKey: c.S3SecretKey,
	}
}

// Usage describes the environment variables ServerConfig reads.
func Usage() string {
	var cfg ServerConfig
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
