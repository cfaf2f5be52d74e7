package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ShayCichocki/cascade/internal/config"
	"github.com/ShayCichocki/cascade/internal/gateway"
	"github.com/ShayCichocki/cascade/internal/registry"
	"github.com/ShayCichocki/cascade/internal/stage"
)

// buildGateway constructs the model gateway and its underlying client from
// configuration.
func buildGateway(cfg *config.Config) (*gateway.Anthropic, *gateway.Client, error) {
	client, err := gateway.NewClient(gateway.ClientConfig{
		APIKey:        cfg.Anthropic.APIKey,
		UseAWSBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create API client: %w", err)
	}
	return gateway.NewAnthropic(client), client, nil
}

// buildRunner constructs a stage runner backed by the configured gateway.
// The client is returned alongside for token usage reporting.
func buildRunner(cfg *config.Config) (*stage.Runner, *gateway.Client, error) {
	gw, client, err := buildGateway(cfg)
	if err != nil {
		return nil, nil, err
	}
	return stage.NewRunner(gw), client, nil
}

// buildRegistry returns the worker capability registry: the built-in
// defaults, extended by a capabilities file. With no configured path, a
// project-local .cascade/capabilities.yaml is picked up when present.
func buildRegistry(cfg *config.Config) (*registry.Registry, error) {
	reg := registry.Defaults()

	path := cfg.Registry.Path
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return reg, nil
		}
		local := filepath.Join(cwd, ".cascade", "capabilities.yaml")
		if _, err := os.Stat(local); err != nil {
			return reg, nil
		}
		path = local
	}

	if err := reg.LoadFile(path); err != nil {
		return nil, fmt.Errorf("load capabilities from %s: %w", path, err)
	}
	return reg, nil
}
