package provider

import (
	"fmt"

	"github.com/petasbytes/genie-annotate/internal/config"
	"github.com/petasbytes/genie-annotate/internal/genie"
)

// NewGenieClient returns a Genie client for the workspace named in cfg.
func NewGenieClient(cfg *config.Config) (*genie.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	timeout, _ := cfg.TimeoutDuration()
	return genie.NewClient(cfg.Host, genie.Options{Token: cfg.Token, Timeout: timeout}), nil
}
