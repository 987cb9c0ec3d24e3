// Package config loads the runtime's environment-variable inputs into
// one typed struct, validated once at startup.
package config

import (
	"fmt"
	"os"
)

const (
	defaultAccountMappingKey = "config/account-policy-mapping.json"
	defaultCrossAccountRole  = "CloudCustodianExecutionRole"
	defaultExternalIDPrefix  = "cloud-custodian"
)

// Config is the runtime's environment-derived configuration.
type Config struct {
	// PolicyBucket is the object-storage bucket holding policies and the
	// account mapping. Required.
	PolicyBucket string

	// AccountMappingKey is the key of the mapping file within PolicyBucket.
	AccountMappingKey string

	// CrossAccountRoleName is the role name assumed in member accounts.
	CrossAccountRoleName string

	// ExternalIDPrefix prefixes the deterministic external id.
	ExternalIDPrefix string

	// HubAccountID is this deployment's own account id — the credential
	// broker bypasses AssumeRole when a tenant equals this id.
	HubAccountID string

	// NotifyQueueURL is the internal queue notify-actions publish to and
	// the drain pass reads back from.
	NotifyQueueURL string

	// LogLevel is the LOG_LEVEL input the entry points hand to
	// internal/logging; this package is the only reader of the env var.
	LogLevel string

	// LedgerDSN, when set, enables the optional idempotence ledger
	// (internal/invocation.Store). Empty disables it: every policy runs
	// every time, and no state survives across invocations.
	LedgerDSN string
}

// Load reads the runtime configuration from the environment. It fails
// only when a field with no sane default is missing.
func Load() (*Config, error) {
	cfg := &Config{
		PolicyBucket:         os.Getenv("POLICY_BUCKET"),
		AccountMappingKey:    getenvDefault("ACCOUNT_MAPPING_KEY", defaultAccountMappingKey),
		CrossAccountRoleName: getenvDefault("CROSS_ACCOUNT_ROLE_NAME", defaultCrossAccountRole),
		ExternalIDPrefix:     getenvDefault("EXTERNAL_ID_PREFIX", defaultExternalIDPrefix),
		HubAccountID:         os.Getenv("HUB_ACCOUNT_ID"),
		NotifyQueueURL:       os.Getenv("NOTIFY_QUEUE_URL"),
		LogLevel:             getenvDefault("LOG_LEVEL", "info"),
		LedgerDSN:            os.Getenv("LEDGER_DSN"),
	}

	if cfg.PolicyBucket == "" {
		return nil, fmt.Errorf("POLICY_BUCKET is required")
	}
	if cfg.HubAccountID == "" {
		return nil, fmt.Errorf("HUB_ACCOUNT_ID is required")
	}
	if cfg.NotifyQueueURL == "" {
		return nil, fmt.Errorf("NOTIFY_QUEUE_URL is required")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
