package orchestrator

import (
	"context"
	"fmt"

	"github.com/opsguild/c7n-hub/internal/awsclients"
	"github.com/opsguild/c7n-hub/internal/config"
	"github.com/opsguild/c7n-hub/internal/creds"
	"github.com/opsguild/c7n-hub/internal/engine"
	"github.com/opsguild/c7n-hub/internal/invocation"
	"github.com/opsguild/c7n-hub/internal/notify"
	"github.com/opsguild/c7n-hub/internal/policyfile"
)

// Build assembles an Orchestrator from the runtime's ambient AWS
// credentials and environment configuration — the wiring both cmd/hub-handler
// and cmd/hub-invoke share.
func Build(ctx context.Context, cfg *config.Config, dryRun bool) (*Orchestrator, error) {
	ambient, err := awsclients.LoadAmbient(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ambient aws config: %w", err)
	}

	hubClients := awsclients.New(ambient)

	broker := &creds.Broker{
		HubAccountID:     cfg.HubAccountID,
		AmbientConfig:    ambient,
		RoleName:         cfg.CrossAccountRoleName,
		ExternalIDPrefix: cfg.ExternalIDPrefix,
	}

	publisher := &notify.Publisher{Client: hubClients.SQS(), QueueURL: cfg.NotifyQueueURL}

	var ledger *invocation.Store
	if cfg.LedgerDSN != "" {
		ledger, err = invocation.NewStore(invocation.StoreConfig{DSN: cfg.LedgerDSN})
		if err != nil {
			return nil, fmt.Errorf("open idempotence ledger: %w", err)
		}
	}

	return &Orchestrator{
		PolicyBucket:      cfg.PolicyBucket,
		AccountMappingKey: cfg.AccountMappingKey,
		Store:             awsclients.NewS3Store(hubClients.S3()),
		Broker:            broker,
		PolicyCache:       policyfile.NewCache(awsclients.NewS3Store(hubClients.S3()), cfg.PolicyBucket, ""),
		Engine:            &engine.Adapter{Publisher: publisher},
		NotifyClient:      hubClients.SQS(),
		NotifyQueue:       cfg.NotifyQueueURL,
		Ledger:            ledger,
		DryRun:            dryRun,
	}, nil
}
