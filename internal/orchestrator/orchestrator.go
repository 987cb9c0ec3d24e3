package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/opsguild/c7n-hub/internal/awsclients"
	"github.com/opsguild/c7n-hub/internal/creds"
	"github.com/opsguild/c7n-hub/internal/engine"
	"github.com/opsguild/c7n-hub/internal/eventinfo"
	"github.com/opsguild/c7n-hub/internal/filterbuild"
	"github.com/opsguild/c7n-hub/internal/invocation"
	"github.com/opsguild/c7n-hub/internal/mapping"
	"github.com/opsguild/c7n-hub/internal/notify"
	"github.com/opsguild/c7n-hub/internal/policyfile"
)

// DeadlineSafetyMargin is subtracted from the platform's remaining
// execution budget: once less than this remains, no new policy starts.
const DeadlineSafetyMargin = 5 * time.Second

// Orchestrator wires the classifier, resolver, credential broker,
// filter builder, engine adapter, and notification drain into one
// invocation handler.
type Orchestrator struct {
	PolicyBucket      string
	AccountMappingKey string

	Store        mapping.ObjectStore
	Broker       *creds.Broker
	PolicyCache  *policyfile.Cache
	Engine       *engine.Adapter
	NotifyClient notify.SQSAPI
	NotifyQueue  string
	Channel      notify.OutboundChannel

	// Ledger, when non-nil, short-circuits a replayed (event, policy)
	// pair to its previously computed result instead of re-running the
	// policy and re-firing its actions.
	Ledger *invocation.Store

	// DryRun, when true, is forwarded to every policy execution: filters
	// and matching still run, but no action fires.
	DryRun bool
}

// Handle runs one event through the full pipeline and returns the
// response body plus the HTTP-style status code to report to the host.
func (o *Orchestrator) Handle(ctx context.Context, rawEvent map[string]any, invocationID string, deadline time.Time) (Result, int) {
	event, err := eventinfo.Classify(rawEvent)
	if err != nil {
		return Result{Success: false, Error: err.Error()}, 400
	}

	// SourceAccountID carries the identity-hint fallback Classify applies
	// when the top-level account field is absent.
	accountID := event.SourceAccountID
	region := event.Region

	mappingDoc, err := mapping.Load(ctx, o.Store, o.PolicyBucket, o.AccountMappingKey)
	if err != nil {
		slog.Error("failed to load policy mapping", "error", err)
		return Result{Success: false, AccountID: accountID, Region: region, EventName: event.EventName, Error: err.Error()}, 500
	}

	refs := mapping.Resolve(accountID, event.EventName, mappingDoc)
	result := Result{AccountID: accountID, Region: region, EventName: event.EventName, Success: true}
	if len(refs) == 0 {
		return result, 200
	}

	session, err := o.Broker.Acquire(ctx, accountID, region)
	if err != nil {
		slog.Error("failed to acquire tenant credentials", "tenant_id", accountID, "error", err)
		return Result{Success: false, AccountID: accountID, Region: region, EventName: event.EventName, Error: err.Error()}, 500
	}

	clients := awsclients.New(session.Config)
	sess := tenantSession{clients: clients, tenantID: accountID, region: region}
	invctx := invocation.Context{CorrelationID: invocationID, TenantID: accountID, Deadline: deadline}
	eventKey := invocation.EventKey(rawEvent)

	// Run grouped by source file, in each file's first-appearance order:
	// a file holding several referenced policies is fetched once and its
	// named subset runs back to back.
	grouped := mapping.GroupByFile(refs)
	byKey := make(map[string]mapping.PolicyRef, len(refs))
	seenFile := make(map[string]bool, len(grouped))
	var fileOrder []string
	for _, ref := range refs {
		key := ref.SourceFile + "\x00" + ref.PolicyName
		if _, ok := byKey[key]; !ok {
			byKey[key] = ref
		}
		if !seenFile[ref.SourceFile] {
			seenFile[ref.SourceFile] = true
			fileOrder = append(fileOrder, ref.SourceFile)
		}
	}

	for _, file := range fileOrder {
		for _, policyName := range grouped[file] {
			ref := byKey[file+"\x00"+policyName]

			if invctx.Expired(DeadlineSafetyMargin) {
				result.Results = append(result.Results, PolicyResult{
					PolicyName:   ref.PolicyName,
					SourceFile:   ref.SourceFile,
					ResourceType: ref.ResourceType,
					Status:       statusDeadlineExceeded,
				})
				continue
			}

			if o.Ledger != nil && eventKey != "" {
				var cached PolicyResult
				if hit, err := o.Ledger.Get(ctx, eventKey, ref.PolicyName, &cached); err != nil {
					slog.Warn("idempotence ledger lookup failed", "policy", ref.PolicyName, "error", err)
				} else if hit {
					result.Results = append(result.Results, cached)
					result.PoliciesExecuted++
					if cached.Status == statusSuccess {
						result.PoliciesSuccessful++
					} else {
						result.PoliciesFailed++
					}
					continue
				}
			}

			pr := o.runOne(ctx, invctx, ref, event, sess)
			if o.Ledger != nil && eventKey != "" {
				if err := o.Ledger.Put(ctx, eventKey, ref.PolicyName, pr); err != nil {
					slog.Warn("idempotence ledger write failed", "policy", ref.PolicyName, "error", err)
				}
			}
			result.Results = append(result.Results, pr)
			result.PoliciesExecuted++
			switch pr.Status {
			case statusSuccess:
				result.PoliciesSuccessful++
			default:
				result.PoliciesFailed++
			}
		}
	}

	if result.PoliciesSuccessful > 0 && o.NotifyClient != nil {
		accountName, environment := accountInfo(mappingDoc, accountID)
		drainResult, err := notify.Drain(ctx, o.NotifyClient, o.NotifyQueue, invocationID, accountName, environment, o.channel())
		if err != nil {
			slog.Error("notification drain failed", "invocation_id", invocationID, "error", err)
		}
		result.SQSMessagesProcessed = drainResult.Processed
		result.RealtimeNotificationsSent = drainResult.Published
	}

	return result, 200
}

func (o *Orchestrator) runOne(ctx context.Context, invctx invocation.Context, ref mapping.PolicyRef, event *eventinfo.EventInfo, sess engine.SessionProvider) PolicyResult {
	pr := PolicyResult{PolicyName: ref.PolicyName, SourceFile: ref.SourceFile, ResourceType: ref.ResourceType}

	file, err := o.PolicyCache.Get(ctx, ref.SourceFile)
	if err != nil {
		pr.Status = statusFailed
		pr.Error = err.Error()
		return pr
	}
	pol := file.ByName(ref.PolicyName)
	if pol == nil {
		pr.Status = statusFailed
		pr.Error = "policy " + ref.PolicyName + " not found in " + ref.SourceFile
		return pr
	}

	build := filterbuild.Build(ctx, sess.Clients(), event, ref.ResourceType)
	execResult := o.Engine.Execute(ctx, invctx, *pol, event, sess, build.Filters, build.ProvidedResources, o.DryRun)

	pr.ResourcesMatched = execResult.ResourcesMatched
	pr.ActionTaken = execResult.ActionTaken
	if execResult.Error != "" {
		pr.Status = statusFailed
		pr.Error = execResult.Error
	} else {
		pr.Status = statusSuccess
	}
	return pr
}

func (o *Orchestrator) channel() notify.OutboundChannel {
	if o.Channel != nil {
		return o.Channel
	}
	return notify.LogChannel{}
}

func accountInfo(m *mapping.Mapping, tenantID string) (name, environment string) {
	if m == nil {
		return tenantID, ""
	}
	if acct, ok := m.AccountMapping[tenantID]; ok {
		name = acct.Name
		environment = acct.Environment
	}
	if name == "" {
		name = tenantID
	}
	return name, environment
}
