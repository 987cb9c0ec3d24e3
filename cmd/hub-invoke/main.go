// Package main implements hub-invoke — a local CLI for driving the
// orchestrator against a saved event file, without a Lambda runtime in
// the loop.
//
// Exit codes:
//
//	0  invocation succeeded, every policy ran to success
//	1  invocation succeeded but at least one policy failed or was skipped past its deadline
//	2  invocation rejected (malformed event, config or credential failure)
//	3  usage or local I/O error (bad flags, unreadable event file)
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/opsguild/c7n-hub/internal/config"
	"github.com/opsguild/c7n-hub/internal/logging"
	"github.com/opsguild/c7n-hub/internal/orchestrator"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("hub-invoke", flag.ContinueOnError)
	eventFile := fs.String("event-file", "", "Path to a JSON control-plane event (required)")
	deadline := fs.Duration("deadline", 60*time.Second, "Remaining invocation budget to simulate")
	dryRun := fs.Bool("dry-run", false, "Match and log policies without running actions")
	asJSON := fs.Bool("json", false, "Print the raw response JSON instead of a summary")
	invocationID := fs.String("invocation-id", "", "Correlation id for this run (default: a generated uuid)")
	logLevel := fs.String("log-level", "", "Log verbosity for this run (default: the LOG_LEVEL env var)")

	if err := fs.Parse(args); err != nil {
		return 3
	}

	if *eventFile == "" {
		fmt.Fprintln(os.Stderr, "usage: hub-invoke --event-file path/to/event.json [--deadline 60s] [--dry-run] [--json]")
		return 3
	}

	raw, err := os.ReadFile(*eventFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error reading event file:", err)
		return 3
	}

	var event map[string]any
	if err := json.Unmarshal(raw, &event); err != nil {
		fmt.Fprintln(os.Stderr, "error parsing event file:", err)
		return 3
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		return 3
	}

	level := *logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	logging.Init(level)

	id := *invocationID
	if id == "" {
		id = uuid.NewString()
	}

	dl := time.Now().Add(*deadline)
	ctx, cancel := context.WithDeadline(context.Background(), dl)
	defer cancel()

	orch, err := orchestrator.Build(ctx, cfg, *dryRun)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error building orchestrator:", err)
		return 3
	}

	result, statusCode := orch.Handle(ctx, event, id, dl)

	if *asJSON {
		out, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(out))
	} else {
		printSummary(result, statusCode, id)
	}

	if statusCode >= 400 {
		return 2
	}
	if result.PoliciesFailed > 0 {
		return 1
	}
	for _, pr := range result.Results {
		if pr.Status == "deadline_exceeded" {
			return 1
		}
	}
	return 0
}

func printSummary(result orchestrator.Result, statusCode int, invocationID string) {
	fmt.Printf("invocation %s: %s (status %d)\n", invocationID, result.EventName, statusCode)
	fmt.Printf("  account=%s region=%s\n", result.AccountID, result.Region)
	if result.Error != "" {
		fmt.Printf("  error: %s\n", result.Error)
		return
	}
	fmt.Printf("  policies: %d executed, %d successful, %d failed\n",
		result.PoliciesExecuted, result.PoliciesSuccessful, result.PoliciesFailed)
	fmt.Printf("  notifications: %d sent, %d sqs messages drained\n",
		result.RealtimeNotificationsSent, result.SQSMessagesProcessed)
	for _, pr := range result.Results {
		fmt.Printf("  - %-30s %-12s matched=%d action=%v\n", pr.PolicyName, pr.Status, pr.ResourcesMatched, pr.ActionTaken)
		if pr.Error != "" {
			fmt.Printf("      %s\n", pr.Error)
		}
	}
}
