// Package main implements hub-handler — the host-agnostic entry point that
// runs one control-plane event through the orchestrator. It reads a single
// JSON event object from stdin and writes a {statusCode, body} response as
// JSON to stdout, mirroring the shape a Lambda runtime would pass to and
// expect back from a handler function, without depending on any specific
// Lambda SDK.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/opsguild/c7n-hub/internal/config"
	"github.com/opsguild/c7n-hub/internal/logging"
	"github.com/opsguild/c7n-hub/internal/orchestrator"
)

// defaultInvocationBudget is the assumed remaining execution time when the
// host doesn't communicate one via INVOCATION_DEADLINE_MS.
const defaultInvocationBudget = 60 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		writeResult(orchestrator.Result{Success: false, Error: err.Error()}, 500)
		os.Exit(1)
	}
	logging.InitJSON(cfg.LogLevel)

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		slog.Error("failed to read event from stdin", "error", err)
		writeResult(orchestrator.Result{Success: false, Error: err.Error()}, 400)
		os.Exit(1)
	}

	var event map[string]any
	if err := json.Unmarshal(raw, &event); err != nil {
		slog.Error("malformed event payload", "error", err)
		writeResult(orchestrator.Result{Success: false, Error: "malformed event payload: " + err.Error()}, 400)
		os.Exit(1)
	}

	deadline := time.Now().Add(invocationBudget())
	invocationID := os.Getenv("INVOCATION_ID")
	if invocationID == "" {
		invocationID = uuid.NewString()
	}

	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()

	orch, err := orchestrator.Build(ctx, cfg, os.Getenv("DRY_RUN") == "true")
	if err != nil {
		slog.Error("failed to build orchestrator", "error", err)
		writeResult(orchestrator.Result{Success: false, Error: err.Error()}, 500)
		os.Exit(1)
	}

	result, statusCode := orch.Handle(ctx, event, invocationID, deadline)
	writeResult(result, statusCode)
	if statusCode >= 400 {
		os.Exit(1)
	}
}

func invocationBudget() time.Duration {
	ms := os.Getenv("INVOCATION_DEADLINE_MS")
	if ms == "" {
		return defaultInvocationBudget
	}
	var n int64
	if _, err := fmt.Sscanf(ms, "%d", &n); err != nil || n <= 0 {
		return defaultInvocationBudget
	}
	return time.Duration(n) * time.Millisecond
}

type response struct {
	StatusCode int                 `json:"statusCode"`
	Body       orchestrator.Result `json:"body"`
}

func writeResult(result orchestrator.Result, statusCode int) {
	out, err := json.Marshal(response{StatusCode: statusCode, Body: result})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to marshal result:", err)
		return
	}
	fmt.Println(string(out))
}
