// Package notify implements the real-time notification pipeline: it
// builds the message envelope policy notify-actions write to the
// internal queue, and drains that queue once the per-event policy pass
// completes, rendering each message's template and publishing it on the
// outbound channel.
package notify

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Envelope is the notify-action payload carried on the internal queue.
type Envelope struct {
	PolicyName    string           `json:"policy.name"`
	ActionTmpl    string           `json:"action.template"`
	ActionSubject string           `json:"action.subject"`
	ViolationDesc string           `json:"action.violation_desc"`
	Account       string           `json:"account"`
	Region        string           `json:"region"`
	Resources     []map[string]any `json:"resources"`
	Event         map[string]any   `json:"event"`
}

// Encode serializes the envelope to JSON, zlib-compresses it, and
// base64-encodes the result — the wire shape every queue consumer
// expects for the message body.
func Encode(env Envelope) (string, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("marshal envelope: %w", err)
	}

	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("compress envelope: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("compress envelope: %w", err)
	}

	return base64.StdEncoding.EncodeToString(compressed.Bytes()), nil
}

// Decode reverses Encode.
func Decode(body string) (Envelope, error) {
	var env Envelope

	raw, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return env, fmt.Errorf("base64 decode envelope: %w", err)
	}

	r, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return env, fmt.Errorf("decompress envelope: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return env, fmt.Errorf("decompress envelope: %w", err)
	}

	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return env, nil
}
