package notify

import (
	"context"
	"log/slog"
)

// Rendered is one notification ready to leave the process, after
// template substitution.
type Rendered struct {
	PolicyName string
	Account    string
	Region     string
	Subject    string
	Body       string
}

// OutboundChannel is the extension point for wherever rendered
// notifications actually go (chat, email, paging). The transports
// themselves live outside this module; the host binds a real channel.
type OutboundChannel interface {
	Send(ctx context.Context, r Rendered) error
}

// LogChannel is the default OutboundChannel: it logs the rendered
// notification structurally instead of delivering it anywhere.
type LogChannel struct{}

func (LogChannel) Send(_ context.Context, r Rendered) error {
	slog.Info("notification",
		"policy", r.PolicyName,
		"account", r.Account,
		"region", r.Region,
		"subject", r.Subject,
	)
	return nil
}
