package orchestrator

import "github.com/opsguild/c7n-hub/internal/awsclients"

// tenantSession implements engine.SessionProvider for one tenant's
// assumed credentials.
type tenantSession struct {
	clients  *awsclients.Clients
	tenantID string
	region   string
}

func (s tenantSession) Clients() *awsclients.Clients { return s.clients }
func (s tenantSession) TenantID() string             { return s.tenantID }
func (s tenantSession) Region() string               { return s.region }
