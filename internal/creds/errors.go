package creds

// AcquireErrorKind distinguishes the ways Broker.Acquire can fail.
type AcquireErrorKind string

const (
	KindAccessDenied AcquireErrorKind = "access_denied"
)

// AcquireError is returned when credentials cannot be acquired for a
// tenant. The handler surfaces it as a 5xx so the host may retry.
type AcquireError struct {
	Kind   AcquireErrorKind
	Reason string
}

func (e *AcquireError) Error() string {
	return "acquire credentials: " + e.Reason
}

// IsAccessDenied reports whether err is an AcquireError denoting access
// denied.
func IsAccessDenied(err error) bool {
	ae, ok := err.(*AcquireError)
	return ok && ae.Kind == KindAccessDenied
}
