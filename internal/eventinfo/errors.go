package eventinfo

// ClassifyErrorKind distinguishes the ways Classify can refuse an event.
type ClassifyErrorKind string

const (
	// KindMalformed means the top-level shape required to identify the
	// event source is missing or empty, e.g. no detail-type at all, or a
	// recognized source with an empty detail block.
	KindMalformed ClassifyErrorKind = "malformed"
)

// ClassifyError is returned when an inbound event cannot be classified.
// Unknown-but-structurally-sound events are never an error — they come
// back as a SourceUnknown EventInfo instead (see Classify).
type ClassifyError struct {
	Kind   ClassifyErrorKind
	Reason string
}

func (e *ClassifyError) Error() string {
	return "classify event: " + e.Reason
}

// IsMalformed reports whether err is a ClassifyError of kind Malformed.
func IsMalformed(err error) bool {
	ce, ok := err.(*ClassifyError)
	return ok && ce.Kind == KindMalformed
}
