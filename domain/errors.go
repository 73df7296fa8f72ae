package domain

import "errors"

// Engine error taxonomy. Construction failures (malformed input, training)
// are fatal at startup; query failures are mapped to client responses at the
// REST boundary with errors.Is.
var (
	ErrMalformedInput = errors.New("malformed input data")
	ErrModelTraining  = errors.New("model training failed")
	ErrUnknownUser    = errors.New("unknown user")
	ErrNotClustered   = errors.New("clusters not computed yet")
)
