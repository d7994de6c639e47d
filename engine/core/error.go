package core

import (
	"errors"
	"fmt"
)

// ErrSourceUnreadable marks whole-source ingestion failures: missing file,
// unrecognized container, or a container with no usable sheet. A run that
// hits it produces zero records and never reaches matching or delivery.
var ErrSourceUnreadable = errors.New("source unreadable")

// SourceError wraps the underlying cause of a whole-source failure so
// callers can test with errors.Is(err, ErrSourceUnreadable) while keeping
// the original error in the chain.
func SourceError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSourceUnreadable, fmt.Sprintf(format, args...))
}
