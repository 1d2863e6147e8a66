package fixtures

import "errors"

// ErrInvalid is returned when the documents pass their schemas but contradict each other.
var ErrInvalid = errors.New("inconsistent fixtures")
