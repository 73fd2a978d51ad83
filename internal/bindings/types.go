package bindings

import "errors"

// ErrNotBuilt reports that libgmp was not linked into the current binary.
var ErrNotBuilt = errors.New("rsalab/internal/bindings: gmp bindings not built")
