package rsalab

import (
	"errors"

	"github.com/pcacs/rsalab-go/internal/bindings"
)

// RemapError converts bindings layer errors to public API errors.
// This is exported for use by the arith package.
func RemapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, bindings.ErrNotBuilt) {
		return ErrNotBuilt
	}
	return err
}
