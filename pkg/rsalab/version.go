package rsalab

import "github.com/pcacs/rsalab-go/internal/bindings"

var (
	Version = "v0.0.0-in-progress"
	Commit  = "unknown"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// GMPVersion describes the linked multiprecision library, or returns an
// empty string when the binary was built without libgmp.
func GMPVersion() string {
	return bindings.Version()
}
