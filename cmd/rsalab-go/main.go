// Command rsalab-go generates textbook RSA keys, encrypts and decrypts
// integers with them, and benchmarks the arithmetic backends against each
// other.
package main

import (
	"log"
	"os"

	"github.com/pcacs/rsalab-go/cmd/rsalab-go/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}
