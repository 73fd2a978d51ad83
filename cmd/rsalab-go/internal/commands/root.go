// Package commands implements the rsalab-go subcommands.
package commands

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/pcacs/rsalab-go/pkg/rsalab"
	"github.com/pcacs/rsalab-go/pkg/rsalab/arith"
	"github.com/pcacs/rsalab-go/pkg/rsalab/keygen"
	"github.com/pcacs/rsalab-go/pkg/rsalab/logging"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	backend    string
	inverse    string
	logLevel   string
	certainty  int
	seed       int64
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "rsalab-go",
		Short: "Textbook RSA over interchangeable big-integer backends",
		Long: `rsalab-go builds unpadded RSA keys, encrypts and decrypts integers with them,
and compares the pure Go arithmetic backend with the libgmp one.

This is a teaching tool. Nothing it produces is secure: there is no padding and
no constant-time arithmetic. The gmp backend is only present in binaries built
with cgo and -tags gmp.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "JSON config file")
	flags.StringVar(&opts.backend, "backend", "", "arithmetic backend: native or gmp")
	flags.StringVar(&opts.inverse, "inverse", "", "private exponent method: backend or euclid")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warning or error")
	flags.IntVar(&opts.certainty, "certainty", 0, "primality certainty exponent")
	flags.Int64Var(&opts.seed, "seed", 0, "random seed (default: clock for keygen, config seed for bench)")

	root.AddCommand(
		newKeygenCommand(opts),
		newEncryptCommand(opts),
		newDecryptCommand(opts),
		newBenchCommand(opts),
		newVersionCommand(),
	)
	return root
}

// load reads the config file, if any, and applies flag overrides.
func (o *rootOptions) load(cmd *cobra.Command) (*rsalab.Config, error) {
	cfg := rsalab.DefaultConfig()
	if o.configPath != "" {
		loaded, err := rsalab.LoadConfig(o.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", o.configPath, err)
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = o.backend
	}
	if flags.Changed("inverse") {
		cfg.InverseMethod = o.inverse
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("certainty") {
		cfg.Certainty = o.certainty
	}
	if flags.Changed("seed") {
		cfg.Bench.Seed = o.seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// random returns the source for one-shot commands: seeded when --seed was
// given, clock-seeded otherwise.
func (o *rootOptions) random(cmd *cobra.Command) *rand.Rand {
	if cmd.Flags().Changed("seed") {
		return rand.New(rand.NewSource(o.seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// session is what the key commands need: a logger, a backend and a
// generator over it.
type session struct {
	cfg       *rsalab.Config
	logger    logging.Logger
	backend   arith.Backend
	generator *keygen.Generator
}

func (o *rootOptions) session(cmd *cobra.Command) (*session, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromSettings(cfg.Logging)
	if err != nil {
		return nil, err
	}
	id, err := arith.ParseID(cfg.Backend)
	if err != nil {
		return nil, err
	}
	backend, err := arith.New(id)
	if err != nil {
		return nil, rsalab.RemapError(err)
	}
	gen, err := keygen.NewGenerator(backend, &keygen.Params{
		Certainty:           cfg.Certainty,
		Rand:                o.random(cmd),
		MaxExponentAttempts: cfg.MaxExponentAttempts,
		InverseMethod:       keygen.InverseMethod(cfg.InverseMethod),
		Logger:              logger,
	})
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, backend: backend, generator: gen}, nil
}
