package commands

import (
	"github.com/spf13/cobra"

	"github.com/pcacs/rsalab-go/pkg/rsalab"
	"github.com/pcacs/rsalab-go/pkg/rsalab/arith"
	"github.com/pcacs/rsalab-go/pkg/rsalab/bench"
	"github.com/pcacs/rsalab-go/pkg/rsalab/logging"
)

func newBenchCommand(opts *rootOptions) *cobra.Command {
	var (
		backends []string
		bits     []int
		keyPairs int
		messages int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare backends over a sweep of key sizes",
		Long: `Build key pairs and round trip random messages on every listed backend, then
replay the first backend's keys on the others and require identical results.
The sweep comes from the config file; flags override it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			switch {
			case flags.Changed("backends"):
				cfg.Bench.Backends = backends
			case opts.configPath == "":
				cfg.Bench.Backends = availableIDs()
			}
			if flags.Changed("bits") {
				cfg.Bench.BitLengths = bits
			}
			if flags.Changed("key-pairs") {
				cfg.Bench.KeyPairs = keyPairs
			}
			if flags.Changed("messages") {
				cfg.Bench.Messages = messages
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.NewFromSettings(cfg.Logging)
			if err != nil {
				return err
			}
			resolved, err := bench.Resolve(cfg.Bench.Backends)
			if err != nil {
				return rsalab.RemapError(err)
			}
			h, err := bench.NewHarness(*cfg, resolved, logger)
			if err != nil {
				return err
			}

			report, runErr := h.Run(cmd.Context())
			if report != nil {
				if err := report.WriteTable(cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			return runErr
		},
	}
	cmd.Flags().StringSliceVar(&backends, "backends", nil, "backends to compare; the first is the reference")
	cmd.Flags().IntSliceVar(&bits, "bits", nil, "modulus sizes to sweep")
	cmd.Flags().IntVar(&keyPairs, "key-pairs", 0, "key pairs per backend and size")
	cmd.Flags().IntVar(&messages, "messages", 0, "messages per key pair")
	return cmd
}

// availableIDs lists the backends this binary can run, so the default sweep
// works without libgmp.
func availableIDs() []string {
	var ids []string
	for _, id := range arith.Available() {
		ids = append(ids, id.String())
	}
	return ids
}
