package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pcacs/rsalab-go/pkg/rsalab"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and backend availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gmp := rsalab.GMPVersion()
			if gmp == "" {
				gmp = "not built"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rsalab-go %s (%s)\n", rsalab.WrapperVersion(), rsalab.Commit)
			fmt.Fprintf(out, "libgmp: %s\n", gmp)
			_, err := fmt.Fprintf(out, "backends: %s\n", strings.Join(availableIDs(), ", "))
			return err
		},
	}
}
