// Package cli wires up the cobra command surface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputJSON   bool
	debugLogs    bool
	platformFlag string
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jreleaser",
		Short: "Release pipeline tool manager",
	}

	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&platformFlag, "platform", "", "Descriptor platform key (linux, osx, windows)")

	cmd.AddCommand(newToolsCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}
