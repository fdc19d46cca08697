package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nGeneration failed; see log above.\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root, _ := newRootCmdWithFlags()
	return root
}

// newRootCmdWithFlags also returns the flag values bound to the commands.
func newRootCmdWithFlags() (*cobra.Command, *flags) {
	f := &flags{}
	root := &cobra.Command{
		Use:   "readingplan",
		Short: "Generate a printable one-year Bible reading plan",
		Long: `readingplan spreads every chapter of the Bible over a year of days,
groups each day's chapters into ranges, tags them with a section and
prints the calendar as a multi-column landscape PDF.

Settings come from the environment (and an optional .env file); flags
override them.

Examples:
  readingplan                                  # 2026_Bible_Reading_Plan.pdf
  readingplan -o plans/2027.pdf --start 2027-01-01
  readingplan --variant full -o s3://plans/2026-full.pdf
  readingplan schedule | grep PROPHETS
  readingplan status <run-id>                  # needs REDIS_URL`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, f)
		},
	}
	f.register(root)
	root.AddCommand(newScheduleCmd(f), newStatusCmd(f))
	return root, f
}
