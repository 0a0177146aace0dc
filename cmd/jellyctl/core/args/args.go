// Package args holds cobra.PositionalArgs validators that print the command
// help before reporting a wrong number of arguments.
package args

import (
	"fmt"

	"github.com/spf13/cobra"
)

func usageError(cmd *cobra.Command, format string, a ...any) error {
	_ = cmd.Help()
	fmt.Fprintln(cmd.OutOrStdout())

	return fmt.Errorf(format, a...)
}

func MinimumNArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usageError(cmd, "requires at least %d arg(s), only received %d", n, len(args))
		}

		return nil
	}
}

func MaximumNArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return usageError(cmd, "accepts at most %d arg(s), received %d", n, len(args))
		}

		return nil
	}
}

// RangeArgs accepts between minArgs and maxArgs arguments, both included.
func RangeArgs(minArgs, maxArgs int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < minArgs || len(args) > maxArgs {
			return usageError(cmd, "accepts between %d and %d arg(s), received %d", minArgs, maxArgs, len(args))
		}

		return nil
	}
}

func ExactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError(cmd, "accepts %d arg(s), received %d", n, len(args))
		}

		return nil
	}
}

// NoArgs rejects any argument. The first one is most likely a mistyped
// subcommand, so it is named in the error.
func NoArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError(cmd, "unknown command %q for %q", args[0], cmd.CommandPath())
	}

	return nil
}
