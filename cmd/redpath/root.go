// Command redpath retrieves and filters data from Redfish-style management
// endpoints over HTTP(S), following one or more redpaths from a
// configurable base URI. It mirrors the subcommand surface of
// original_source/src/rtool.cpp's main(): "raw get" and the still-stub
// "sensor list". Signal handling and crash-dump capture are out of scope
// (see SPEC_FULL.md §2.4); a panic here is recovered and reported as a
// plain error instead.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sabouaram/redpath/internal/rflog"
)

var (
	flagHost         string
	flagPort         string
	flagUser         string
	flagPass         string
	flagTLS          bool
	flagVerifyServer bool
	flagVerbose      bool
	flagTimeout      string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "redpath",
		Short:        "Walk Redfish endpoints following a set of redpaths",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				rflog.SetLevel(logrus.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&flagHost, "host", "", "destination host (required)")
	root.PersistentFlags().StringVar(&flagPort, "port", "443", "destination port")
	root.PersistentFlags().StringVar(&flagUser, "user", "", "Basic-auth username")
	root.PersistentFlags().StringVar(&flagPass, "pass", "", "Basic-auth password")
	root.PersistentFlags().BoolVar(&flagTLS, "tls", true, "connect over TLS")
	root.PersistentFlags().BoolVar(&flagVerifyServer, "verify-server", true, "verify the destination's TLS certificate")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flagTimeout, "timeout", "30s", "per-phase connection timeout (duration.Parse notation, e.g. \"30s\", \"2m\")")

	_ = viper.BindPFlags(root.PersistentFlags())

	root.AddCommand(newRawCmd(), newSensorCmd())

	return root
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "redpath: fatal: %v\n", r)
			os.Exit(1)
		}
	}()

	if flagVerbose {
		rflog.SetLevel(logrus.DebugLevel)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
