package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sabouaram/redpath/internal/redpath"
	"github.com/sabouaram/redpath/internal/rfclient"
	"github.com/sabouaram/redpath/internal/rfconfig"
	"github.com/sabouaram/redpath/internal/rflog"
)

func newRawCmd() *cobra.Command {
	raw := &cobra.Command{
		Use:   "raw",
		Short: "Issue raw redpath queries against a destination",
	}

	raw.AddCommand(newRawGetCmd())

	return raw
}

func newRawGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <redpath>...",
		Short:   "Resolve one or more redpaths against the destination and print their matches",
		Args:    cobra.MinimumNArgs(1),
		RunE:    runRawGet,
		Example: "redpath --host bmc.example.com raw get \"Chassis[*]/Sensors\"",
	}
}

func runRawGet(cmd *cobra.Command, args []string) error {
	if flagHost == "" {
		return fmt.Errorf("--host is required")
	}

	v := viper.New()
	v.Set("host", flagHost)
	v.Set("port", flagPort)
	v.Set("username", flagUser)
	v.Set("password", flagPass)
	v.Set("tls", flagTLS)
	v.Set("verifyServer", flagVerifyServer)
	v.Set("timeout", flagTimeout)

	cfg, err := rfconfig.Load(v)
	if err != nil {
		return err
	}

	paths := make([]redpath.Path, 0, len(args))
	for _, a := range args {
		p, perr := redpath.Parse(a)
		if perr != nil {
			return fmt.Errorf("invalid redpath %q: %w", a, perr)
		}
		paths = append(paths, p)
	}

	client := rfclient.New(cfg.Policy(), rfclient.Credentials{
		Username: cfg.Username,
		Password: cfg.Password,
	})
	defer client.Close()

	scheme := "http"
	if cfg.UseTLS {
		scheme = "https"
	}

	rflog.WithRemote(cfg.Host, cfg.Port).Debug("starting raw get walk")

	return client.Walk(cmd.Context(), scheme, cfg.Host, cfg.Port, rfclient.DefaultBaseURI, paths, func(path, value string) {
		fmt.Printf("%s=%s\n", path, value)
	})
}
