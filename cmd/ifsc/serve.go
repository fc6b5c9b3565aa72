package main

import (
	"github.com/spf13/cobra"
	"github.com/voxtmault/ifsc-integration/server"
)

func serveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve lookups over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := server.NewAPI(a.ii.Service, a.ii.Registry)
			return server.Serve(cmd.Context(), &a.ii.Config.HTTPConfig, api.Router())
		},
	}
}
