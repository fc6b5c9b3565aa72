package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/voxtmault/ifsc-integration/render"
)

func lookupCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup <code>",
		Short: "Look up a single IFSC code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome := a.ii.Service.Lookup(cmd.Context(), args[0])

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(outcome); err != nil {
					return eris.Wrap(err, "encoding outcome")
				}
			} else if err := render.Write(cmd.OutOrStdout(), outcome); err != nil {
				return err
			}

			if !outcome.IsSuccess() {
				return errLookupFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw outcome as JSON")

	return cmd
}
