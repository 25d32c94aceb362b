package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sigquery/internal/domain"
)

func fingerprintCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the fingerprint of a sealed party key",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := appCtx.Identities.Load(name, appCtx.Config.Passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("Fingerprint: %s\n", id.Fingerprint())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", domain.Requester.String(), "party name (requester or responder)")
	return cmd
}
