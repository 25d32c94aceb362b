package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sigquery/internal/domain"
)

func keygenCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create or rotate a party key and store it sealed",
		RunE: func(cmd *cobra.Command, args []string) error {
			passphrase := appCtx.Config.Passphrase
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			_, fp, err := appCtx.Identities.Generate(name, passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("Key created for %s.\nFingerprint: %s\n", name, fp)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", domain.Requester.String(), "party name (requester or responder)")
	return cmd
}
