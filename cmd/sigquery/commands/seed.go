package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sigquery/internal/store"
)

func seedCmd() *cobra.Command {
	var script string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a SQL script into the database (demo data by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sql := store.DemoScript
			if script != "" {
				b, err := os.ReadFile(script)
				if err != nil {
					return err
				}
				sql = string(b)
			}
			db, err := appCtx.DB(cmd.Context())
			if err != nil {
				return err
			}
			n, err := db.Seed(cmd.Context(), sql)
			if err != nil {
				return err
			}
			fmt.Printf("Executed %d statements\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&script, "script", "", "SQL script to run instead of the demo data")
	return cmd
}
