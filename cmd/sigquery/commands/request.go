package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sigquery/internal/domain"
	"sigquery/internal/protocol/query"
)

func requestCmd() *cobra.Command {
	var (
		fields []string
		tables []string
		where  string
	)
	cmd := &cobra.Command{
		Use:   "request [name]",
		Short: "Write an unsigned request document to the exchange directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := domain.DocumentName(args[0])
			doc, err := query.Encode(domain.RequestDocument{
				Fields:    fields,
				Tables:    tables,
				Condition: where,
			})
			if err != nil {
				return err
			}
			raw, err := doc.WriteToBytes()
			if err != nil {
				return err
			}
			if err := appCtx.Exchange.SaveRequest(name, raw); err != nil {
				return err
			}
			path, _ := appCtx.Exchange.Path(name)
			fmt.Printf("Request written: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&fields, "field", "f", nil, "selected field (repeatable)")
	cmd.Flags().StringSliceVarP(&tables, "table", "t", nil, "source table (repeatable)")
	cmd.Flags().StringVarP(&where, "where", "w", "", "optional condition, used verbatim")
	return cmd
}
