package commands

import (
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sigquery/internal/crypto"
	"sigquery/internal/domain"
	"sigquery/internal/protocol/result"
)

func runCmd() *cobra.Command {
	var certsDir string
	cmd := &cobra.Command{
		Use:   "run [request]",
		Short: "Run a signed exchange over a request document in the exchange directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := domain.DocumentName(filepath.Base(args[0]))

			rep, err := appCtx.Run(cmd.Context(), name)
			if err != nil {
				return err
			}

			fmt.Printf("Run:        %s\n", rep.RunID)
			fmt.Printf("Requester:  %s (%s)\n", rep.Requester.Status, rep.RequesterFingerprint)
			fmt.Printf("Responder:  %s (%s)\n", rep.Responder.Status, rep.ResponderFingerprint)
			if certsDir != "" {
				if err := exportCertificates(certsDir, map[string]*x509.Certificate{
					domain.Requester.String(): rep.RequesterCertificate,
					domain.Responder.String(): rep.ResponderCertificate,
				}); err != nil {
					return err
				}
			}
			if rep.Responder.Query != "" {
				fmt.Printf("Query:      %s\n", rep.Responder.Query)
			}
			if !rep.OK() {
				return fmt.Errorf("exchange %s: %w", rep.Requester.Status, rep.Err())
			}
			fmt.Print(result.Format(*rep.Requester.Result))
			return nil
		},
	}
	cmd.Flags().StringVar(&certsDir, "certs-dir", "", "write both party certificates (PEM) here for later verify --cert")
	return cmd
}

func exportCertificates(dir string, certs map[string]*x509.Certificate) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	for name, cert := range certs {
		if cert == nil {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name+".pem"), crypto.EncodeCertificatePEM(cert), 0o644); err != nil {
			return err
		}
	}
	return nil
}
