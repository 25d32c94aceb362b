package commands

import (
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sigquery/internal/crypto"
	"sigquery/internal/protocol/dsig"
)

func verifyCmd() *cobra.Command {
	var (
		certFile    string
		fingerprint string
	)
	cmd := &cobra.Command{
		Use:   "verify [signed-file]",
		Short: "Check the signature of a signed document against a certificate or key fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var cert *x509.Certificate
			switch {
			case certFile != "":
				pemBytes, err := os.ReadFile(certFile)
				if err != nil {
					return err
				}
				if cert, err = crypto.DecodeCertificatePEM(pemBytes); err != nil {
					return err
				}
			case fingerprint != "":
				if cert, err = dsig.EmbeddedCertificate(raw); err != nil {
					return err
				}
				if got := crypto.CertificateFingerprint(cert); got != fingerprint {
					return fmt.Errorf("signer fingerprint %s does not match %s", got, fingerprint)
				}
			default:
				return errors.New("one of --cert or --fingerprint is required")
			}

			if _, err := dsig.Validate(raw, cert); err != nil {
				return err
			}
			fmt.Printf("Signature valid.\nSigner: %s\n", crypto.CertificateFingerprint(cert))
			return nil
		},
	}
	cmd.Flags().StringVar(&certFile, "cert", "", "PEM certificate of the expected signer")
	cmd.Flags().StringVar(&fingerprint, "fingerprint", "", "expected signer key fingerprint")
	return cmd
}
