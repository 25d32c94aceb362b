package dsig

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	xmldsig "github.com/russellhaering/goxmldsig"

	"sigquery/internal/domain"
)

var (
	errNoPeer           = errors.New("no peer certificate")
	errEmptyDocument    = errors.New("empty document")
	errMissingSignature = errors.New("missing signature block")
	errNoCertificate    = errors.New("no embedded certificate")
	errKeyMismatch      = errors.New("signer key does not match peer key")
)

// Validate checks the enveloped signature of raw against the public key of
// peer and returns the signed content with the signature removed. The signer
// certificate embedded in the document must carry the same key as peer; it
// may be a different certificate for that key, and its validity window is
// not enforced. Every failure wraps domain.ErrVerification.
func Validate(raw []byte, peer *x509.Certificate) (verified *etree.Element, err error) {
	defer func() {
		if r := recover(); r != nil {
			verified = nil
			err = fmt.Errorf("%w: %v", domain.ErrVerification, r)
		}
	}()

	if peer == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrVerification, errNoPeer)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: parse document: %w", domain.ErrVerification, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrVerification, errEmptyDocument)
	}
	if !hasSignature(root) {
		return nil, fmt.Errorf("%w: %w", domain.ErrVerification, errMissingSignature)
	}

	signer, err := keyInfoCertificate(root)
	if err != nil {
		return nil, err
	}
	if !samePublicKey(peer, signer) {
		return nil, fmt.Errorf("%w: %w", domain.ErrVerification, errKeyMismatch)
	}

	// Trust is pinned to the key above, so the embedded certificate is the
	// only root and the clock sits inside its validity window.
	ctx := xmldsig.NewDefaultValidationContext(&xmldsig.MemoryX509CertificateStore{
		Roots: []*x509.Certificate{signer},
	})
	ctx.IdAttribute = IDAttribute
	ctx.Clock = xmldsig.NewFakeClockAt(signer.NotBefore)

	verified, err = ctx.Validate(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrVerification, err)
	}
	return verified, nil
}

// Verify reports whether raw carries a valid signature by peer. Malformed
// input, a missing signature, a digest mismatch or a foreign key all yield false.
func Verify(raw []byte, peer *x509.Certificate) bool {
	_, err := Validate(raw, peer)
	return err == nil
}

// EmbeddedCertificate returns the signer certificate carried in the KeyInfo
// of raw. It is not authenticated: callers must pin it (by fingerprint) and
// then Validate against it.
func EmbeddedCertificate(raw []byte) (*x509.Certificate, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: parse document: %w", domain.ErrVerification, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrVerification, errEmptyDocument)
	}
	return keyInfoCertificate(doc.Root())
}

func keyInfoCertificate(root *etree.Element) (*x509.Certificate, error) {
	el := descend(root, signatureTag, "KeyInfo", "X509Data", "X509Certificate")
	if el == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrVerification, errNoCertificate)
	}
	der, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(el.Text()), ""))
	if err != nil {
		return nil, fmt.Errorf("%w: certificate encoding: %w", domain.ErrVerification, err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrVerification, err)
	}
	return cert, nil
}

func samePublicKey(a, b *x509.Certificate) bool {
	ka, ok := a.PublicKey.(*rsa.PublicKey)
	if !ok {
		return false
	}
	return ka.Equal(b.PublicKey)
}

// descend follows a path of local tag names below el, ignoring namespace prefixes.
func descend(el *etree.Element, tags ...string) *etree.Element {
	for _, tag := range tags {
		var next *etree.Element
		for _, child := range el.ChildElements() {
			if child.Tag == tag {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		el = next
	}
	return el
}
