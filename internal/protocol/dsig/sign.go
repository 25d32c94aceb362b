package dsig

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	xmldsig "github.com/russellhaering/goxmldsig"

	"sigquery/internal/crypto"
	"sigquery/internal/domain"
)

// IDAttribute names the root attribute the signature reference points at.
const IDAttribute = "ID"

// signatureTag is the local name of the enveloped signature element.
const signatureTag = "Signature"

var errAlreadySigned = errors.New("document already carries a signature")

// Sign returns a copy of doc with an enveloped signature by id. doc is left
// untouched. A root without an ID attribute gets a fresh one.
func Sign(doc *etree.Document, id *crypto.Identity) (*etree.Document, error) {
	if id == nil || id.Private == nil || id.Certificate == nil {
		return nil, fmt.Errorf("%w: private key unavailable", domain.ErrSignature)
	}
	if doc == nil || doc.Root() == nil {
		return nil, fmt.Errorf("%w: empty document", domain.ErrSignature)
	}

	out := doc.Copy()
	root := out.Root()
	if hasSignature(root) {
		return nil, fmt.Errorf("%w: %w", domain.ErrSignature, errAlreadySigned)
	}
	if root.SelectAttrValue(IDAttribute, "") == "" {
		root.CreateAttr(IDAttribute, "_"+uuid.NewString())
	}

	signed, err := signingContext(id).SignEnveloped(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSignature, err)
	}
	out.SetRoot(signed)
	return out, nil
}

// SignBytes parses raw, signs it and serialises the signed document.
func SignBytes(raw []byte, id *crypto.Identity) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: parse document: %w", domain.ErrSignature, err)
	}
	signed, err := Sign(doc, id)
	if err != nil {
		return nil, err
	}
	signed.WriteSettings.CanonicalText = true
	b, err := signed.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: serialise document: %w", domain.ErrSignature, err)
	}
	return b, nil
}

func signingContext(id *crypto.Identity) *xmldsig.SigningContext {
	ctx := xmldsig.NewDefaultSigningContext(id)
	ctx.IdAttribute = IDAttribute
	ctx.Canonicalizer = xmldsig.MakeC14N10ExclusiveCanonicalizerWithPrefixList("")
	return ctx
}

func hasSignature(root *etree.Element) bool {
	for _, child := range root.ChildElements() {
		if child.Tag == signatureTag {
			return true
		}
	}
	return false
}
