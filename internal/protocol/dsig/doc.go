// Package dsig signs and verifies exchanged XML documents with enveloped
// XML-DSig signatures.
//
// Sign adds a ds:Signature element inside the document root. The reference
// points at the root's ID attribute and applies the enveloped-signature
// transform, so the signature covers the whole document except itself.
// Digests are SHA-256 over exclusive C14N output; the signature is RSA
// PKCS#1 v1.5 and KeyInfo carries the signer's certificate.
//
// Validate checks a signed document against the certificate the verifier
// expects from its peer, and returns only the signed content. Verify wraps
// Validate for callers that only need a yes/no answer; it never panics.
package dsig
