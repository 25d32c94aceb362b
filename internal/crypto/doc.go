// Package crypto exposes the key material primitives used by sigquery.
//
// Contents
//
//   - RSA key generation behind the KeyPairProvider capability (RSAProvider)
//   - Party identities: an RSA private key plus a self-signed X.509
//     certificate carrying the public half (NewIdentity)
//   - PEM/PKCS#8 helpers for exporting certificates and sealing keys
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Key generation is injected through KeyPairProvider so callers (and tests)
// can substitute a deterministic source. Private keys are never logged; use
// Fingerprint to identify a party.
package crypto
