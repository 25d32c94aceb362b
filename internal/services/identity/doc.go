// Package identity creates party identities and manages their sealed keys.
//
// Keys come from an injected crypto.KeyPairProvider. StoredProvider adds
// persistence: it loads a party's key sealed under a passphrase, or draws a
// fresh one and seals it, so a party can keep the same certificate across runs.
package identity
