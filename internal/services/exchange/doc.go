// Package exchange coordinates one complete run: it issues both identities,
// swaps their certificates, opens the key-exchange gate and runs the two
// party scripts concurrently until both terminate.
package exchange
