// Package party runs the two fixed role scripts of a signed query exchange.
//
// A requester signs a request and verifies the result it gets back. A
// responder verifies the request, executes it against a Store and signs the
// result. Both sides sequence on a shared barrier and hand documents over
// through an ExchangeStore. A script always ends in an Outcome; when the
// responder stops early it aborts the barrier so its peer is released.
package party
