package domain

import "errors"

var (
	// ErrKeyGeneration is returned when a party's key pair or certificate
	// cannot be produced. It aborts party construction.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrSignature is returned when a document cannot be signed.
	ErrSignature = errors.New("signature failed")

	// ErrVerification marks a document that failed authentication. It is an
	// expected, data-dependent failure: the verifying script reports a
	// rejection and stops.
	ErrVerification = errors.New("verification failed")

	// ErrMalformedRequest is returned when a request document lacks fields or tables.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrEncoding is returned when a rowset cannot be represented as a result document.
	ErrEncoding = errors.New("result encoding failed")

	// ErrBarrierWaitAborted is returned by a gate wait that ended without the
	// gate opening (timeout, cancellation or an aborted run).
	ErrBarrierWaitAborted = errors.New("barrier wait aborted")

	// ErrStore wraps failures of the relational store collaborator.
	ErrStore = errors.New("store failed")
)

// Classify maps a script error to the terminal status of an outcome.
// Verification failures are rejections; everything else is a failure.
func Classify(err error) Status {
	switch {
	case err == nil:
		return StatusCompleted
	case errors.Is(err, ErrVerification):
		return StatusRejected
	default:
		return StatusFailed
	}
}
