// Package barrier sequences the two parties through the three protocol phases.
//
// A Barrier holds three monotonic latches (keys exchanged, request ready,
// result ready). Each latch has its own mutex and condition variable; a wait
// releases the lock while parked and re-checks the latch after every wake-up,
// so spurious wake-ups and broadcasts that race a waiter are harmless.
//
// Latches open in order and never close again within a run. Waits are bounded
// by the caller's context, and Abort fails every pending wait with
// domain.ErrBarrierWaitAborted so a rejected run terminates instead of hanging.
//
// Concurrency: Barrier is safe for concurrent use. A Barrier serves exactly
// one run; create a new one for the next.
package barrier
