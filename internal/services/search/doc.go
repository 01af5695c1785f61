// Package search runs image searches end to end.
//
// A search is validated, answered from the result cache when possible, and
// otherwise sent to the backend once the shared rate limiter allows it. The
// reply text is formatted from the hits and every search is recorded in the
// history store.
package search
