// Package poll waits for asynchronous backend state to satisfy a condition.
//
// The [Until] function repeatedly fetches a state snapshot and tests it with a
// predicate, sleeping a constant interval between attempts until the predicate
// holds or the timeout elapses. It is used to wait for pool nodes to leave the
// DISCOVERING status and for clusters to become READY.
package poll
