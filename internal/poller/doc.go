// Package poller runs the radio session on a dedicated worker
// goroutine so frontends stay responsive while commands are in flight.
//
// The worker owns the session exclusively. Frontends talk to it
// through two one-directional channels: a command channel in, an event
// channel out. Each loop iteration drains at most one queued command,
// runs one poll cycle over the active VFO's fields and the link
// meters, recomputes throughput from the session's byte counters, and
// emits one aggregate StateUpdate snapshot before sleeping.
//
// A failed individual field read leaves that field nil in the snapshot
// and does not stop polling. Shutdown is cooperative: send Quit, and
// the worker emits Disconnected and returns.
//
// Command order and event order are each preserved, but no ordering
// holds between the two channels; a StateUpdate reflecting a command
// may be observed before that command's error (or absence of one) is
// known.
package poller
