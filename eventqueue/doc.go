// Package eventqueue implements the superdense-time priority queue that
// drives the QSS solver: an ordered multimap from (t, i, o) to events,
// supporting O(log n) insert/shift/remove, O(1) top, and O(k log n)
// retrieval of every event tied for the earliest time (a "batch" of
// simultaneous triggers).
//
// Superdense time (t, i, o) orders lexicographically: real time t, then a
// non-negative pass index i, then a small category offset o. The category
// offset partitions events into seven classes, strictly ordered:
// Discrete < ZC < Conditional < Handler < QSS < QSSZC < QSSInput.
//
// The queue additionally tracks the "active" superdense time — the key of
// the batch currently being processed — so that scheduling calls made
// during an advance can derive the correct pass index for newly created
// events without the caller having to reason about it (see Queue.Key).
package eventqueue
