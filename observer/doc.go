// Package observer implements the batched observer-advance pipeline of
// SPEC_FULL.md §4.6: when a variable's quantized trajectory changes, every
// variable whose derivative depends on it is updated in ordered,
// oracle-call-amortized stages rather than one at a time. Per-observer
// arithmetic in stages 1-3 is fanned out across a bounded
// golang.org/x/sync/errgroup pool when a range's observer count exceeds
// Config.ParallelThreshold, matching the §5 concurrency contract: the bulk
// oracle read/write stays serial, only the independent per-observer
// coefficient arithmetic runs concurrently, and Stage F (which performs the
// queue shift) is always serial.
package observer
