// Package qsslog is a thin structured-logging facade over
// github.com/rs/zerolog, used by the simulation loop (the only caller in
// this module) to log the warn-then-continue / abort-batch error policy
// named in SPEC_FULL.md §7. The teacher lineage
// carries no logging code of its own (it is a pure algorithms library), so
// this package is grounded on the rest of the retrieved example pack
// instead — see DESIGN.md.
package qsslog
