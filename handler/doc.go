// Package handler implements discontinuous handler reassignment (§4.7):
// when a zero-crossing's conditional decides to fire, a handler variable's
// state is rewritten at the crossing time and its representation rebuilt
// from the post-handler value, mirroring the Stage protocol but beginning
// from a value the conditional already wrote rather than one derived by
// continuous evaluation.
package handler
