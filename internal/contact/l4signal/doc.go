// Package l4signal owns Layer 4 (Signal) of the contact data model.
//
// Responsibilities: the per-frame contact score inside the contact region,
// its normalisation and smoothing, and the hysteresis state machine that
// turns it into a binary contact sequence.
// Key types: Sample, Signal.
//
// Dependency rule: L4 may depend on L1-L3, but never on L5+.
// No SQL/database code is allowed in this package.
package l4signal
