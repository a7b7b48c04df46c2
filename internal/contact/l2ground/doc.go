// Package l2ground owns Layer 2 (Ground) of the contact data model.
//
// Responsibilities: per-frame edge extraction and weighted polar Hough
// candidates, temporal clustering of candidates into one stable ground line,
// and the rolling-history variant used for streaming input.
// Key types: Model, Detection, RollingState.
//
// Dependency rule: L2 may depend on L1, but never on L3+.
// No SQL/database code is allowed in this package.
package l2ground
