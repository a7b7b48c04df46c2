// Package l6gate owns Layer 6 (Gate) of the contact data model.
//
// Responsibilities: assembling the draft result from the stage outputs,
// the two-tier confidence gate (hard fail, then per-metric redaction), and
// the JSON result contract consumed by reporting layers.
// Key types: Result, Metrics, Events, Config.
//
// Dependency rule: L6 may depend on L1-L5.
// No SQL/database code is allowed in this package.
package l6gate
