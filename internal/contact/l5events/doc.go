// Package l5events owns Layer 5 (Events) of the contact data model.
//
// Responsibilities: turning contact-state transitions into landing and
// takeoff events, sub-frame timing refinement, pairing events into hops,
// plausibility filtering, and the hop summary.
// Key types: Event, Hop, Extraction.
//
// Dependency rule: L5 may depend on L1-L4, but never on L6.
// No SQL/database code is allowed in this package.
package l5events
