// Package l3region owns Layer 3 (Region) of the contact data model.
//
// Responsibilities: locating the small rectangle above the ground line whose
// motion energy looks like repeated foot strikes, and measuring how stably
// that rectangle can be tracked across the batch.
// Key types: Region, Location, Features.
//
// Dependency rule: L3 may depend on L1-L2, but never on L4+.
// No SQL/database code is allowed in this package.
package l3region
