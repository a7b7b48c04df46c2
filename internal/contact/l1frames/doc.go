// Package l1frames owns Layer 1 (Frames) of the contact data model.
//
// Responsibilities: the immutable grayscale Frame, frame batches with their
// measurement provenance, batch validation, and the frame-source boundary
// (directory loader, synthetic renderer).
// Key types: Frame, Batch, Provenance, Source.
//
// Dependency rule: L1 depends on no other contact layer.
// No SQL/database code is allowed in this package.
package l1frames
