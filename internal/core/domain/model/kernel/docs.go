// Package kernel provides the primitives shared by every shopfloor aggregate:
// the UUID value object, the EntityKind enumeration and EntityRef, which
// addresses a versioned entity regardless of its kind.
package kernel
