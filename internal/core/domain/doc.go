// Package domain defines the core business entities for kavach.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Annotation: A text, image or signature mark placed on one page
//   - PageGeometry: The intrinsic size of a page in PDF points
//   - Tool: The placement tool armed for the next page click
//   - EditInstruction: One absolute-coordinate unit of work for the renderer
//   - ProcessedFile: The handle of a file produced by the edit backend
//
// Annotations live in percentage space (top-left origin, 0 to 100 of the
// rendered page box). Edit instructions live in PDF point space (bottom-left
// origin). Nothing in this package converts between the two.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
