// Package domain defines the core business entities for adcheck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: Paragraphs of styled spans, the uniform in-memory form of an upload
//   - KeywordTable: Regulated keywords and the advisory note for each
//   - Match: One located keyword occurrence inside a paragraph
//   - Upload: Opaque bytes and a declared format, before normalisation
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
